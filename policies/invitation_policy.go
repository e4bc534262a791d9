package policies

import "dugun.link/models"

// InvitationPolicy davetiyenin kendisi için kurallar.
// Pasif hesaplar kendi davetiyelerini tek tek görebilir; oluşturma, güncelleme ve silme yapamaz.
// Üst kaynak olmadan yapılan işlemler (genel listeleme, yeni davetiye) sadece aktif hesaba açıktır.
type InvitationPolicy struct{}

func (InvitationPolicy) Allows(actor *models.User, action Action, invitation *models.Invitation) bool {
	switch action {
	case ActionViewAny:
		if invitation == nil {
			return actor.IsActive
		}
		return owns(actor, invitation)
	case ActionView:
		return owns(actor, invitation)
	case ActionCreate:
		return actor.IsActive
	case ActionUpdate, ActionDelete:
		return actor.IsActive && owns(actor, invitation)
	}
	return false
}
