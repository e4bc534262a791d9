package policies

import "dugun.link/models"

// ChildPolicy davetiyeye bağlı kaynaklar (misafir, galeri, LCV) için kurallar.
// Okuma için sahiplik yeterlidir, yazma için hesabın aktif olması da gerekir.
// Üst davetiye bilinmiyorsa (nil) her işlem reddedilir.
type ChildPolicy struct{}

func (ChildPolicy) Allows(actor *models.User, action Action, owner *models.Invitation) bool {
	if !owns(actor, owner) {
		return false
	}
	switch action {
	case ActionViewAny, ActionView:
		return true
	case ActionCreate, ActionUpdate, ActionDelete:
		return actor.IsActive
	}
	return false
}

// InvitationViewPolicy görüntüleme kayıtları yalnızca public sayfa tarafından yazılır;
// sahip sadece okuyabilir.
type InvitationViewPolicy struct{}

func (InvitationViewPolicy) Allows(actor *models.User, action Action, owner *models.Invitation) bool {
	switch action {
	case ActionViewAny, ActionView:
		return owns(actor, owner)
	}
	return false
}
