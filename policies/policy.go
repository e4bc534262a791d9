// Package policies kaynak türü başına yetki kurallarını tanımlar.
// Kurallar saf fonksiyonlardır: veritabanına erişmez, yalnızca işlemi yapan kullanıcıya
// ve kaynağın sahibi olan davetiyeye bakar.
package policies

import "dugun.link/models"

// ResourceType yetki kontrolü yapılan kaynak türüdür.
type ResourceType string

const (
	ResourceInvitation     ResourceType = "invitation"
	ResourceGuest          ResourceType = "guest"
	ResourceGallery        ResourceType = "gallery"
	ResourceRsvp           ResourceType = "rsvp"
	ResourceInvitationView ResourceType = "invitation_view"
)

// Action kaynak üzerinde yapılmak istenen işlemdir.
type Action string

const (
	ActionViewAny Action = "viewAny"
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
)

// Policy bir kaynak türü için kuralları uygular. owner, kaynağın bağlı olduğu davetiyedir;
// davetiyenin kendisi için ise davetiyenin kendisidir. viewAny/create gibi koleksiyon
// işlemlerinde üst davetiye olmayabilir (nil).
type Policy interface {
	Allows(actor *models.User, action Action, owner *models.Invitation) bool
}

func owns(actor *models.User, owner *models.Invitation) bool {
	return owner != nil && owner.OwnedBy(actor.ID)
}
