package policies

import "dugun.link/models"

// Gate kaynak türünü ilgili Policy'ye yönlendirir.
type Gate struct {
	policies map[ResourceType]Policy
}

// NewGate varsayılan kuralları kayıtlı bir Gate döndürür.
func NewGate() *Gate {
	g := &Gate{policies: make(map[ResourceType]Policy)}
	g.Register(ResourceInvitation, InvitationPolicy{})
	g.Register(ResourceGuest, ChildPolicy{})
	g.Register(ResourceGallery, ChildPolicy{})
	g.Register(ResourceRsvp, ChildPolicy{})
	g.Register(ResourceInvitationView, InvitationViewPolicy{})
	return g
}

func (g *Gate) Register(resource ResourceType, policy Policy) {
	g.policies[resource] = policy
}

// Allows kayıtlı olmayan kaynak türü veya nil kullanıcı için false döner.
func (g *Gate) Allows(actor *models.User, resource ResourceType, action Action, owner *models.Invitation) bool {
	if actor == nil || actor.ID == 0 {
		return false
	}
	policy, ok := g.policies[resource]
	if !ok {
		return false
	}
	return policy.Allows(actor, action, owner)
}
