package services

import (
	"context"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

// authorizer alt kaynakların yetkisini üst davetiye üzerinden kontrol eder.
// Sahiplik zinciri tek adımdır: kaynak -> invitation_id -> davetiye.user_id.
type authorizer struct {
	gate        *policies.Gate
	invitations repositories.IInvitationRepository
}

// authorize davetiyeyi yükler ve gate kararını uygular. Davetiye yoksa ErrNotFound,
// kural reddederse ErrForbidden döner.
func (a authorizer) authorize(ctx context.Context, actor *models.User, resource policies.ResourceType, action policies.Action, invitationID uint) (*models.Invitation, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	invitation, err := a.invitations.FindByID(ctx, invitationID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !a.gate.Allows(actor, resource, action, invitation) {
		configslog.Log.Info("Yetki reddedildi",
			zap.Uint("userID", actor.ID),
			zap.String("resource", string(resource)),
			zap.String("action", string(action)),
			zap.Uint("invitationID", invitationID))
		return nil, ErrForbidden
	}
	return invitation, nil
}

// allows üst kaynak gerektirmeyen işlemler içindir (genel listeleme, yeni davetiye).
func (a authorizer) allows(actor *models.User, resource policies.ResourceType, action policies.Action) error {
	if !a.gate.Allows(actor, resource, action, nil) {
		return ErrForbidden
	}
	return nil
}
