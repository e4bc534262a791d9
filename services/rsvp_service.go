package services

import (
	"context"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/metrics"
	"dugun.link/pkg/queryparams"
	"dugun.link/policies"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

// RsvpInput public LCV formu. Alanlar kırpıldıktan sonra doğrulanır.
type RsvpInput struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Message string `json:"message" form:"message" validate:"required,max=1000"`
}

type IRsvpService interface {
	Submit(ctx context.Context, uniqueURL string, input RsvpInput) (*models.Rsvp, error)
	List(ctx context.Context, actor *models.User, invitationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Delete(ctx context.Context, actor *models.User, rsvpID uint) error
}

type RsvpService struct {
	repo   repositories.IRsvpRepository
	public IPublicInvitationService
	auth   authorizer
}

func NewRsvpService(repo repositories.IRsvpRepository, public IPublicInvitationService, invitations repositories.IInvitationRepository, gate *policies.Gate) IRsvpService {
	return &RsvpService{repo: repo, public: public, auth: authorizer{gate: gate, invitations: invitations}}
}

// Submit yayındaki davetiyeye bir LCV mesajı ekler. Adres çözülemezse girdiye bakılmadan
// ErrNotFound döner; girdi geçersizse hiçbir satır yazılmaz. Tekilleştirme yapılmaz.
func (s *RsvpService) Submit(ctx context.Context, uniqueURL string, input RsvpInput) (*models.Rsvp, error) {
	invitation, err := s.public.Resolve(ctx, uniqueURL)
	if err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Message = strings.TrimSpace(input.Message)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	rsvp := &models.Rsvp{InvitationID: invitation.ID, Name: input.Name, Message: input.Message}
	if err := s.repo.Create(ctx, rsvp); err != nil {
		configslog.Log.Error("LCV kaydedilemedi", zap.Uint("invitationID", invitation.ID), zap.Error(err))
		return nil, err
	}
	metrics.RsvpsSubmitted.Inc()
	return rsvp, nil
}

// List LCV'leri en yeniden eskiye listeler.
func (s *RsvpService) List(ctx context.Context, actor *models.User, invitationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceRsvp, policies.ActionViewAny, invitationID); err != nil {
		return nil, err
	}
	params.Validate()
	rsvps, total, err := s.repo.FindByInvitationIDPaginated(ctx, invitationID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(rsvps, params, total), nil
}

func (s *RsvpService) Delete(ctx context.Context, actor *models.User, rsvpID uint) error {
	rsvp, err := s.repo.FindByID(ctx, rsvpID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceRsvp, policies.ActionDelete, rsvp.InvitationID); err != nil {
		return err
	}
	return mapRepositoryError(s.repo.Delete(ctx, rsvpID))
}
