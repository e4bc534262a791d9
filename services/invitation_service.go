package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/queryparams"
	"dugun.link/policies"
	"dugun.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InvitationInput davetiye oluşturma ve güncelleme formu.
type InvitationInput struct {
	TemplateID       uint       `json:"template_id" validate:"required,gt=0"`
	GroomName        string     `json:"groom_name" validate:"required,max=150"`
	BrideName        string     `json:"bride_name" validate:"required,max=150"`
	GroomParents     string     `json:"groom_parents" validate:"max=255"`
	BrideParents     string     `json:"bride_parents" validate:"max=255"`
	CeremonyAt       *time.Time `json:"ceremony_at"`
	CeremonyVenue    string     `json:"ceremony_venue" validate:"max=255"`
	CeremonyAddress  string     `json:"ceremony_address" validate:"max=1000"`
	ReceptionAt      *time.Time `json:"reception_at"`
	ReceptionVenue   string     `json:"reception_venue" validate:"max=255"`
	ReceptionAddress string     `json:"reception_address" validate:"max=1000"`
	Latitude         *float64   `json:"latitude" validate:"omitempty,latitude"`
	Longitude        *float64   `json:"longitude" validate:"omitempty,longitude"`
	MusicPath        string     `json:"music_path" validate:"max=255"`
}

func (in *InvitationInput) normalize() {
	in.GroomName = strings.TrimSpace(in.GroomName)
	in.BrideName = strings.TrimSpace(in.BrideName)
	in.GroomParents = strings.TrimSpace(in.GroomParents)
	in.BrideParents = strings.TrimSpace(in.BrideParents)
	in.CeremonyVenue = strings.TrimSpace(in.CeremonyVenue)
	in.ReceptionVenue = strings.TrimSpace(in.ReceptionVenue)
}

func (in InvitationInput) apply(inv *models.Invitation) {
	inv.TemplateID = in.TemplateID
	inv.GroomName = in.GroomName
	inv.BrideName = in.BrideName
	inv.GroomParents = in.GroomParents
	inv.BrideParents = in.BrideParents
	inv.CeremonyAt = in.CeremonyAt
	inv.CeremonyVenue = in.CeremonyVenue
	inv.CeremonyAddress = in.CeremonyAddress
	inv.ReceptionAt = in.ReceptionAt
	inv.ReceptionVenue = in.ReceptionVenue
	inv.ReceptionAddress = in.ReceptionAddress
	inv.Latitude = in.Latitude
	inv.Longitude = in.Longitude
	inv.MusicPath = in.MusicPath
}

// IInvitationService davetiye işlemleri için arayüz.
type IInvitationService interface {
	CreateInvitation(ctx context.Context, actor *models.User, input InvitationInput) (*models.Invitation, error)
	GetInvitation(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error)
	GetInvitationsForUser(ctx context.Context, actor *models.User, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateInvitation(ctx context.Context, actor *models.User, id uint, input InvitationInput) (*models.Invitation, error)
	DeleteInvitation(ctx context.Context, actor *models.User, id uint) error
	Publish(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error)
	Unpublish(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error)
}

// InvitationService IInvitationService arayüzünü uygular.
type InvitationService struct {
	db        *gorm.DB
	repo      repositories.IInvitationRepository
	templates ITemplateService
	auth      authorizer
	newSlug   SlugGenerator
}

func NewInvitationService(db *gorm.DB, repo repositories.IInvitationRepository, templates ITemplateService, gate *policies.Gate) *InvitationService {
	return &InvitationService{
		db:        db,
		repo:      repo,
		templates: templates,
		auth:      authorizer{gate: gate, invitations: repo},
		newSlug:   NewSlug,
	}
}

// WithSlugGenerator adres üreticisini değiştirir (testlerde çakışma senaryoları için).
func (s *InvitationService) WithSlugGenerator(gen SlugGenerator) *InvitationService {
	s.newSlug = gen
	return s
}

func (s *InvitationService) validateInput(ctx context.Context, input *InvitationInput) error {
	input.normalize()
	if err := validateStruct(input); err != nil {
		return err
	}
	if _, err := s.templates.GetActiveByID(ctx, input.TemplateID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return newValidationError("template_id", "geçerli bir tema seçilmeli")
		}
		return err
	}
	return nil
}

// CreateInvitation yeni davetiyeyi taslak olarak oluşturur; adres yayında atanır.
func (s *InvitationService) CreateInvitation(ctx context.Context, actor *models.User, input InvitationInput) (*models.Invitation, error) {
	if err := s.auth.allows(actor, policies.ResourceInvitation, policies.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, &input); err != nil {
		return nil, err
	}

	invitation := &models.Invitation{UserID: actor.ID, Status: models.InvitationStatusDraft}
	input.apply(invitation)
	if err := s.repo.Create(models.ContextWithUserID(ctx, actor.ID), invitation); err != nil {
		configslog.Log.Error("Davetiye oluşturulamadı", zap.Uint("userID", actor.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Davetiye oluşturuldu: ID %d, kullanıcı %d", invitation.ID, actor.ID)
	return invitation, nil
}

func (s *InvitationService) GetInvitation(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error) {
	return s.auth.authorize(ctx, actor, policies.ResourceInvitation, policies.ActionView, id)
}

// GetInvitationsForUser yalnızca kullanıcının kendi davetiyelerini listeler.
func (s *InvitationService) GetInvitationsForUser(ctx context.Context, actor *models.User, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if err := s.auth.allows(actor, policies.ResourceInvitation, policies.ActionViewAny); err != nil {
		return nil, err
	}
	params.Validate()
	invitations, total, err := s.repo.FindAllByUserIDPaginated(ctx, actor.ID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(invitations, params, total), nil
}

// UpdateInvitation davetiye bilgilerini günceller. Durum ve adres bu yolla değişmez.
func (s *InvitationService) UpdateInvitation(ctx context.Context, actor *models.User, id uint, input InvitationInput) (*models.Invitation, error) {
	invitation, err := s.auth.authorize(ctx, actor, policies.ResourceInvitation, policies.ActionUpdate, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, &input); err != nil {
		return nil, err
	}
	input.apply(invitation)
	invitation.Template = nil
	if err := s.repo.UpdateDetails(models.ContextWithUserID(ctx, actor.ID), invitation); err != nil {
		configslog.Log.Error("Davetiye güncellenemedi", zap.Uint("id", id), zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return s.repo.FindByID(ctx, id)
}

// DeleteInvitation davetiyeyi ve tüm alt kayıtlarını kalıcı olarak siler.
func (s *InvitationService) DeleteInvitation(ctx context.Context, actor *models.User, id uint) error {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceInvitation, policies.ActionDelete, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	configslog.SLog.Infof("Davetiye silindi: ID %d, kullanıcı %d", id, actor.ID)
	return nil
}

// Publish davetiyeyi yayına alır. Adres ilk yayında bir kez atanır ve sonraki yayınlarda
// aynen korunur. Satır kilidi aynı davetiyenin eşzamanlı yayınlanmasını sıraya sokar.
func (s *InvitationService) Publish(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceInvitation, policies.ActionUpdate, id); err != nil {
		return nil, err
	}
	ctx = models.ContextWithUserID(ctx, actor.ID)

	var published *models.Invitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		invitation, err := s.repo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return mapRepositoryError(err)
		}

		if invitation.UniqueURL == nil {
			slug, err := s.assignSlug(txCtx, tx, invitation.ID)
			if err != nil {
				return err
			}
			invitation.UniqueURL = &slug
		}
		if invitation.Status != models.InvitationStatusPublished {
			now := time.Now().UTC()
			invitation.Status = models.InvitationStatusPublished
			invitation.PublishedAt = &now
		}
		if err := s.repo.UpdateStatus(txCtx, invitation); err != nil {
			return err
		}
		published = invitation
		return nil
	})
	if err != nil {
		configslog.Log.Error("Davetiye yayınlanamadı", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("Davetiye yayında: ID %d, adres %s", published.ID, *published.UniqueURL)
	return published, nil
}

// assignSlug her denemeyi ayrı bir savepoint içinde yapar; böylece benzersizlik ihlali
// dış transaction'ı bozmaz ve yeni bir adayla tekrar denenebilir.
func (s *InvitationService) assignSlug(ctx context.Context, tx *gorm.DB, invitationID uint) (string, error) {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug := s.newSlug()
		err := tx.Transaction(func(sp *gorm.DB) error {
			return s.repo.AssignUniqueURL(repositories.ContextWithTx(ctx, sp), invitationID, slug)
		})
		if err == nil {
			return slug, nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return "", err
		}
		configslog.Log.Warn("Davetiye adresi çakıştı, yeniden deneniyor",
			zap.Uint("invitationID", invitationID), zap.Int("attempt", attempt))
	}
	return "", ErrSlugExhausted
}

// Unpublish sayfayı gizler; adres korunur ve tekrar yayında aynı adres kullanılır.
func (s *InvitationService) Unpublish(ctx context.Context, actor *models.User, id uint) (*models.Invitation, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceInvitation, policies.ActionUpdate, id); err != nil {
		return nil, err
	}
	ctx = models.ContextWithUserID(ctx, actor.ID)

	var result *models.Invitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := repositories.ContextWithTx(ctx, tx)
		invitation, err := s.repo.FindByIDForUpdate(txCtx, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		switch invitation.Status {
		case models.InvitationStatusDraft:
			return ErrInvalidState
		case models.InvitationStatusUnpublished:
			result = invitation
			return nil
		}
		invitation.Status = models.InvitationStatusUnpublished
		if err := s.repo.UpdateStatus(txCtx, invitation); err != nil {
			return err
		}
		result = invitation
		return nil
	})
	if err != nil {
		return nil, err
	}
	configslog.SLog.Infof("Davetiye yayından kaldırıldı: ID %d", id)
	return result, nil
}
