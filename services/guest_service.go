package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/queryparams"
	"dugun.link/policies"
	"dugun.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var whatsappPattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// GuestInput misafir formu.
type GuestInput struct {
	Name           string `json:"name" validate:"required,max=150"`
	Category       string `json:"category" validate:"required,oneof=family friend colleague"`
	WhatsappNumber string `json:"whatsapp_number"`
}

// normalizeWhatsapp boşluk, tire ve parantezleri atar; geçersizse hata döner.
// Boş numara geçerlidir ve nil olarak saklanır.
func normalizeWhatsapp(raw string) (*string, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, nil
	}
	if !whatsappPattern.MatchString(cleaned) {
		return nil, newValidationError("whatsapp_number", "geçerli bir telefon numarası olmalı")
	}
	return &cleaned, nil
}

// toGuest girdiyi doğrular ve modele çevirir.
func (in GuestInput) toGuest(invitationID uint) (*models.Guest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	number, err := normalizeWhatsapp(in.WhatsappNumber)
	if err != nil {
		return nil, err
	}
	return &models.Guest{
		InvitationID:   invitationID,
		Name:           in.Name,
		Category:       models.GuestCategory(in.Category),
		WhatsappNumber: number,
	}, nil
}

type IGuestService interface {
	List(ctx context.Context, actor *models.User, invitationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Create(ctx context.Context, actor *models.User, invitationID uint, input GuestInput) (*models.Guest, error)
	Update(ctx context.Context, actor *models.User, guestID uint, input GuestInput) (*models.Guest, error)
	Delete(ctx context.Context, actor *models.User, guestID uint) error
	IGuestCSVService
}

type GuestService struct {
	db   *gorm.DB
	repo repositories.IGuestRepository
	auth authorizer
}

func NewGuestService(db *gorm.DB, repo repositories.IGuestRepository, invitations repositories.IInvitationRepository, gate *policies.Gate) IGuestService {
	return &GuestService{db: db, repo: repo, auth: authorizer{gate: gate, invitations: invitations}}
}

// List misafirleri sayfalar; params.Status kategori filtresi olarak kullanılır.
func (s *GuestService) List(ctx context.Context, actor *models.User, invitationID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGuest, policies.ActionViewAny, invitationID); err != nil {
		return nil, err
	}
	params.Validate()
	guests, total, err := s.repo.FindByInvitationIDPaginated(ctx, invitationID, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(guests, params, total), nil
}

func (s *GuestService) Create(ctx context.Context, actor *models.User, invitationID uint, input GuestInput) (*models.Guest, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGuest, policies.ActionCreate, invitationID); err != nil {
		return nil, err
	}
	guest, err := input.toGuest(invitationID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(models.ContextWithUserID(ctx, actor.ID), guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// loadForWrite misafiri bulur, yetkiyi üst davetiyesi üzerinden kontrol eder.
func (s *GuestService) loadForWrite(ctx context.Context, actor *models.User, guestID uint, action policies.Action) (*models.Guest, error) {
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGuest, action, guest.InvitationID); err != nil {
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) Update(ctx context.Context, actor *models.User, guestID uint, input GuestInput) (*models.Guest, error) {
	guest, err := s.loadForWrite(ctx, actor, guestID, policies.ActionUpdate)
	if err != nil {
		return nil, err
	}
	updated, err := input.toGuest(guest.InvitationID)
	if err != nil {
		return nil, err
	}
	guest.Name = updated.Name
	guest.Category = updated.Category
	guest.WhatsappNumber = updated.WhatsappNumber
	if err := s.repo.Update(models.ContextWithUserID(ctx, actor.ID), guest); err != nil {
		configslog.Log.Error("Misafir güncellenemedi", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, err
	}
	return guest, nil
}

func (s *GuestService) Delete(ctx context.Context, actor *models.User, guestID uint) error {
	if _, err := s.loadForWrite(ctx, actor, guestID, policies.ActionDelete); err != nil {
		return err
	}
	err := s.repo.Delete(ctx, guestID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
