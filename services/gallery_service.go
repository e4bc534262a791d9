package services

import (
	"context"
	"errors"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/policies"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

// GalleryInput galeri fotoğrafı formu. Dosya yükleme bu servisin konusu değildir;
// PhotoPath yüklenmiş dosyanın yoludur.
type GalleryInput struct {
	PhotoPath string `json:"photo_path" validate:"required,max=255"`
	Caption   string `json:"caption" validate:"max=255"`
}

// ReorderInput davetiyenin tüm galeri ID'lerini yeni sırasıyla içerir.
type ReorderInput struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

type IGalleryService interface {
	List(ctx context.Context, actor *models.User, invitationID uint) ([]models.Gallery, error)
	Create(ctx context.Context, actor *models.User, invitationID uint, input GalleryInput) (*models.Gallery, error)
	Update(ctx context.Context, actor *models.User, galleryID uint, input GalleryInput) (*models.Gallery, error)
	Delete(ctx context.Context, actor *models.User, galleryID uint) error
	Reorder(ctx context.Context, actor *models.User, invitationID uint, input ReorderInput) ([]models.Gallery, error)
}

type GalleryService struct {
	repo repositories.IGalleryRepository
	auth authorizer
}

func NewGalleryService(repo repositories.IGalleryRepository, invitations repositories.IInvitationRepository, gate *policies.Gate) IGalleryService {
	return &GalleryService{repo: repo, auth: authorizer{gate: gate, invitations: invitations}}
}

func (s *GalleryService) List(ctx context.Context, actor *models.User, invitationID uint) ([]models.Gallery, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGallery, policies.ActionViewAny, invitationID); err != nil {
		return nil, err
	}
	return s.repo.FindByInvitationID(ctx, invitationID)
}

// Create fotoğrafı galerinin sonuna ekler.
func (s *GalleryService) Create(ctx context.Context, actor *models.User, invitationID uint, input GalleryInput) (*models.Gallery, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGallery, policies.ActionCreate, invitationID); err != nil {
		return nil, err
	}
	input.PhotoPath = strings.TrimSpace(input.PhotoPath)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	maxOrder, err := s.repo.MaxOrder(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	gallery := &models.Gallery{
		InvitationID: invitationID,
		PhotoPath:    input.PhotoPath,
		Caption:      strings.TrimSpace(input.Caption),
		Order:        maxOrder + 1,
	}
	if err := s.repo.Create(models.ContextWithUserID(ctx, actor.ID), gallery); err != nil {
		return nil, err
	}
	return gallery, nil
}

// loadForWrite fotoğrafı bulur ve üst davetiye üzerinden yetkiyi kontrol eder.
func (s *GalleryService) loadForWrite(ctx context.Context, actor *models.User, galleryID uint, action policies.Action) (*models.Gallery, error) {
	gallery, err := s.repo.FindByID(ctx, galleryID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGallery, action, gallery.InvitationID); err != nil {
		return nil, err
	}
	return gallery, nil
}

func (s *GalleryService) Update(ctx context.Context, actor *models.User, galleryID uint, input GalleryInput) (*models.Gallery, error) {
	gallery, err := s.loadForWrite(ctx, actor, galleryID, policies.ActionUpdate)
	if err != nil {
		return nil, err
	}
	input.PhotoPath = strings.TrimSpace(input.PhotoPath)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	gallery.PhotoPath = input.PhotoPath
	gallery.Caption = strings.TrimSpace(input.Caption)
	if err := s.repo.Update(models.ContextWithUserID(ctx, actor.ID), gallery); err != nil {
		return nil, mapRepositoryError(err)
	}
	// Sıra eşzamanlı bir Reorder ile değişmiş olabilir; güncel satır döndürülür.
	updated, err := s.repo.FindByID(ctx, galleryID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return updated, nil
}

func (s *GalleryService) Delete(ctx context.Context, actor *models.User, galleryID uint) error {
	if _, err := s.loadForWrite(ctx, actor, galleryID, policies.ActionDelete); err != nil {
		return err
	}
	return mapRepositoryError(s.repo.Delete(ctx, galleryID))
}

// Reorder ID listesi davetiyenin galerisiyle birebir aynı kümeyi içermelidir (eksik,
// fazla veya tekrar eden ID kabul edilmez). Yeni sıra tek transaction'da yazılır.
func (s *GalleryService) Reorder(ctx context.Context, actor *models.User, invitationID uint, input ReorderInput) ([]models.Gallery, error) {
	if _, err := s.auth.authorize(ctx, actor, policies.ResourceGallery, policies.ActionUpdate, invitationID); err != nil {
		return nil, err
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	current, err := s.repo.FindByInvitationID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if !sameIDSet(current, input.IDs) {
		return nil, newValidationError("ids", "davetiyenin tüm fotoğraflarını bir kez içermelidir")
	}
	if err := s.repo.Reorder(models.ContextWithUserID(ctx, actor.ID), invitationID, input.IDs); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, newValidationError("ids", "davetiyenin tüm fotoğraflarını bir kez içermelidir")
		}
		configslog.Log.Error("Galeri sıralanamadı", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, err
	}
	return s.repo.FindByInvitationID(ctx, invitationID)
}

func sameIDSet(galleries []models.Gallery, ids []uint) bool {
	if len(galleries) != len(ids) {
		return false
	}
	existing := make(map[uint]bool, len(galleries))
	for _, g := range galleries {
		existing[g.ID] = false
	}
	for _, id := range ids {
		seen, ok := existing[id]
		if !ok || seen {
			return false
		}
		existing[id] = true
	}
	return true
}
