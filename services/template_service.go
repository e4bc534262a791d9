package services

import (
	"context"
	"errors"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/repositories"

	"go.uber.org/zap"
)

type ITemplateService interface {
	ListActive(ctx context.Context) ([]models.Template, error)
	GetActiveByID(ctx context.Context, id uint) (*models.Template, error)
	Create(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id uint) error
}

type TemplateService struct {
	repo repositories.ITemplateRepository
}

func NewTemplateService(repo repositories.ITemplateRepository) ITemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) ListActive(ctx context.Context) ([]models.Template, error) {
	return s.repo.FindAll(ctx, true)
}

// GetActiveByID pasif temalar yeni davetiyelerde seçilemez; bulunamamış gibi davranılır.
func (s *TemplateService) GetActiveByID(ctx context.Context, id uint) (*models.Template, error) {
	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !template.IsActive {
		return nil, ErrNotFound
	}
	return template, nil
}

func (s *TemplateService) Create(ctx context.Context, template *models.Template) error {
	ve := &ValidationError{Fields: map[string]string{}}
	if template.Name == "" {
		ve.Fields["name"] = "zorunlu alan"
	}
	if template.HTMLPath == "" {
		ve.Fields["html_path"] = "zorunlu alan"
	}
	if len(ve.Fields) > 0 {
		return ve
	}
	return s.repo.Create(ctx, template)
}

// Delete kullanımdaki temayı silmez (ErrTemplateInUse). Sayım ile silme arasında yeni bir
// davetiye eklenirse veritabanındaki RESTRICT kısıtı aynı hatayı üretir.
func (s *TemplateService) Delete(ctx context.Context, id uint) error {
	count, err := s.repo.CountInvitations(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTemplateInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrInUse) {
			return ErrTemplateInUse
		}
		return mapRepositoryError(err)
	}
	configslog.Log.Info("Tema silindi", zap.Uint("templateID", id))
	return nil
}
