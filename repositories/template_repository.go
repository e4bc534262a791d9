package repositories

import (
	"context"

	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ITemplateRepository tema veritabanı işlemleri için arayüz.
type ITemplateRepository interface {
	Create(ctx context.Context, template *models.Template) error
	FindByID(ctx context.Context, id uint) (*models.Template, error)
	FindByName(ctx context.Context, name string) (*models.Template, error)
	FindAll(ctx context.Context, onlyActive bool) ([]models.Template, error)
	Update(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id uint) error
	CountInvitations(ctx context.Context, templateID uint) (int64, error)
}

type TemplateRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Template]
}

func NewTemplateRepository(db *gorm.DB) ITemplateRepository {
	return &TemplateRepository{db: db, base: NewBaseRepository[models.Template](db)}
}

func (r *TemplateRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	return r.base.Create(ctx, template)
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uint) (*models.Template, error) {
	return r.base.FindByID(ctx, id)
}

func (r *TemplateRepository) FindByName(ctx context.Context, name string) (*models.Template, error) {
	var template models.Template
	if err := r.getDB(ctx).Where("name = ?", name).First(&template).Error; err != nil {
		return nil, translateError(err)
	}
	return &template, nil
}

func (r *TemplateRepository) FindAll(ctx context.Context, onlyActive bool) ([]models.Template, error) {
	var templates []models.Template
	query := r.getDB(ctx).Model(&models.Template{})
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("name asc").Find(&templates).Error; err != nil {
		configslog.Log.Error("TemplateRepository.FindAll: DB error", zap.Error(err))
		return nil, err
	}
	return templates, nil
}

func (r *TemplateRepository) Update(ctx context.Context, template *models.Template) error {
	return r.base.Save(ctx, template)
}

// Delete temayı siler. Tema bir davetiye tarafından kullanılıyorsa veritabanı kısıtı
// silmeyi reddeder ve ErrInUse döner.
func (r *TemplateRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

func (r *TemplateRepository) CountInvitations(ctx context.Context, templateID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Invitation{}).Where("template_id = ?", templateID).Count(&count).Error
	return count, err
}
