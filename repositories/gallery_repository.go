package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"dugun.link/models"

	"gorm.io/gorm"
)

// IGalleryRepository galeri fotoğrafı veritabanı işlemleri için arayüz.
type IGalleryRepository interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	FindByID(ctx context.Context, id uint) (*models.Gallery, error)
	FindByInvitationID(ctx context.Context, invitationID uint) ([]models.Gallery, error)
	MaxOrder(ctx context.Context, invitationID uint) (int, error)
	Update(ctx context.Context, gallery *models.Gallery) error
	Reorder(ctx context.Context, invitationID uint, orderedIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type GalleryRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Gallery]
}

func NewGalleryRepository(db *gorm.DB) IGalleryRepository {
	return &GalleryRepository{db: db, base: NewBaseRepository[models.Gallery](db)}
}

func (r *GalleryRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *GalleryRepository) Create(ctx context.Context, gallery *models.Gallery) error {
	return r.base.Create(ctx, gallery)
}

func (r *GalleryRepository) FindByID(ctx context.Context, id uint) (*models.Gallery, error) {
	return r.base.FindByID(ctx, id)
}

// FindByInvitationID fotoğrafları gösterim sırasına göre döndürür; eşit sıradakiler ID ile sıralanır.
func (r *GalleryRepository) FindByInvitationID(ctx context.Context, invitationID uint) ([]models.Gallery, error) {
	var galleries []models.Gallery
	err := r.getDB(ctx).Where("invitation_id = ?", invitationID).
		Order("sort_order asc").Order("id asc").
		Find(&galleries).Error
	return galleries, err
}

func (r *GalleryRepository) MaxOrder(ctx context.Context, invitationID uint) (int, error) {
	var maxOrder sql.NullInt64
	err := r.getDB(ctx).Model(&models.Gallery{}).
		Where("invitation_id = ?", invitationID).
		Select("MAX(sort_order)").Scan(&maxOrder).Error
	if err != nil || !maxOrder.Valid {
		return 0, err
	}
	return int(maxOrder.Int64), nil
}

// Update yalnızca fotoğraf ve açıklamayı yazar; sort_order sadece Reorder ile değişir.
func (r *GalleryRepository) Update(ctx context.Context, gallery *models.Gallery) error {
	result := r.getDB(ctx).Model(gallery).
		Select("photo_path", "caption", "updated_at", "updated_by").
		Updates(gallery)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder verilen ID sırasına göre sort_order'ı 1'den başlayarak yeniden yazar.
// Tüm güncellemeler tek transaction'dadır; davetiyeye ait olmayan bir ID varsa hiçbir değişiklik kalmaz.
func (r *GalleryRepository) Reorder(ctx context.Context, invitationID uint, orderedIDs []uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			result := tx.Model(&models.Gallery{}).
				Where("id = ? AND invitation_id = ?", id, invitationID).
				Update("sort_order", i+1)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("galeri %d: %w", id, ErrNotFound)
			}
		}
		return nil
	})
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}
