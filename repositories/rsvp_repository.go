package repositories

import (
	"context"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IRsvpRepository LCV kayıtları için arayüz.
type IRsvpRepository interface {
	Create(ctx context.Context, rsvp *models.Rsvp) error
	FindByID(ctx context.Context, id uint) (*models.Rsvp, error)
	FindByInvitationIDPaginated(ctx context.Context, invitationID uint, params queryparams.ListParams) ([]models.Rsvp, int64, error)
	CountByInvitationID(ctx context.Context, invitationID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type RsvpRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Rsvp]
}

func NewRsvpRepository(db *gorm.DB) IRsvpRepository {
	return &RsvpRepository{db: db, base: NewBaseRepository[models.Rsvp](db)}
}

func (r *RsvpRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Create her çağrıda yeni bir satır ekler; aynı isimden gelen tekrar eden gönderimler birleştirilmez.
func (r *RsvpRepository) Create(ctx context.Context, rsvp *models.Rsvp) error {
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(rsvp).Error)
}

func (r *RsvpRepository) FindByID(ctx context.Context, id uint) (*models.Rsvp, error) {
	return r.base.FindByID(ctx, id)
}

// FindByInvitationIDPaginated en yeni mesaj önce gelecek şekilde listeler.
func (r *RsvpRepository) FindByInvitationIDPaginated(ctx context.Context, invitationID uint, params queryparams.ListParams) ([]models.Rsvp, int64, error) {
	var rsvps []models.Rsvp
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Rsvp{}).Where("invitation_id = ?", invitationID)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("RsvpRepository.Count (Paginated): DB error", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return rsvps, 0, nil
	}
	err := query.Order("created_at desc").Order("id desc").
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&rsvps).Error
	return rsvps, totalCount, err
}

func (r *RsvpRepository) CountByInvitationID(ctx context.Context, invitationID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Rsvp{}).Where("invitation_id = ?", invitationID).Count(&count).Error
	return count, err
}

func (r *RsvpRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}
