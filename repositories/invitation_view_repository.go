package repositories

import (
	"context"
	"time"

	"dugun.link/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LabelCount gruplanmış görüntüleme sayısıdır (cihaz türü veya tarayıcı).
type LabelCount struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// DayCount bir UTC gününe (YYYY-MM-DD) düşen görüntüleme sayısıdır.
type DayCount struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
}

// IInvitationViewRepository görüntüleme kayıtları için arayüz. Kayıtlar yalnızca eklenir.
type IInvitationViewRepository interface {
	Create(ctx context.Context, view *models.InvitationView) error
	CountByInvitationID(ctx context.Context, invitationID uint) (int64, error)
	CountUniqueVisitors(ctx context.Context, invitationID uint) (int64, error)
	CountByDeviceType(ctx context.Context, invitationID uint) ([]LabelCount, error)
	CountByBrowser(ctx context.Context, invitationID uint, limit int) ([]LabelCount, error)
	CountByDaySince(ctx context.Context, invitationID uint, since time.Time) ([]DayCount, error)
}

type InvitationViewRepository struct {
	db *gorm.DB
}

func NewInvitationViewRepository(db *gorm.DB) IInvitationViewRepository {
	return &InvitationViewRepository{db: db}
}

func (r *InvitationViewRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *InvitationViewRepository) Create(ctx context.Context, view *models.InvitationView) error {
	if view.ViewedAt.IsZero() {
		view.ViewedAt = time.Now().UTC()
	}
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(view).Error)
}

func (r *InvitationViewRepository) CountByInvitationID(ctx context.Context, invitationID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.InvitationView{}).Where("invitation_id = ?", invitationID).Count(&count).Error
	return count, err
}

// CountUniqueVisitors farklı IP adreslerinin sayısını döndürür.
func (r *InvitationViewRepository) CountUniqueVisitors(ctx context.Context, invitationID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.InvitationView{}).
		Where("invitation_id = ?", invitationID).
		Distinct("ip_address").
		Count(&count).Error
	return count, err
}

func (r *InvitationViewRepository) CountByDeviceType(ctx context.Context, invitationID uint) ([]LabelCount, error) {
	return r.countGroupedBy(ctx, invitationID, "device_type", 0)
}

func (r *InvitationViewRepository) CountByBrowser(ctx context.Context, invitationID uint, limit int) ([]LabelCount, error) {
	return r.countGroupedBy(ctx, invitationID, "browser", limit)
}

// column yalnızca bu dosyadaki sabit sütun adlarıyla çağrılır.
func (r *InvitationViewRepository) countGroupedBy(ctx context.Context, invitationID uint, column string, limit int) ([]LabelCount, error) {
	var rows []LabelCount
	query := r.getDB(ctx).Model(&models.InvitationView{}).
		Select(column+" AS label, COUNT(*) AS total").
		Where("invitation_id = ?", invitationID).
		Group(column).
		Order("total desc").Order("label asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Scan(&rows).Error
	return rows, err
}

// CountByDaySince since'ten itibaren görüntülemeleri UTC gününe göre gruplar. Görüntüleme
// olmayan günler sonuçta yer almaz.
func (r *InvitationViewRepository) CountByDaySince(ctx context.Context, invitationID uint, since time.Time) ([]DayCount, error) {
	db := r.getDB(ctx)
	day := "date(viewed_at)"
	if db.Dialector.Name() == "postgres" {
		day = "to_char(viewed_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	}

	var rows []DayCount
	err := db.Model(&models.InvitationView{}).
		Select(day+" AS day, COUNT(*) AS total").
		Where("invitation_id = ? AND viewed_at >= ?", invitationID, since.UTC()).
		Group(day).
		Order("day asc").
		Scan(&rows).Error
	return rows, err
}
