package repositories

import (
	"context"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IGuestRepository misafir listesi veritabanı işlemleri için arayüz.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	CreateBatch(ctx context.Context, guests []models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindByInvitationID(ctx context.Context, invitationID uint) ([]models.Guest, error)
	FindByInvitationIDPaginated(ctx context.Context, invitationID uint, params queryparams.ListParams) ([]models.Guest, int64, error)
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, id uint) error
	CountByCategory(ctx context.Context, invitationID uint) (map[models.GuestCategory]int64, error)
}

type GuestRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Guest]
}

func NewGuestRepository(db *gorm.DB) IGuestRepository {
	base := NewBaseRepository[models.Guest](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "name", "category"})
	return &GuestRepository{db: db, base: base}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.base.Create(ctx, guest)
}

// CreateBatch misafirleri 100'lük gruplar halinde ekler. Tek bir satır başarısız olursa
// çağıran transaction'ı geri almalıdır.
func (r *GuestRepository) CreateBatch(ctx context.Context, guests []models.Guest) error {
	if len(guests) == 0 {
		return nil
	}
	return translateError(r.getDB(ctx).CreateInBatches(&guests, 100).Error)
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	return r.base.FindByID(ctx, id)
}

func (r *GuestRepository) FindByInvitationID(ctx context.Context, invitationID uint) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.getDB(ctx).Where("invitation_id = ?", invitationID).Order("id asc").Find(&guests).Error
	return guests, err
}

// FindByInvitationIDPaginated params.Name ada göre, params.Status kategoriye göre filtreler.
func (r *GuestRepository) FindByInvitationIDPaginated(ctx context.Context, invitationID uint, params queryparams.ListParams) ([]models.Guest, int64, error) {
	var guests []models.Guest
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Guest{}).Where("invitation_id = ?", invitationID)
	if params.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Name)+"%")
	}
	if params.Status != "" {
		query = query.Where("category = ?", params.Status)
	}
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("GuestRepository.Count (Paginated): DB error", zap.Uint("invitationID", invitationID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return guests, 0, nil
	}
	err := r.base.ApplySort(query, params).Limit(params.PerPage).Offset(params.CalculateOffset()).Find(&guests).Error
	return guests, totalCount, err
}

func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	return r.base.Save(ctx, guest)
}

func (r *GuestRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

type categoryCount struct {
	Category models.GuestCategory
	Total    int64
}

// CountByCategory her kategori için misafir sayısını döndürür; misafiri olmayan kategoriler 0'dır.
func (r *GuestRepository) CountByCategory(ctx context.Context, invitationID uint) (map[models.GuestCategory]int64, error) {
	var rows []categoryCount
	err := r.getDB(ctx).Model(&models.Guest{}).
		Select("category, COUNT(*) AS total").
		Where("invitation_id = ?", invitationID).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[models.GuestCategory]int64, len(models.GuestCategories))
	for _, c := range models.GuestCategories {
		counts[c] = 0
	}
	for _, row := range rows {
		counts[row.Category] = row.Total
	}
	return counts, nil
}
