package repositories

import (
	"context"
	"errors"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/models"
	"dugun.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IInvitationRepository davetiye veritabanı işlemleri için arayüz.
type IInvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, id uint) (*models.Invitation, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Invitation, error)
	FindPublishedByUniqueURL(ctx context.Context, uniqueURL string) (*models.Invitation, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Invitation, int64, error)
	UpdateDetails(ctx context.Context, invitation *models.Invitation) error
	UpdateStatus(ctx context.Context, invitation *models.Invitation) error
	AssignUniqueURL(ctx context.Context, id uint, uniqueURL string) error
	Delete(ctx context.Context, id uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// InvitationRepository IInvitationRepository arayüzünü uygular.
type InvitationRepository struct {
	db   *gorm.DB
	base IBaseRepository[models.Invitation]
}

func NewInvitationRepository(db *gorm.DB) IInvitationRepository {
	base := NewBaseRepository[models.Invitation](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "updated_at", "status", "published_at"})
	return &InvitationRepository{db: db, base: base}
}

func (r *InvitationRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return translateError(r.getDB(ctx).Omit(clause.Associations).Create(invitation).Error)
}

// FindByID davetiyeyi teması ile birlikte getirir.
func (r *InvitationRepository) FindByID(ctx context.Context, id uint) (*models.Invitation, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	if err := r.getDB(ctx).Preload("Template").First(&invitation, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("InvitationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &invitation, nil
}

// FindByIDForUpdate satırı kilitleyerek okur; transaction context'i ile çağrılmalıdır.
// Aynı davetiye için eşzamanlı yayınlama işlemleri bu kilit üzerinde sıraya girer.
func (r *InvitationRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Invitation, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var invitation models.Invitation
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&invitation, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &invitation, nil
}

// FindPublishedByUniqueURL yalnızca yayındaki davetiyeyi döndürür. Taslak, yayından
// kaldırılmış veya hiç var olmayan adresler aynı şekilde ErrNotFound döner.
func (r *InvitationRepository) FindPublishedByUniqueURL(ctx context.Context, uniqueURL string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := r.getDB(ctx).Preload("Template").
		Where("unique_url = ? AND status = ?", uniqueURL, models.InvitationStatusPublished).
		First(&invitation).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &invitation, nil
}

// FindAllByUserIDPaginated kullanıcının davetiyelerini filtreleyip sayfalayarak döndürür.
// params.Name damat/gelin adında arar, params.Status durum filtresidir.
func (r *InvitationRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Invitation, int64, error) {
	var invitations []models.Invitation
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Invitation{}).Where("user_id = ?", userID)
	if params.Name != "" {
		like := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("LOWER(groom_name) LIKE ? OR LOWER(bride_name) LIKE ?", like, like)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("InvitationRepository.Count (Paginated by User): DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return invitations, 0, nil
	}

	query = r.base.ApplySort(query, params).Preload("Template").
		Limit(params.PerPage).Offset(params.CalculateOffset())
	if err := query.Find(&invitations).Error; err != nil {
		configslog.Log.Error("InvitationRepository.Find (Paginated by User): DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, totalCount, err
	}
	return invitations, totalCount, nil
}

// detailColumns sahibinin panelden değiştirebildiği sütunlardır. status, unique_url ve
// published_at yalnızca yayın işlemleri tarafından yazılır.
var detailColumns = []string{
	"template_id", "groom_name", "bride_name", "groom_parents", "bride_parents",
	"ceremony_at", "ceremony_venue", "ceremony_address",
	"reception_at", "reception_venue", "reception_address",
	"latitude", "longitude", "music_path",
}

var statusColumns = []string{"status", "published_at"}

// UpdateDetails yalnızca davetiye bilgilerini yazar; eşzamanlı bir yayınlama işleminin
// yazdığı durum ve adres sütunlarına dokunmaz.
func (r *InvitationRepository) UpdateDetails(ctx context.Context, invitation *models.Invitation) error {
	return r.updateColumns(ctx, invitation, detailColumns)
}

// UpdateStatus yalnızca yayın durumunu yazar. FindByIDForUpdate ile kilitlenmiş satır için çağrılır.
func (r *InvitationRepository) UpdateStatus(ctx context.Context, invitation *models.Invitation) error {
	return r.updateColumns(ctx, invitation, statusColumns)
}

func (r *InvitationRepository) updateColumns(ctx context.Context, invitation *models.Invitation, columns []string) error {
	if invitation.ID == 0 {
		return ErrNotFound
	}
	selected := append(append([]string{}, columns...), "updated_at", "updated_by")
	result := r.getDB(ctx).Model(invitation).Select(selected).Updates(invitation)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AssignUniqueURL adres yalnızca henüz atanmamışsa yazılır. Adres başka bir davetiyede
// kullanılıyorsa ErrDuplicate, davetiyenin zaten adresi varsa ErrNotFound döner.
func (r *InvitationRepository) AssignUniqueURL(ctx context.Context, id uint, uniqueURL string) error {
	result := r.getDB(ctx).Model(&models.Invitation{}).
		Where("id = ? AND unique_url IS NULL", id).
		Update("unique_url", uniqueURL)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete davetiyeyi fiziksel olarak siler; galeri, misafir, LCV ve görüntüleme kayıtları
// veritabanı CASCADE kısıtlarıyla birlikte silinir.
func (r *InvitationRepository) Delete(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

func (r *InvitationRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Invitation{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
