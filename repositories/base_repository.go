package repositories

import (
	"context"
	"errors"
	"strings"

	"dugun.link/configs/configslog"
	"dugun.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("kayıt bulunamadı")
	ErrDuplicate = errors.New("kayıt zaten mevcut")
	ErrInUse     = errors.New("kayıt başka kayıtlar tarafından kullanılıyor")
)

type txContextKey struct{}

// ContextWithTx transaction'ı context'e ekler. Repository metodları bu context ile
// çağrıldığında işlemler aynı transaction içinde çalışır.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// IsDuplicateError sürücüden bağımsız olarak benzersizlik ihlalini tanır.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// translateError GORM hatalarını repository hatalarına çevirir.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(strings.ToLower(err.Error()), "foreign key"):
		return ErrInUse
	case IsDuplicateError(err):
		return ErrDuplicate
	}
	return err
}

// IBaseRepository tek tablo üzerindeki standart CRUD işlemleri için generik arayüz.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) error
	SetAllowedSortColumns(columns []string)
	ApplySort(query *gorm.DB, params queryparams.ListParams) *gorm.DB
}

type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]struct{}
}

func NewBaseRepository[T any](db *gorm.DB) IBaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]struct{}{"id": {}, "created_at": {}}}
}

func (r *BaseRepository[T]) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = struct{}{}
	}
}

// ApplySort yalnızca izin verilen sütunlara göre sıralama ekler; diğerleri created_at'e düşer.
func (r *BaseRepository[T]) ApplySort(query *gorm.DB, params queryparams.ListParams) *gorm.DB {
	sortBy := params.SortBy
	if _, ok := r.allowedSortColumns[sortBy]; !ok {
		if sortBy != "" {
			configslog.Log.Warn("Geçersiz sıralama alanı istendi, varsayılan kullanılıyor", zap.String("requestedSortBy", sortBy))
		}
		sortBy = queryparams.DefaultSortBy
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}
	// id ikincil anahtar: aynı created_at değerinde sayfalar arası sıra sabit kalır.
	return query.Order(sortBy + " " + orderBy).Order("id " + orderBy)
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.getDB(ctx).Create(entity).Error)
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var entity T
	if err := r.getDB(ctx).First(&entity, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Save(ctx context.Context, entity *T) error {
	return translateError(r.getDB(ctx).Omit(clause.Associations).Save(entity).Error)
}

// Delete kaydı fiziksel olarak siler. Kayıt yoksa ErrNotFound döner.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	var entity T
	result := r.getDB(ctx).Delete(&entity, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
