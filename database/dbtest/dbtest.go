// Package dbtest testler için geçici, migrate edilmiş bir SQLite veritabanı sağlar.
// Yabancı anahtarlar açıktır; CASCADE ve RESTRICT kısıtları gerçekten uygulanır.
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"dugun.link/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New her test için ayrı bir dosya veritabanı açar ve tüm tabloları oluşturur.
// Tek bağlantı kullanılır; eşzamanlı yazmalar SQLite kilidinde beklemek yerine havuzda sıraya girer.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.RunMigrationsInOrder(db))
	return db
}
