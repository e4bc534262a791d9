package database

import (
	"errors"

	"dugun.link/configs/configslog"
	"dugun.link/database/migrations"
	"dugun.link/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize migrasyon ve seed adımlarını tek transaction içinde çalıştırır;
// herhangi bir adım başarısız olursa hiçbir değişiklik kalmaz.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Migrate veya seed bayrağı belirtilmedi, işlem yapılmayacak.")
		return nil
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başlıyor...")
	err := db.Transaction(func(tx *gorm.DB) error {
		if migrate {
			if err := RunMigrationsInOrder(tx); err != nil {
				return err
			}
		} else {
			configslog.SLog.Info("Migrate bayrağı belirtilmedi, migrasyon adımı atlanıyor.")
		}

		if seed {
			if err := CheckAndRunSeeders(tx); err != nil {
				return err
			}
		} else {
			configslog.SLog.Info("Seed bayrağı belirtilmedi, seeder adımı atlanıyor.")
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("Veritabanı başlatma işlemi geri alındı", zap.Error(err))
		return err
	}

	configslog.SLog.Info("Veritabanı başlatma işlemi başarıyla tamamlandı")
	return nil
}

type migration struct {
	name string
	run  func(*gorm.DB) error
}

// Sıra önemlidir: her tablo yalnızca kendinden önceki tablolara referans verir.
var orderedMigrations = []migration{
	{"users", migrations.MigrateUsersTable},
	{"templates", migrations.MigrateTemplatesTable},
	{"invitations", migrations.MigrateInvitationsTable},
	{"galleries", migrations.MigrateGalleriesTable},
	{"guests", migrations.MigrateGuestsTable},
	{"rsvps", migrations.MigrateRsvpsTable},
	{"invitation_views", migrations.MigrateInvitationViewsTable},
}

func RunMigrationsInOrder(db *gorm.DB) error {
	configslog.SLog.Info("Migrasyonlar sırayla çalıştırılıyor...")
	for _, m := range orderedMigrations {
		if err := m.run(db); err != nil {
			configslog.Log.Error("Migrasyon başarısız oldu", zap.String("table", m.name), zap.Error(err))
			return err
		}
	}
	configslog.SLog.Info("Tüm migrasyonlar başarıyla çalıştırıldı.")
	return nil
}

func CheckAndRunSeeders(db *gorm.DB) error {
	configslog.SLog.Info("Seeder'lar çalıştırılıyor...")
	var errs []error
	if err := seeders.SeedTemplates(db); err != nil {
		errs = append(errs, err)
	}
	if err := seeders.SeedDemoUser(db); err != nil {
		configslog.Log.Error("Demo kullanıcı seed edilemedi", zap.Error(err))
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	configslog.SLog.Info("Tüm seeder'lar başarıyla çalıştırıldı.")
	return nil
}
