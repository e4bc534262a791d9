package seeders

import (
	"errors"

	"dugun.link/configs/configslog"
	"dugun.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultTemplates uygulamayla birlikte gelen temalardır; varlıklar static/templates altındadır.
var DefaultTemplates = []models.Template{
	{
		Name:          "klasik",
		ThumbnailPath: "/static/templates/klasik/thumbnail.jpg",
		HTMLPath:      "/static/templates/klasik/index.html",
		CSSPath:       "/static/templates/klasik/style.css",
		JSPath:        "/static/templates/klasik/script.js",
		IsActive:      true,
	},
	{
		Name:          "bahar",
		ThumbnailPath: "/static/templates/bahar/thumbnail.jpg",
		HTMLPath:      "/static/templates/bahar/index.html",
		CSSPath:       "/static/templates/bahar/style.css",
		JSPath:        "/static/templates/bahar/script.js",
		IsActive:      true,
	},
	{
		Name:          "minimal",
		ThumbnailPath: "/static/templates/minimal/thumbnail.jpg",
		HTMLPath:      "/static/templates/minimal/index.html",
		CSSPath:       "/static/templates/minimal/style.css",
		IsActive:      true,
	},
}

// SeedTemplates eksik varsayılan temaları ekler; mevcut olanlara dokunmaz.
func SeedTemplates(db *gorm.DB) error {
	var createdCount int
	errorOccurred := false

	for _, template := range DefaultTemplates {
		var existing models.Template
		err := db.Where("name = ?", template.Name).First(&existing).Error
		if err == nil {
			configslog.SLog.Debugf("Tema '%s' zaten mevcut, atlanıyor.", template.Name)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("Tema kontrol edilirken veritabanı hatası", zap.String("name", template.Name), zap.Error(err))
			errorOccurred = true
			continue
		}

		template := template
		if err := db.Create(&template).Error; err != nil {
			configslog.Log.Error("Tema oluşturulamadı", zap.String("name", template.Name), zap.Error(err))
			errorOccurred = true
			continue
		}
		configslog.SLog.Infof("Tema '%s' oluşturuldu (ID: %d).", template.Name, template.ID)
		createdCount++
	}

	if errorOccurred {
		return errors.New("temalar seed edilirken en az bir hata oluştu")
	}
	configslog.SLog.Infof("Tema seed işlemi tamamlandı, %d yeni tema.", createdCount)
	return nil
}
