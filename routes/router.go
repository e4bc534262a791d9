package routes

import (
	"dugun.link/configs"
	"dugun.link/handlers"
	"dugun.link/middlewares"
	"dugun.link/policies"
	"dugun.link/repositories"
	"dugun.link/services"
	"dugun.link/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Dependencies rotaların ihtiyaç duyduğu servislerdir. main ve HTTP testleri
// aynı kurulumu NewDependencies ile yapar.
type Dependencies struct {
	Config   configs.AppConfig
	DB       *gorm.DB
	Sessions *session.Store
	// LimiterStorage nil ise rate limit sayaçları bellekte tutulur.
	LimiterStorage fiber.Storage
	Recorder       *services.AsyncViewRecorder

	Auth        services.IAuthService
	Templates   services.ITemplateService
	Invitations services.IInvitationService
	Galleries   services.IGalleryService
	Guests      services.IGuestService
	Public      services.IPublicInvitationService
	Rsvps       services.IRsvpService
	Statistics  services.IStatisticsService
}

// NewDependencies repository ve servisleri verilen bağlantı üzerinde kurar.
// storage doluysa hem oturumlar hem rate limit sayaçları orada tutulur.
func NewDependencies(db *gorm.DB, cfg configs.AppConfig, storage fiber.Storage) *Dependencies {
	gate := policies.NewGate()

	userRepo := repositories.NewUserRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	invitationRepo := repositories.NewInvitationRepository(db)
	galleryRepo := repositories.NewGalleryRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	rsvpRepo := repositories.NewRsvpRepository(db)
	viewRepo := repositories.NewInvitationViewRepository(db)

	templates := services.NewTemplateService(templateRepo)
	recorder := services.NewAsyncViewRecorder(viewRepo, cfg.ViewQueueSize)
	public := services.NewPublicInvitationService(invitationRepo, galleryRepo, recorder)

	return &Dependencies{
		Config:         cfg,
		DB:             db,
		Sessions:       configs.SetupSession(cfg, storage),
		LimiterStorage: storage,
		Recorder:       recorder,
		Auth:           services.NewAuthService(userRepo),
		Templates:      templates,
		Invitations:    services.NewInvitationService(db, invitationRepo, templates, gate),
		Galleries:      services.NewGalleryService(galleryRepo, invitationRepo, gate),
		Guests:         services.NewGuestService(db, guestRepo, invitationRepo, gate),
		Public:         public,
		Rsvps:          services.NewRsvpService(rsvpRepo, public, invitationRepo, gate),
		Statistics:     services.NewStatisticsService(viewRepo, rsvpRepo, guestRepo, invitationRepo, gate),
	}
}

// NewApp fiber uygulamasını gömülü şablonlar ve ortak hata işleyicisiyle oluşturur.
func NewApp(deps *Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "dugun.link",
		Views:        views.NewEngine(),
		ErrorHandler: handlers.ErrorHandler,
		ProxyHeader:  deps.Config.ProxyHeader,
	})
	SetupRoutes(app, deps)
	return app
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(logger.New())
	app.Use(middlewares.MetricsMiddleware())
	app.Use(recoverMiddleware.New())

	app.Get("/healthz", healthz(deps.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	registerAuthRoutes(app, deps)
	registerPanelRoutes(app, deps)
	registerPublicRoutes(app, deps)

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(handlers.NotFoundHandler)
}

func healthz(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
