package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dugun.link/configs"
	"dugun.link/configs/configsdatabase"
	"dugun.link/configs/configslog"
	"dugun.link/pkg/redisstorage"
	"dugun.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadAppConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	var storage fiber.Storage
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStorage, err := redisstorage.New(ctx, cfg.RedisURL, "dugun:")
		cancel()
		if err != nil {
			configslog.Log.Fatal("Redis bağlantısı kurulamadı", zap.Error(err))
		}
		defer redisStorage.Close()
		storage = redisStorage
		configslog.SLog.Info("Oturum ve rate limit sayaçları Redis'te tutulacak")
	}

	deps := routes.NewDependencies(configsdatabase.GetDB(), cfg, storage)
	app := routes.NewApp(deps)

	go func() {
		configslog.SLog.Infof("Sunucu %s portunda başlatılıyor (%s)", cfg.Port, cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	configslog.SLog.Info("Sunucu kapatılıyor...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
	}
	// Kuyrukta bekleyen görüntülemeler veritabanı kapanmadan yazılır.
	if err := deps.Recorder.Close(ctx); err != nil {
		configslog.Log.Warn("Görüntüleme kuyruğu tamamen boşaltılamadı", zap.Error(err))
	}
	configslog.SLog.Info("Sunucu kapatıldı")
}
