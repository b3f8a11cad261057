package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/notifications"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/internal/verification"
)

// The expiry worker demotes VERIFIED listings whose validity window has
// lapsed. It runs hourly; a missed run only delays the demotion, it never
// loses it, so the schedule needs no catch-up bookkeeping.
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to access sql.DB", zap.Error(err))
	}
	defer sqlDB.Close()
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	verificationRepo := verification.NewRepository(gormDB)
	queueRepo := verification.NewQueueRepository(sqlxDB)
	propertyRepo := properties.NewRepository(gormDB)
	notifier := notifications.NewService(gormDB, logger)
	adminService := verification.NewAdminService(verificationRepo, queueRepo, propertyRepo, notifier, cfg.Verification, logger)

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		expired, err := adminService.ExpireApproved(ctx, time.Now())
		if err != nil {
			logger.Error("expiry sweep failed", zap.Error(err))
			return
		}
		if expired > 0 {
			logger.Info("expiry sweep completed", zap.Int64("expired", expired))
		}
	}

	// Sweep once on startup so a long-stopped worker catches up immediately
	sweep()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", sweep); err != nil {
		logger.Fatal("failed to schedule expiry sweep", zap.Error(err))
	}
	scheduler.Start()
	logger.Info("expiry worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("expiry worker shutting down")
	<-scheduler.Stop().Done()
}
