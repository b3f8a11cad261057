package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gharmitra/platform-backend/internal/agreements"
	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/contacts"
	"gharmitra/platform-backend/internal/notifications"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/internal/verification"
	"gharmitra/platform-backend/internal/wishlists"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	logger := buildLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Database
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to access sql.DB", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)
	defer sqlDB.Close()

	// The admin queue uses raw join queries over the same connection pool
	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	// Redis backs OTP storage
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Repositories
	userRepo := auth.NewUserRepository(gormDB)
	propertyRepo := properties.NewRepository(gormDB)
	verificationRepo := verification.NewRepository(gormDB)
	queueRepo := verification.NewQueueRepository(sqlxDB)
	contactRepo := contacts.NewRepository(gormDB)
	wishlistRepo := wishlists.NewRepository(gormDB)
	agreementRepo := agreements.NewRepository(gormDB)

	// Services
	notifier := notifications.NewService(gormDB, logger)
	authService := auth.NewService(userRepo, auth.NewRedisOTPStore(redisClient), cfg.Auth, logger)
	propertyService := properties.NewService(propertyRepo, logger)
	ownerVerification := verification.NewOwnerService(verificationRepo, propertyRepo, cfg.Verification, logger)
	adminVerification := verification.NewAdminService(verificationRepo, queueRepo, propertyRepo, notifier, cfg.Verification, logger)
	contactService := contacts.NewService(contactRepo, propertyRepo, notifier, logger)
	wishlistService := wishlists.NewService(wishlistRepo, propertyRepo, logger)
	agreementService := agreements.NewService(agreementRepo, propertyRepo, userRepo, logger)

	// Handlers
	authHandler := auth.NewHandler(authService, logger)
	propertyHandler := properties.NewHandler(propertyService, logger)
	verificationHandler := verification.NewHandler(ownerVerification, logger)
	adminHandler := verification.NewAdminHandler(adminVerification, logger)
	contactHandler := contacts.NewHandler(contactService, logger)
	wishlistHandler := wishlists.NewHandler(wishlistService, logger)
	notificationHandler := notifications.NewHandler(notifier, logger)
	agreementHandler := agreements.NewHandler(agreementService, logger)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := cfg.Auth.JWTSecret
	api := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(api, secret)
		propertyHandler.RegisterPublicRoutes(api)
	}

	authed := api.Group("", auth.RequireAuth(secret))
	{
		notificationHandler.RegisterRoutes(authed)
		wishlistHandler.RegisterRoutes(authed)
		contactHandler.RegisterSeekerRoutes(authed)
	}

	owner := api.Group("/owner", auth.RequireAuth(secret), auth.RequireRole(auth.RoleOwner))
	{
		propertyHandler.RegisterOwnerRoutes(owner)
		verificationHandler.RegisterRoutes(owner)
		contactHandler.RegisterOwnerRoutes(owner)
		agreementHandler.RegisterRoutes(owner)
	}

	admin := api.Group("/admin", auth.RequireAuth(secret), auth.RequireRole(auth.RoleAdmin))
	{
		adminHandler.RegisterRoutes(admin)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}

func buildLogger(level string) *zap.Logger {
	if level == "debug" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
