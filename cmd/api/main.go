package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/casadopastor/catalog-service/config"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/promotion"
	"github.com/casadopastor/catalog-service/pkg/broker"
	"github.com/casadopastor/catalog-service/pkg/cache"
	"github.com/casadopastor/catalog-service/pkg/logger"
	"github.com/casadopastor/catalog-service/pkg/postgres"
	"github.com/casadopastor/catalog-service/pkg/search"

	catH "github.com/casadopastor/catalog-service/internal/catalog/handler"
	catListenerPkg "github.com/casadopastor/catalog-service/internal/catalog/listener"
	catRepoPkg "github.com/casadopastor/catalog-service/internal/catalog/repository"
	catUCPkg "github.com/casadopastor/catalog-service/internal/catalog/usecase"

	cgH "github.com/casadopastor/catalog-service/internal/category/handler"
	cgRepoPkg "github.com/casadopastor/catalog-service/internal/category/repository"
	cgUCPkg "github.com/casadopastor/catalog-service/internal/category/usecase"

	promH "github.com/casadopastor/catalog-service/internal/promotion/handler"
	promRepoPkg "github.com/casadopastor/catalog-service/internal/promotion/repository"
	promUCPkg "github.com/casadopastor/catalog-service/internal/promotion/usecase"

	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	locales := locale.NewSet(cfg.Catalog.BaseLocale, cfg.Catalog.Locales)

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db, locales)
	cgRepo := cgRepoPkg.NewPGRepository(db)
	promRepo := promRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis, responses will not be cached", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	// 5.5 Initialize Kafka
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	kafkaPublisher := broker.NewPublisher(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer kafkaPublisher.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch, search falls back to the database", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize Promotion Cache and UseCases
	promCache := promotion.NewCache(promRepo, time.Duration(cfg.Catalog.PromotionTTL)*time.Second)

	catUC := catUCPkg.NewCatalogUseCase(catRepo, promCache, redisClient, esClient, kafkaPublisher, locales, &cfg.Catalog, appLogger)
	cgUC := cgUCPkg.NewCategoryUseCase(cgRepo, locales, appLogger)
	promUC := promUCPkg.NewPromotionUseCase(promRepo, promCache, catUC, kafkaPublisher, appLogger)

	// 6.5 Start Listener
	catListener := catListenerPkg.NewCatalogListener(kafkaConsumer, catUC, promCache, appLogger)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go catListener.Start(ctx)

	// 7. HTTP Server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	public := e.Group("/api/v1")
	admin := e.Group("/api/v1/admin", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWT.SecretKey),
	}))

	catH.NewCatalogHandler(catUC, locales, cfg.Catalog.MaxPageSize, appLogger).Register(public, admin)
	cgH.NewCategoryHandler(cgUC, locales, appLogger).Register(public, admin)
	promH.NewPromotionHandler(promUC, appLogger).Register(admin)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))
	go func() {
		if err := e.Start(port); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
