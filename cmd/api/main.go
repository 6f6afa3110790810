package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vitrine/catalog-service/config"
	"github.com/vitrine/catalog-service/pkg/broker"
	"github.com/vitrine/catalog-service/pkg/cache"
	"github.com/vitrine/catalog-service/pkg/i18n"
	"github.com/vitrine/catalog-service/pkg/imagestore"
	"github.com/vitrine/catalog-service/pkg/logger"
	"github.com/vitrine/catalog-service/pkg/postgres"
	"github.com/vitrine/catalog-service/pkg/search"
	"go.uber.org/zap"

	"github.com/vitrine/catalog-service/internal/events"
	"github.com/vitrine/catalog-service/internal/httpapi/router"
	"github.com/vitrine/catalog-service/internal/invalidation"

	catH "github.com/vitrine/catalog-service/internal/category/handler"
	catRepoPkg "github.com/vitrine/catalog-service/internal/category/repository"
	catUCPkg "github.com/vitrine/catalog-service/internal/category/usecase"

	prodH "github.com/vitrine/catalog-service/internal/product/handler"
	prodRepoPkg "github.com/vitrine/catalog-service/internal/product/repository"
	prodUCPkg "github.com/vitrine/catalog-service/internal/product/usecase"

	imgH "github.com/vitrine/catalog-service/internal/image/handler"
	imgRepoPkg "github.com/vitrine/catalog-service/internal/image/repository"
	imgUCPkg "github.com/vitrine/catalog-service/internal/image/usecase"

	storeH "github.com/vitrine/catalog-service/internal/storefront/handler"
	storeUCPkg "github.com/vitrine/catalog-service/internal/storefront/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n (embedded pt-BR/en bundles)
	if err := i18n.Init(); err != nil {
		log.Fatalf("failed to load i18n bundles: %v", err)
	}

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
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
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
	catRepo := catRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	imgRepo := imgRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka (change-event bus)
	kafkaCfg := &broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	}
	producer := broker.NewProducer(kafkaCfg)
	defer producer.Close()
	consumer := broker.NewConsumer(kafkaCfg)
	defer consumer.Close()
	appLogger.Info("Connected to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	publisher := events.NewKafkaPublisher(producer)

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (search falls back to the database)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 5.9 Initialize image store
	store, err := imagestore.NewClient(&imagestore.Config{
		URL:          cfg.Cloudinary.URL,
		UploadFolder: cfg.Cloudinary.UploadFolder,
		MaxSizeMB:    cfg.Cloudinary.MaxSizeMB,
	})
	if err != nil {
		appLogger.Fatal("Could not initialize image store", zap.Error(err))
	}

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, publisher, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, esClient, publisher, appLogger)
	imgUC := imgUCPkg.NewImageUseCase(imgRepo, prodRepo, store, publisher, appLogger)
	storeUC := storeUCPkg.NewStorefrontUseCase(prodRepo, catRepo, imgRepo, redisClient, esClient, appLogger)

	// 6.5 Start the cache invalidation listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := invalidation.NewListener(consumer, redisClient, appLogger)
	go listener.Start(ctx)

	// 7. Build router and start HTTP server
	handlers := &router.Handlers{
		Category:   catH.NewCategoryHandler(catUC, appLogger),
		Product:    prodH.NewProductHandler(prodUC, appLogger),
		Image:      imgH.NewImageHandler(imgUC, appLogger),
		Storefront: storeH.NewStorefrontHandler(storeUC, appLogger),
	}
	engine := router.NewRouter(&cfg.Server, handlers)

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: engine,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
