package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shenikar/geo_checkin/docs"
	v1 "github.com/shenikar/geo_checkin/internal/handler/http/v1"
	"github.com/shenikar/geo_checkin/internal/metrics"
	"github.com/shenikar/geo_checkin/internal/registry"
	"github.com/shenikar/geo_checkin/internal/repository"
	"github.com/shenikar/geo_checkin/internal/service"
	"github.com/shenikar/geo_checkin/internal/session"
	"github.com/shenikar/geo_checkin/internal/sheets"
	"github.com/shenikar/geo_checkin/internal/upload"
	"github.com/shenikar/geo_checkin/internal/webhook"
	"github.com/shenikar/geo_checkin/pkg/logger"
	"github.com/shenikar/geo_checkin/pkg/postgres"
	redisclient "github.com/shenikar/geo_checkin/pkg/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&migrationsPath, "migrations", "migrations", "directory with migration files")
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg.DatabaseURL, "up"); err != nil {
		return err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Реестр геозон и журнал посещений в Google Sheets
	sheetsClient := newSheetsClient(ctx)
	var (
		source   registry.Source
		visitLog service.VisitLog
	)
	if sheetsClient != nil {
		source = registry.NewCachedSource(sheetsClient, redisClient, cfg.RegistryCacheTTL, log)
		visitLog = sheetsClient
	}
	reg := registry.New(registry.DefaultSites(), source, registry.Options{
		Range:         cfg.SheetSitesRange,
		DefaultRadius: cfg.DefaultRadiusMeters,
	}, log)
	observeRefresh := func(err error) {
		metrics.ObserveRefresh(err, len(reg.ListSites()))
	}
	// Ошибка источника не мешает старту: остаются встроенные геозоны
	observeRefresh(reg.Refresh(ctx))
	reg.StartRefresher(ctx, cfg.RegistryRefreshInterval, observeRefresh)

	// Хранилище сессий
	sessions := newSessionStore(redisClient)

	// Инициализация издателя и воркера вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Загрузка фото на локальный диск
	relay := upload.NewRelay(upload.NewLocalStore(cfg.UploadDir), cfg.UploadURLPrefix, true, log)

	// Инициализация репозиториев и сервисов
	visitRepo := repository.NewVisitRepository(dbpool)
	checkinService := service.NewCheckinService(reg, sessions, visitRepo, relay, visitLog, webhookPublisher, log, cfg)

	// Инициализация хэндлеров
	handler := v1.NewHandler(checkinService, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log), metrics.Middleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	handler.RegisterUploadAlias(router)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info("Received shutdown signal, shutting down server...")
	case err := <-serverErr:
		return fmt.Errorf("error starting HTTP server: %w", err)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server gracefully stopped")
	return nil
}

// newSheetsClient возвращает nil, если доступ к таблице не настроен или не создан
func newSheetsClient(ctx context.Context) *sheets.Client {
	if !cfg.SheetsConfigured() {
		log.Info("Google Sheets is not configured, using built-in sites only")
		return nil
	}
	client, err := sheets.New(ctx, sheets.Credentials{
		ServiceAccountEmail: cfg.GoogleServiceAccountEmail,
		PrivateKey:          cfg.GooglePrivateKey,
		SpreadsheetID:       cfg.GoogleSheetID,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to create Google Sheets client, using built-in sites only")
		return nil
	}
	return client
}

func newSessionStore(redisClient *redis.Client) service.SessionStore {
	if cfg.SessionBackend == "memory" {
		log.Info("Using in-memory session store")
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	return session.NewRedisStore(redisClient, cfg.SessionTTL)
}
