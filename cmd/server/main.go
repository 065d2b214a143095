package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appidentity "github.com/iletigo/mutabakat/internal/application/identity"
	appreconciliation "github.com/iletigo/mutabakat/internal/application/reconciliation"
	appreport "github.com/iletigo/mutabakat/internal/application/report"
	"github.com/iletigo/mutabakat/internal/domain/reconciliation"
	"github.com/iletigo/mutabakat/internal/domain/shared"
	"github.com/iletigo/mutabakat/internal/infrastructure/auth"
	"github.com/iletigo/mutabakat/internal/infrastructure/cache"
	"github.com/iletigo/mutabakat/internal/infrastructure/config"
	"github.com/iletigo/mutabakat/internal/infrastructure/export"
	"github.com/iletigo/mutabakat/internal/infrastructure/logger"
	"github.com/iletigo/mutabakat/internal/infrastructure/persistence"
	"github.com/iletigo/mutabakat/internal/infrastructure/printing"
	"github.com/iletigo/mutabakat/internal/infrastructure/storage"
	"github.com/iletigo/mutabakat/internal/infrastructure/telemetry"
	"github.com/iletigo/mutabakat/internal/interfaces/http/handler"
	"github.com/iletigo/mutabakat/internal/interfaces/http/middleware"
	"github.com/iletigo/mutabakat/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/iletigo/mutabakat/docs"
)

//	@title			Mutabakat API
//	@version		1.0
//	@description	Back-office API for tracking balance reconciliations with counterparties.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry comes first so the log bridge can be teed in before
	// anything else logs.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		log = loggerProvider.Tee(log, cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level))
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Mutabakat API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.NewDBTracing(cfg.Telemetry, log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			_ = client.Close()
		}()
		redisClient = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	jwtService := auth.NewJWTService(cfg.JWT)

	objects, err := newObjectStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize attachment storage", zap.Error(err))
	}

	renderer, err := printing.NewReportRenderer()
	if err != nil {
		log.Fatal("Failed to load report templates", zap.Error(err))
	}

	policy, err := reconciliation.ParseTransitionPolicy(cfg.Reconciliation.TransitionPolicy)
	if err != nil {
		log.Fatal("Invalid reconciliation configuration", zap.Error(err))
	}

	reconOpts := []appreconciliation.Option{
		appreconciliation.WithStorage(objects),
		appreconciliation.WithRenderer(renderer),
		appreconciliation.WithExporter(export.NewXLSXExporter()),
	}
	if cfg.Printing.PDFEnabled {
		chrome := printing.NewChromedpRenderer(cfg.Printing, log)
		defer func() {
			_ = chrome.Close()
		}()
		reconOpts = append(reconOpts, appreconciliation.WithPDFConverter(chrome))
	}
	if meterProvider.IsEnabled() {
		metrics, err := telemetry.NewReconciliationMetrics(meterProvider.Meter("mutabakat/reconciliation"))
		if err != nil {
			log.Fatal("Failed to create reconciliation metrics", zap.Error(err))
		}
		reconOpts = append(reconOpts, appreconciliation.WithMetrics(metrics))
	}

	clock := shared.SystemClock()
	txScope := persistence.NewGormTransactionScope(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	authService := appidentity.NewAuthService(userRepo, txScope, jwtService, blacklist, clock, log)
	reconService := appreconciliation.NewService(
		appreconciliation.Repositories{
			Reconciliations: persistence.NewGormReconciliationRepository(db.DB),
			Details:         persistence.NewGormDetailRepository(db.DB),
			Attachments:     persistence.NewGormAttachmentRepository(db.DB),
			Comments:        persistence.NewGormCommentRepository(db.DB),
		},
		txScope,
		clock,
		appreconciliation.Config{Policy: policy, ExportMaxRows: cfg.Reconciliation.ExportMaxRows},
		log,
		reconOpts...,
	)
	dashboardService := appreport.NewDashboardService(
		persistence.NewGormDashboardRepository(db.DB),
		cache.NewStatsCache(redisClient, cfg.Dashboard.CacheTTL, log),
		clock,
		log,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		HTTP:    cfg.HTTP,
		Swagger: cfg.Swagger,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Profiling:     profiler.IsEnabled(),
		MeterProvider: meterProvider,
		JWT: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		Logger: log,
	}, router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Reconciliation: handler.NewReconciliationHandler(reconService),
		Dashboard:      handler.NewDashboardHandler(dashboardService),
		System:         handler.NewSystemHandler(db),
	})
	defer engine.Close()

	for _, route := range engine.APIRoutes() {
		log.Debug("Route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler stop failed", zap.Error(err))
	}
	// last, so the lines above still reach the collector
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited")
}

// newObjectStorage selects the attachment backend
func newObjectStorage(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (appreconciliation.ObjectStorage, error) {
	if cfg.Driver == config.StorageS3 {
		log.Info("Using S3 attachment storage", zap.String("bucket", cfg.S3Bucket))
		return storage.NewS3ObjectStorage(ctx, cfg, storage.WithLogger(log))
	}
	log.Info("Using local attachment storage", zap.String("dir", cfg.LocalDir))
	return storage.NewLocalObjectStorage(cfg.LocalDir)
}
