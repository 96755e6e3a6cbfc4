package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	auditapp "github.com/retailpos/backend/internal/application/audit"
	catalogapp "github.com/retailpos/backend/internal/application/catalog"
	posapp "github.com/retailpos/backend/internal/application/pos"
	printapp "github.com/retailpos/backend/internal/application/printing"
	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	infraprinting "github.com/retailpos/backend/internal/infrastructure/printing"
	"github.com/retailpos/backend/internal/infrastructure/scanner"
	"github.com/retailpos/backend/internal/infrastructure/storage"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

//	@title			Retail POS Terminal API
//	@version		1.0
//	@description	Point-of-sale terminal backend: customer sessions, barcode scanning, checkout and receipts.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting POS terminal backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("store", cfg.App.StoreName),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers. Both are no-ops when telemetry is disabled.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	meter := meterProvider.Meter("retailpos")
	registerMetrics, err := telemetry.NewRegisterMetrics(telemetry.RegisterMetricsConfig{
		Meter:  meter,
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize register metrics", zap.Error(err))
	}

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if cfg.Telemetry.DBTraceEnabled && tracerProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Postgres schemas are managed by the migrate CLI; sqlite terminals
	// migrate themselves at boot.
	if cfg.Database.Driver == "sqlite" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	activityRepo := persistence.NewGormActivityRepository(db.DB)
	sessionStore := persistence.NewGormSessionStore(db.DB)

	// Caches. Redis when configured, the terminal database otherwise, so
	// temporary products and staged receipts survive a restart either way.
	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithDurableStores(
			persistence.NewGormTemporaryProductCache(db.DB),
			persistence.NewGormReceiptStage(db.DB),
		))
	defer func() {
		if err := cacheFactory.Close(); err != nil {
			log.Error("Error closing cache connections", zap.Error(err))
		}
	}()

	tempCache, err := cacheFactory.TemporaryProductCache()
	if err != nil {
		log.Fatal("Failed to initialize temporary product cache", zap.Error(err))
	}
	receiptStage, err := cacheFactory.ReceiptStage()
	if err != nil {
		log.Fatal("Failed to initialize receipt stage", zap.Error(err))
	}

	// Receipt rendering and archiving
	renderer, err := infraprinting.NewReceiptRenderer(cfg.Printing, log)
	if err != nil {
		log.Fatal("Failed to initialize receipt renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing receipt renderer", zap.Error(err))
		}
	}()

	var archive printapp.ObjectArchive
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3ReceiptArchive(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize receipt archive", zap.Error(err))
		}
		if err := s3Archive.EnsureBucket(ctx); err != nil {
			log.Warn("Receipt archive bucket check failed", zap.Error(err))
		}
		archive = s3Archive
		log.Info("Receipt archiving enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Application services
	sessionService := posapp.NewSessionService(sessionStore)
	if err := sessionService.Restore(ctx); err != nil {
		log.Fatal("Failed to restore session registry", zap.Error(err))
	}

	scanService := posapp.NewScanService(sessionService, productRepo, tempCache, log)
	checkoutService := posapp.NewCheckoutService(sessionService, orderRepo, activityRepo, receiptStage, log, cfg.App.StoreName)
	productService := catalogapp.NewProductService(productRepo, tempCache, log)
	orderService := tradeapp.NewOrderService(orderRepo)
	activityService := auditapp.NewActivityService(activityRepo)
	receiptService := printapp.NewReceiptService(receiptStage, renderer, archive, log)

	// Barcode input router. Wedge and camera scans flow through the same
	// pipeline as manual entry.
	sink := func(ctx context.Context, barcode string, source string) {
		outcome, err := scanService.ProcessBarcode(ctx, barcode)
		if err != nil {
			log.Warn("Scan rejected",
				zap.String("barcode", barcode),
				zap.String("source", source),
				zap.Error(err))
			return
		}
		registerMetrics.RecordScan(ctx, source, scanOutcomeLabel(outcome))
	}
	scanRouter := scanner.NewRouter(
		scanner.WedgeConfig{
			IdleTimeout: cfg.Scanner.WedgeIdleTimeout,
			MinLength:   cfg.Scanner.WedgeMinLength,
		},
		scanner.CameraConfig{DebounceInterval: cfg.Scanner.CameraDebounce},
		nil, nil, // camera hardware is attached by terminal-specific builds
		sink,
		log,
	)
	defer scanRouter.Close()

	// Open-session gauge, sampled periodically
	gaugeCtx, stopGauge := context.WithCancel(ctx)
	defer stopGauge()
	go sampleOpenSessions(gaugeCtx, sessionService, registerMetrics)

	// HTTP handlers
	sessionHandler := handler.NewSessionHandler(sessionService)
	scanHandler := handler.NewScanHandler(scanService, scanRouter, registerMetrics)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, registerMetrics)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	receiptHandler := handler.NewReceiptHandler(receiptService)
	activityHandler := handler.NewActivityHandler(activityService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))

	httpMetrics, err := middleware.NewHTTPMetrics(meter)
	if err != nil {
		log.Fatal("Failed to initialize HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics.Middleware())

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(sessionHandler).
		Register(scanHandler).
		Register(checkoutHandler).
		Register(productHandler).
		Register(orderHandler).
		Register(receiptHandler).
		Register(activityHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

func scanOutcomeLabel(outcome *posapp.ScanOutcome) telemetry.ScanOutcome {
	if outcome.Unresolved || outcome.Item == nil {
		return telemetry.ScanOutcomeUnresolved
	}
	if outcome.Item.Kind == "temporary" {
		return telemetry.ScanOutcomeTemporary
	}
	return telemetry.ScanOutcomeCatalog
}

// sampleOpenSessions reports the open-session count every 15 seconds
func sampleOpenSessions(ctx context.Context, sessions *posapp.SessionService, metrics *telemetry.RegisterMetrics) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			registry, err := sessions.List(ctx)
			if err != nil {
				continue
			}
			metrics.RecordOpenSessions(ctx, len(registry.Sessions))
		}
	}
}
