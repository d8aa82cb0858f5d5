package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	treasuryapp "github.com/treasury/backend/internal/application/treasury"
	"github.com/treasury/backend/internal/infrastructure/config"
	"github.com/treasury/backend/internal/infrastructure/logger"
	"github.com/treasury/backend/internal/infrastructure/persistence"
	"github.com/treasury/backend/internal/interfaces/http/handler"
	"github.com/treasury/backend/internal/interfaces/http/middleware"
	"github.com/treasury/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync()

	log.Info("Starting treasury backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	// Initialize database with a GORM logger bridged to zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Initialize repositories
	accountRepo := persistence.NewGormBankAccountRepository(db.DB)
	flowRepo := persistence.NewGormScheduledFlowRepository(db.DB)
	adjustmentRepo := persistence.NewGormManualAdjustmentRepository(db.DB)
	agreementRepo := persistence.NewGormNettingAgreementRepository(db.DB)
	settlementRepo := persistence.NewGormNettingSettlementRepository(db.DB)
	rateResolver := persistence.NewGormRateResolver(db.DB)
	ledgerReader := persistence.NewGormControlAccountReader(db.DB)
	txManager := persistence.NewGormTransactionManager(db.DB)

	// Initialize application services
	cashPositionService := treasuryapp.NewCashPositionService(accountRepo, flowRepo, adjustmentRepo, rateResolver)
	reportingService := treasuryapp.NewReportingService(flowRepo, ledgerReader)
	nettingService := treasuryapp.NewNettingService(agreementRepo, settlementRepo, flowRepo, rateResolver, txManager)

	// Initialize handlers
	cashPositionHandler := handler.NewCashPositionHandler(cashPositionService)
	reportingHandler := handler.NewReportingHandler(reportingService)
	nettingHandler := handler.NewNettingHandler(nettingService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validation tags
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. CORS - Handle cross-origin requests
	// 5. Tenant - Resolve tenant from headers
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.Tenant(middleware.TenantConfig{
		DefaultTenantID: cfg.Treasury.DefaultTenantID,
		SkipPaths: []string{
			"/api/v1/system/health",
			"/api/v1/system/info",
			"/api/v1/ping",
		},
	}))

	// Register routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(cashPositionHandler).
		Register(reportingHandler).
		Register(nettingHandler).
		Register(systemHandler)
	r.Setup()

	// Simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
