// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelops/hms-backend/internal/api"
	"github.com/hotelops/hms-backend/internal/cache"
	"github.com/hotelops/hms-backend/internal/config"
	"github.com/hotelops/hms-backend/internal/export"
	"github.com/hotelops/hms-backend/internal/repository"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
	"github.com/hotelops/hms-backend/internal/service"
	"github.com/hotelops/hms-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Report cache is optional; the noop implementation keeps the service
	// wiring identical when Redis is absent.
	reportCache, err := cache.NewPLReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Report cache unavailable, continuing without caching")
		reportCache = cache.NewNoopPLReportCache()
	}

	reportRepo := repository.NewReportRepository(db.DB)
	reportService := service.NewReportService(reportRepo, reportCache)
	syncService := service.NewSyncService(reportRepo)

	orderRepo := postgres.NewOrderRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	inventoryRepo := postgres.NewInventoryRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	orderService := service.NewOrderService(orderRepo, menuRepo, cfg.App.TaxRate)

	var exporter *export.Exporter
	if cfg.Storage.Enabled {
		storage, err := export.NewMinioStorage(cfg.Storage)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize export storage")
		}
		exporter = export.NewExporter(storage, cfg.App.CurrencySymbol)
	}

	router := api.NewRouter(&api.Services{
		ReportService:     reportService,
		SyncService:       syncService,
		OrderService:      orderService,
		MenuRepo:          menuRepo,
		InventoryRepo:     inventoryRepo,
		RoomRepo:          roomRepo,
		Exporter:          exporter,
		DefaultPeriodDays: cfg.App.DefaultPeriod,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
