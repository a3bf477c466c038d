// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hotelops/hms-backend/internal/api/handlers"
	"github.com/hotelops/hms-backend/internal/api/middleware"
	"github.com/hotelops/hms-backend/internal/export"
	"github.com/hotelops/hms-backend/internal/repository/postgres"
	"github.com/hotelops/hms-backend/internal/service"
)

type Services struct {
	ReportService *service.ReportService
	SyncService   *service.SyncService
	OrderService  *service.OrderService
	MenuRepo      *postgres.MenuRepository
	InventoryRepo *postgres.InventoryRepository
	RoomRepo      *postgres.RoomRepository
	Exporter      *export.Exporter

	DefaultPeriodDays int
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService, services.SyncService, services.Exporter, services.DefaultPeriodDays)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/pl", reportHandler.GetPLReport)
				reportGroup.GET("/pl/comparison", reportHandler.GetPLComparison)
				reportGroup.POST("/pl/export", reportHandler.ExportPLReport)
				reportGroup.GET("/pl/exports", reportHandler.ListExports)
				reportGroup.GET("/cogs", reportHandler.GetCOGSBreakdown)
				reportGroup.GET("/cogs/sync", reportHandler.VerifyCOGSSync)
				reportGroup.GET("/totals/check", reportHandler.GetInconsistentTotals)
				reportGroup.POST("/cache/invalidate", reportHandler.InvalidateCache)
			}
		}

		if services.OrderService != nil {
			orderHandler := handlers.NewOrderHandler(services.OrderService)
			orderGroup := apiGroup.Group("/orders")
			{
				orderGroup.POST("", orderHandler.Create)
				orderGroup.GET("", orderHandler.List)
				orderGroup.GET("/:id", orderHandler.Get)
				orderGroup.PATCH("/:id/status", orderHandler.UpdateStatus)
				orderGroup.PATCH("/:id/payment", orderHandler.UpdatePaymentStatus)
			}
		}

		if services.MenuRepo != nil {
			menuHandler := handlers.NewMenuHandler(services.MenuRepo)
			menuGroup := apiGroup.Group("/menu")
			{
				menuGroup.POST("", menuHandler.Create)
				menuGroup.GET("", menuHandler.List)
				menuGroup.GET("/:id", menuHandler.Get)
				menuGroup.PUT("/:id", menuHandler.Update)
				menuGroup.DELETE("/:id", menuHandler.Delete)
			}
		}

		if services.InventoryRepo != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryRepo)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.POST("", inventoryHandler.Create)
				inventoryGroup.GET("", inventoryHandler.List)
				inventoryGroup.GET("/:id", inventoryHandler.Get)
				inventoryGroup.PUT("/:id", inventoryHandler.Update)
				inventoryGroup.POST("/:id/adjust", inventoryHandler.AdjustStock)
				inventoryGroup.DELETE("/:id", inventoryHandler.Delete)
			}
		}

		if services.RoomRepo != nil {
			roomHandler := handlers.NewRoomHandler(services.RoomRepo)
			roomGroup := apiGroup.Group("/rooms")
			{
				roomGroup.POST("", roomHandler.Create)
				roomGroup.GET("", roomHandler.List)
				roomGroup.POST("/checkin", roomHandler.CheckIn)
				roomGroup.POST("/guests/:id/checkout", roomHandler.CheckOut)
				roomGroup.GET("/guests", roomHandler.CurrentGuests)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
