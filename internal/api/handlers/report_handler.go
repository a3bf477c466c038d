package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hotelops/hms-backend/internal/costing"
	"github.com/hotelops/hms-backend/internal/domain"
	"github.com/hotelops/hms-backend/internal/export"
	"github.com/hotelops/hms-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type ReportHandler struct {
	reports       *service.ReportService
	sync          *service.SyncService
	exporter      *export.Exporter
	defaultPeriod int
}

func NewReportHandler(reports *service.ReportService, syncService *service.SyncService, exporter *export.Exporter, defaultPeriodDays int) *ReportHandler {
	if defaultPeriodDays <= 0 {
		defaultPeriodDays = 30
	}
	return &ReportHandler{reports: reports, sync: syncService, exporter: exporter, defaultPeriod: defaultPeriodDays}
}

// parseFilter reads the report period and optional department filters.
// Missing dates default to the configured trailing period.
func (h *ReportHandler) parseFilter(c *gin.Context) (domain.ReportFilter, bool) {
	filter := domain.ReportFilter{}

	now := time.Now()
	filter.StartDate = now.AddDate(0, 0, -h.defaultPeriod)
	filter.EndDate = now

	if raw := strings.TrimSpace(c.Query("start_date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.StartDate = parsed
	}
	if raw := strings.TrimSpace(c.Query("end_date")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return filter, false
		}
		filter.EndDate = parsed
	}
	if filter.EndDate.Before(filter.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not precede start_date"})
		return filter, false
	}

	filter.Department = strings.TrimSpace(c.Query("department"))
	filter.OrderType = strings.TrimSpace(c.Query("order_type"))
	filter.Status = strings.TrimSpace(c.Query("status"))

	return filter, true
}

func (h *ReportHandler) GetPLReport(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	report, err := h.reports.GetPLReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build pl report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetPLComparison(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	mode := costing.ComparisonMode(c.DefaultQuery("compare", string(costing.ComparePrevious)))
	switch mode {
	case costing.ComparePrevious, costing.CompareLastWeek, costing.CompareLastMonth, costing.CompareLastYear:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid compare mode"})
		return
	}

	comparison, err := h.reports.GetPLComparison(c.Request.Context(), filter, mode)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build pl comparison", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, comparison)
}

func (h *ReportHandler) GetCOGSBreakdown(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	report, err := h.reports.GetPLReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cogs breakdown", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report.Breakdown)
}

func (h *ReportHandler) VerifyCOGSSync(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	report, err := h.sync.VerifySync(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to verify cogs sync", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetInconsistentTotals(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	flagged, err := h.reports.FlagInconsistentTotals(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check order totals", "details": err.Error()})
		return
	}
	if flagged == nil {
		flagged = []domain.InconsistentTotal{}
	}

	c.JSON(http.StatusOK, gin.H{"flagged": flagged, "count": len(flagged)})
}

func (h *ReportHandler) ExportPLReport(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage is not configured"})
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	report, err := h.reports.GetPLReport(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build pl report", "details": err.Error()})
		return
	}

	key, err := h.exporter.ExportPLReport(c.Request.Context(), report)
	if err != nil {
		log.Error().Err(err).Msg("pl report export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export pl report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// InvalidateCache drops cached reports, for use after bulk data loads.
func (h *ReportHandler) InvalidateCache(c *gin.Context) {
	if err := h.reports.InvalidateCache(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to invalidate report cache", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report cache invalidated"})
}

func (h *ReportHandler) ListExports(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export storage is not configured"})
		return
	}

	exports, err := h.exporter.ListExports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exports": exports, "count": len(exports)})
}
