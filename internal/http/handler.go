package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/trialops/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	dashboard *service.DashboardService
	registry  *service.RegistryService
	log       zerolog.Logger
}

func NewHandler(dashboard *service.DashboardService, registry *service.RegistryService, log zerolog.Logger) *Handler {
	return &Handler{dashboard: dashboard, registry: registry, log: log}
}

func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/dashboard/summary", h.getDashboardSummary)
	api.GET("/dashboard/revenue-trend", h.getRevenueTrend)
	api.GET("/dashboard/report", h.getDashboardReport)
	api.GET("/contracts", h.listContracts)
	api.GET("/contracts/export", h.exportContracts)
	api.GET("/invoices", h.listInvoices)
	api.GET("/invoices/export", h.exportInvoices)
}

func (h *Handler) getDashboardSummary(c *gin.Context) {
	summary, err := h.dashboard.GetSummary(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) getRevenueTrend(c *gin.Context) {
	granularity, err := service.ParseGranularity(c.Query("granularity"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid granularity"})
		return
	}

	query := service.TrendQuery{Granularity: granularity}

	// A custom window needs both endpoints; with either one missing
	// the trend falls back to the default trailing window.
	rawStart := strings.TrimSpace(c.Query("start_date"))
	rawEnd := strings.TrimSpace(c.Query("end_date"))
	if rawStart != "" && rawEnd != "" {
		start, err := parseDate(rawStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
			return
		}
		end, err := parseDate(rawEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
			return
		}
		query.RangeStart = &start
		query.RangeEnd = &end
	}

	trend, err := h.dashboard.GetRevenueTrend(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *Handler) getDashboardReport(c *gin.Context) {
	result, err := h.dashboard.SummaryReport(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, "application/pdf", result.Content)
}

func (h *Handler) listContracts(c *gin.Context) {
	contracts, err := h.registry.ListContracts(c.Request.Context(), registryQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (h *Handler) exportContracts(c *gin.Context) {
	result, err := h.registry.ExportContracts(c.Request.Context(), registryQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.registry.ListInvoices(c.Request.Context(), registryQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) exportInvoices(c *gin.Context) {
	result, err := h.registry.ExportInvoices(c.Request.Context(), registryQuery(c))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func registryQuery(c *gin.Context) service.RegistryQuery {
	return service.RegistryQuery{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSourceUnavailable):
		// The store's own message is surfaced unchanged; there is no
		// retry and no partial response.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("dashboard request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
