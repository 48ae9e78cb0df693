package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/middleware"
	"github.com/noah-isme/music-school-api/internal/service"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context, month string) (*dto.CombinedStats, bool, error)
	Series(ctx context.Context) ([]dto.MonthlySeriesPoint, bool)
	Overview(ctx context.Context, month string) (*dto.DashboardOverview, bool, error)
}

type exportService interface {
	Stats(ctx context.Context, month, format string) (*service.ExportFile, error)
}

// StatsHandler serves dashboard statistics.
type StatsHandler struct {
	dashboard dashboardService
	exports   exportService
}

// NewStatsHandler constructs the handler.
func NewStatsHandler(dashboard dashboardService, exports exportService) *StatsHandler {
	return &StatsHandler{dashboard: dashboard, exports: exports}
}

// Stats godoc
// @Summary Monthly and trailing-year statistics
// @Tags Stats
// @Produce json
// @Param month query string false "Month (YYYY-MM). Defaults to the current month"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /stats [get]
func (h *StatsHandler) Stats(c *gin.Context) {
	start := time.Now()
	stats, cacheHit, err := h.dashboard.Stats(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondWithMeta(c, stats, cacheHit, start)
}

// Series godoc
// @Summary Monthly payments versus expenses
// @Tags Stats
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats/series [get]
func (h *StatsHandler) Series(c *gin.Context) {
	start := time.Now()
	series, cacheHit := h.dashboard.Series(c.Request.Context())
	middleware.SetMeta(c, "points", len(series))
	respondWithMeta(c, series, cacheHit, start)
}

// Overview godoc
// @Summary Dashboard payload combining statistics and the monthly series
// @Tags Dashboard
// @Produce json
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /dashboard [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	start := time.Now()
	overview, cacheHit, err := h.dashboard.Overview(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondWithMeta(c, overview, cacheHit, start)
}

// Export godoc
// @Summary Download statistics as CSV or PDF
// @Tags Stats
// @Produce octet-stream
// @Param month query string false "Month (YYYY-MM)"
// @Param format query string false "csv or pdf" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /stats/export [get]
func (h *StatsHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	file, err := h.exports.Stats(c.Request.Context(), c.Query("month"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

func respondWithMeta(c *gin.Context, data interface{}, cacheHit bool, start time.Time) {
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, nil, meta)
}
