package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/service"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type listEnvelope struct {
	Data       []map[string]interface{} `json:"data"`
	Pagination map[string]interface{}   `json:"pagination"`
	Meta       map[string]interface{}   `json:"meta"`
}

type fakeDashboard struct {
	stats     *dto.CombinedStats
	statsErr  error
	hit       bool
	series    []dto.MonthlySeriesPoint
	lastMonth string
}

func (f *fakeDashboard) Stats(_ context.Context, month string) (*dto.CombinedStats, bool, error) {
	f.lastMonth = month
	return f.stats, f.hit, f.statsErr
}

func (f *fakeDashboard) Series(context.Context) ([]dto.MonthlySeriesPoint, bool) {
	return f.series, f.hit
}

func (f *fakeDashboard) Overview(ctx context.Context, month string) (*dto.DashboardOverview, bool, error) {
	stats, hit, err := f.Stats(ctx, month)
	if err != nil {
		return nil, false, err
	}
	return &dto.DashboardOverview{Month: stats.Month, Stats: *stats, Series: f.series}, hit, nil
}

type fakeExporter struct {
	file   *service.ExportFile
	err    error
	format string
}

func (f *fakeExporter) Stats(_ context.Context, _ string, format string) (*service.ExportFile, error) {
	f.format = format
	return f.file, f.err
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, rec
}

func TestStatsHandlerReturnsCombinedStats(t *testing.T) {
	dash := &fakeDashboard{
		stats: &dto.CombinedStats{
			Month:   "2024-03",
			Monthly: dto.WindowStats{ActiveStudents: 2, TotalPayments: decimal.NewFromInt(150)},
			HasData: true,
		},
		hit: true,
	}
	h := NewStatsHandler(dash, nil)
	c, rec := newTestContext(http.MethodGet, "/stats?month=2024-03")

	h.Stats(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-03", dash.lastMonth)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "2024-03", envelope.Data["month"])
	assert.Equal(t, true, envelope.Data["hasData"])
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	monthly := envelope.Data["monthly"].(map[string]interface{})
	assert.Equal(t, "150", monthly["totalPayments"])
}

func TestStatsHandlerMapsInvalidMonth(t *testing.T) {
	dash := &fakeDashboard{statsErr: appErrors.Clone(appErrors.ErrInvalidInput, "month must be YYYY-MM")}
	h := NewStatsHandler(dash, nil)
	c, rec := newTestContext(http.MethodGet, "/stats?month=March")

	h.Stats(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_INPUT", envelope.Error["code"])
}

func TestStatsHandlerMapsDataSourceFailure(t *testing.T) {
	dash := &fakeDashboard{statsErr: appErrors.DataSource(context.DeadlineExceeded, "")}
	h := NewStatsHandler(dash, nil)
	c, rec := newTestContext(http.MethodGet, "/stats")

	h.Stats(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatsHandlerSeries(t *testing.T) {
	dash := &fakeDashboard{series: []dto.MonthlySeriesPoint{
		{Month: "2024-01", Payments: decimal.NewFromInt(100), Expenses: decimal.Zero},
		{Month: "2024-02", Payments: decimal.Zero, Expenses: decimal.NewFromInt(30)},
	}}
	h := NewStatsHandler(dash, nil)
	c, rec := newTestContext(http.MethodGet, "/stats/series")

	h.Series(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope listEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "2024-01", envelope.Data[0]["month"])
	assert.Equal(t, "30", envelope.Data[1]["expenses"])
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Equal(t, float64(2), envelope.Meta["points"])
}

func TestStatsHandlerSeriesEmptyIsArray(t *testing.T) {
	h := NewStatsHandler(&fakeDashboard{series: []dto.MonthlySeriesPoint{}}, nil)
	c, rec := newTestContext(http.MethodGet, "/stats/series")

	h.Series(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestStatsHandlerOverview(t *testing.T) {
	dash := &fakeDashboard{
		stats:  &dto.CombinedStats{Month: "2024-03"},
		series: []dto.MonthlySeriesPoint{{Month: "2024-03"}},
	}
	h := NewStatsHandler(dash, nil)
	c, rec := newTestContext(http.MethodGet, "/dashboard?month=2024-03")

	h.Overview(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "2024-03", envelope.Data["month"])
	assert.Len(t, envelope.Data["series"], 1)
}

func TestStatsHandlerExportAttachment(t *testing.T) {
	exporter := &fakeExporter{file: &service.ExportFile{
		Filename:    "stats-2024-03.csv",
		ContentType: "text/csv",
		Body:        []byte("Summary\n"),
	}}
	h := NewStatsHandler(&fakeDashboard{}, exporter)
	c, rec := newTestContext(http.MethodGet, "/stats/export?month=2024-03")

	h.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", exporter.format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stats-2024-03.csv")
	assert.Equal(t, "Summary\n", rec.Body.String())
}

func TestStatsHandlerExportRejectsUnknownFormat(t *testing.T) {
	exporter := &fakeExporter{err: appErrors.Clone(appErrors.ErrValidation, "unsupported format")}
	h := NewStatsHandler(&fakeDashboard{}, exporter)
	c, rec := newTestContext(http.MethodGet, "/stats/export?format=xlsx")

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "xlsx", exporter.format)
}
