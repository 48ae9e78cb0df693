package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/pkg/export"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

type dashboardSource interface {
	Stats(ctx context.Context, month string) (*dto.CombinedStats, bool, error)
	Series(ctx context.Context) ([]dto.MonthlySeriesPoint, bool)
}

// ExportFile is a rendered statistics report.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders dashboard statistics as downloadable reports.
type ExportService struct {
	dashboard dashboardSource
	renderers map[string]export.Renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(dashboard dashboardSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		dashboard: dashboard,
		renderers: map[string]export.Renderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Stats renders the statistics for month, plus the monthly series, in format.
func (s *ExportService) Stats(ctx context.Context, month, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	stats, _, err := s.dashboard.Stats(ctx, month)
	if err != nil {
		return nil, err
	}
	series, _ := s.dashboard.Series(ctx)

	body, err := renderer.Render(buildStatsReport(stats, series))
	if err != nil {
		s.logger.Error("render stats export", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("stats-%s.%s", stats.Month, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func buildStatsReport(stats *dto.CombinedStats, series []dto.MonthlySeriesPoint) export.Report {
	summary := export.Section{
		Title:   "Summary",
		Headers: []string{"Metric", "Month", "Trailing 12 Months"},
		Rows: [][]string{
			{"Active Students", strconv.Itoa(stats.Monthly.ActiveStudents), strconv.Itoa(stats.Yearly.ActiveStudents)},
			{"Total Payments", stats.Monthly.TotalPayments.StringFixed(2), stats.Yearly.TotalPayments.StringFixed(2)},
			{"Total Expenses", stats.Monthly.TotalExpenses.StringFixed(2), stats.Yearly.TotalExpenses.StringFixed(2)},
		},
	}

	instruments := export.Section{Title: "Instruments", Headers: []string{"Instrument", "Month", "Trailing 12 Months"}}
	for i, entry := range stats.Monthly.InstrumentBreakdown {
		yearly := 0
		if i < len(stats.Yearly.InstrumentBreakdown) {
			yearly = stats.Yearly.InstrumentBreakdown[i].Count
		}
		instruments.Rows = append(instruments.Rows, []string{string(entry.Instrument), strconv.Itoa(entry.Count), strconv.Itoa(yearly)})
	}

	monthly := export.Section{Title: "Payments vs Expenses", Headers: []string{"Month", "Payments", "Expenses"}}
	for _, point := range series {
		monthly.Rows = append(monthly.Rows, []string{point.Month, point.Payments.StringFixed(2), point.Expenses.StringFixed(2)})
	}

	return export.Report{
		Title:    fmt.Sprintf("Music School Statistics %s", stats.Month),
		Sections: []export.Section{summary, instruments, monthly},
	}
}
