package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
	"github.com/noah-isme/music-school-api/pkg/middleware/requestid"
)

const tracerName = "github.com/noah-isme/music-school-api/internal/service"

type statsReader interface {
	ActiveStudents(ctx context.Context, upper time.Time, lower *time.Time) ([]models.ActiveStudent, error)
	SumAmount(ctx context.Context, ledger models.Ledger, status models.RecordStatus, from, to time.Time) (decimal.Decimal, error)
	MonthlyTotals(ctx context.Context, ledger models.Ledger, status *models.RecordStatus) ([]models.MonthTotal, error)
}

// StatsServiceConfig tunes window computation and series shaping.
type StatsServiceConfig struct {
	// Location anchors month boundaries. Defaults to UTC.
	Location *time.Location
	// SeriesPaidOnly restricts the monthly series to PAID rows.
	SeriesPaidOnly bool
	// SeriesSorted re-sorts the merged series by month key.
	SeriesSorted bool
}

// StatsServiceParams groups constructor dependencies.
type StatsServiceParams struct {
	Repo    statsReader
	Metrics *MetricsService
	Logger  *zap.Logger
	Config  StatsServiceConfig
}

// StatsService computes dashboard statistics from the read-only store. It
// holds no state between calls and does not cache.
type StatsService struct {
	repo    statsReader
	metrics *MetricsService
	logger  *zap.Logger
	tracer  trace.Tracer
	cfg     StatsServiceConfig
}

// NewStatsService constructs a StatsService.
func NewStatsService(params StatsServiceParams) *StatsService {
	cfg := params.Config
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		repo:    params.Repo,
		metrics: params.Metrics,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		cfg:     cfg,
	}
}

// Location returns the zone month boundaries are computed in.
func (s *StatsService) Location() *time.Location {
	return s.cfg.Location
}

// CombinedStats parses month ("YYYY-MM" or "YYYY-MM-DD") and computes its statistics.
func (s *StatsService) CombinedStats(ctx context.Context, month string) (*dto.CombinedStats, error) {
	ym, err := models.ParseYearMonth(month)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidInput, err.Error())
	}
	return s.CombinedStatsFor(ctx, ym)
}

// CombinedStatsFor computes the calendar-month and trailing-year windows
// ending at the last instant of month.
func (s *StatsService) CombinedStatsFor(ctx context.Context, month models.YearMonth) (*dto.CombinedStats, error) {
	ctx, span := s.tracer.Start(ctx, "StatsService.CombinedStats", trace.WithAttributes(attribute.String("stats.month", month.String())))
	defer span.End()

	loc := s.cfg.Location
	monthStart := month.Start(loc)
	monthEnd := month.End(loc)
	yearStart := month.AddMonths(-12).Start(loc)

	var (
		monthStudents, yearStudents []models.ActiveStudent
		monthPaid, yearPaid         decimal.Decimal
		monthSpent, yearSpent       decimal.Decimal
	)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthStudents, err = s.repo.ActiveStudents(gctx, monthEnd, nil)
		return err
	})
	g.Go(func() (err error) {
		yearStudents, err = s.repo.ActiveStudents(gctx, monthEnd, &yearStart)
		return err
	})
	g.Go(func() (err error) {
		monthPaid, err = s.repo.SumAmount(gctx, models.LedgerPayments, models.StatusPaid, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		yearPaid, err = s.repo.SumAmount(gctx, models.LedgerPayments, models.StatusPaid, yearStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		monthSpent, err = s.repo.SumAmount(gctx, models.LedgerExpenses, models.StatusPaid, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		yearSpent, err = s.repo.SumAmount(gctx, models.LedgerExpenses, models.StatusPaid, yearStart, monthEnd)
		return err
	})
	err := g.Wait()
	s.metrics.ObserveDBQuery("stats_combined", time.Since(start))
	s.metrics.RecordStats("combined", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "statistics query failed")
		s.logger.Error("combined stats query failed",
			zap.String("month", month.String()),
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.Error(err),
		)
		return nil, appErrors.DataSource(err, "failed to load statistics")
	}

	monthly := windowStats(monthStudents, monthPaid, monthSpent)
	stats := &dto.CombinedStats{
		Month:   month.String(),
		Monthly: monthly,
		Yearly:  windowStats(yearStudents, yearPaid, yearSpent),
		// Expenses alone never mark a month as having data.
		HasData: monthly.ActiveStudents > 0 || monthly.TotalPayments.IsPositive(),
	}
	span.SetAttributes(attribute.Bool("stats.has_data", stats.HasData))
	return stats, nil
}

// MonthlySeries returns payments against expenses for every month that has
// either. Store failures are logged and yield an empty series.
func (s *StatsService) MonthlySeries(ctx context.Context) []dto.MonthlySeriesPoint {
	ctx, span := s.tracer.Start(ctx, "StatsService.MonthlySeries")
	defer span.End()

	var status *models.RecordStatus
	if s.cfg.SeriesPaidOnly {
		paid := models.StatusPaid
		status = &paid
	}

	var payments, expenses []models.MonthTotal
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		payments, err = s.repo.MonthlyTotals(gctx, models.LedgerPayments, status)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.repo.MonthlyTotals(gctx, models.LedgerExpenses, status)
		return err
	})
	err := g.Wait()
	s.metrics.ObserveDBQuery("stats_series", time.Since(start))
	s.metrics.RecordStats("series", err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "series query failed")
		s.logger.Error("monthly series query failed", zap.String("request_id", requestid.FromContext(ctx)), zap.Error(err))
		return []dto.MonthlySeriesPoint{}
	}

	series := mergeMonthlySeries(payments, expenses)
	if s.cfg.SeriesSorted {
		sort.SliceStable(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	}
	span.SetAttributes(attribute.Int("stats.series_points", len(series)))
	return series
}

func windowStats(students []models.ActiveStudent, payments, expenses decimal.Decimal) dto.WindowStats {
	counts := make(map[models.Instrument]int, len(students))
	for _, student := range students {
		counts[student.Instrument]++
	}
	instruments := models.Instruments()
	breakdown := make([]dto.InstrumentCount, 0, len(instruments))
	for _, instrument := range instruments {
		breakdown = append(breakdown, dto.InstrumentCount{Instrument: instrument, Count: counts[instrument]})
	}
	return dto.WindowStats{
		ActiveStudents:      len(students),
		TotalPayments:       payments,
		TotalExpenses:       expenses,
		InstrumentBreakdown: breakdown,
	}
}

// mergeMonthlySeries keeps payment months in their given order and appends
// expense-only months after them in their own order.
func mergeMonthlySeries(payments, expenses []models.MonthTotal) []dto.MonthlySeriesPoint {
	expenseByMonth := make(map[string]decimal.Decimal, len(expenses))
	for _, row := range expenses {
		expenseByMonth[row.Month] = expenseByMonth[row.Month].Add(row.Total)
	}

	series := make([]dto.MonthlySeriesPoint, 0, len(payments)+len(expenses))
	seen := make(map[string]int, len(payments)+len(expenses))
	for _, row := range payments {
		if idx, ok := seen[row.Month]; ok {
			series[idx].Payments = series[idx].Payments.Add(row.Total)
			continue
		}
		seen[row.Month] = len(series)
		series = append(series, dto.MonthlySeriesPoint{
			Month:    row.Month,
			Payments: row.Total,
			Expenses: expenseByMonth[row.Month],
		})
	}
	for _, row := range expenses {
		if _, ok := seen[row.Month]; ok {
			continue
		}
		seen[row.Month] = len(series)
		series = append(series, dto.MonthlySeriesPoint{
			Month:    row.Month,
			Payments: decimal.Zero,
			Expenses: expenseByMonth[row.Month],
		})
	}
	return series
}
