package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/internal/dto"
	"github.com/noah-isme/music-school-api/internal/models"
	appErrors "github.com/noah-isme/music-school-api/pkg/errors"
)

// DashboardCachePattern matches every key written by DashboardService.
const DashboardCachePattern = "dash:*"

const seriesCacheKey = "dash:series"

type statsProvider interface {
	CombinedStatsFor(ctx context.Context, month models.YearMonth) (*dto.CombinedStats, error)
	MonthlySeries(ctx context.Context) []dto.MonthlySeriesPoint
	Location() *time.Location
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL time.Duration
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Stats  statsProvider
	Cache  *CacheService
	Logger *zap.Logger
	Config DashboardServiceConfig
}

// DashboardService serves statistics to the dashboard through the Redis cache.
type DashboardService struct {
	stats  statsProvider
	cache  *CacheService
	logger *zap.Logger
	now    func() time.Time
	cfg    DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		stats:  params.Stats,
		cache:  params.Cache,
		logger: logger,
		now:    time.Now,
		cfg:    cfg,
	}
}

// ResolveMonth parses month, defaulting to the current month when blank.
func (s *DashboardService) ResolveMonth(month string) (models.YearMonth, error) {
	if strings.TrimSpace(month) == "" {
		return models.MonthOf(s.now().In(s.stats.Location())), nil
	}
	ym, err := models.ParseYearMonth(month)
	if err != nil {
		return models.YearMonth{}, appErrors.Clone(appErrors.ErrInvalidInput, err.Error())
	}
	return ym, nil
}

// Stats returns combined statistics for month and whether they came from cache.
func (s *DashboardService) Stats(ctx context.Context, month string) (*dto.CombinedStats, bool, error) {
	ym, err := s.ResolveMonth(month)
	if err != nil {
		return nil, false, err
	}
	key := fmt.Sprintf("dash:stats:%s", ym)

	var cached dto.CombinedStats
	if s.tryCache(ctx, key, &cached) {
		return &cached, true, nil
	}

	stats, err := s.stats.CombinedStatsFor(ctx, ym)
	if err != nil {
		return nil, false, err
	}
	s.persistCache(ctx, key, stats)
	return stats, false, nil
}

// Series returns the monthly payments/expenses series and whether it came from cache.
func (s *DashboardService) Series(ctx context.Context) ([]dto.MonthlySeriesPoint, bool) {
	var cached []dto.MonthlySeriesPoint
	if s.tryCache(ctx, seriesCacheKey, &cached) {
		if cached == nil {
			cached = []dto.MonthlySeriesPoint{}
		}
		return cached, true
	}

	series := s.stats.MonthlySeries(ctx)
	// An empty series may be a swallowed store failure.
	if len(series) > 0 {
		s.persistCache(ctx, seriesCacheKey, series)
	}
	return series, false
}

// Overview composes the dashboard page payload. The cache flag is set only
// when both parts were served from cache.
func (s *DashboardService) Overview(ctx context.Context, month string) (*dto.DashboardOverview, bool, error) {
	stats, statsHit, err := s.Stats(ctx, month)
	if err != nil {
		return nil, false, err
	}
	series, seriesHit := s.Series(ctx)
	return &dto.DashboardOverview{
		Month:  stats.Month,
		Stats:  *stats,
		Series: series,
	}, statsHit && seriesHit, nil
}

// Invalidate drops every cached dashboard payload.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, DashboardCachePattern)
}

// tryCache reports a hit; lookup failures fall through to direct computation.
func (s *DashboardService) tryCache(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DashboardService) persistCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
