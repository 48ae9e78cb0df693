package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/music-school-api/pkg/jobs"
)

// JobTypeCacheInvalidate identifies dashboard cache invalidation jobs.
const JobTypeCacheInvalidate = "cache.invalidate"

const syncInvalidateTimeout = 3 * time.Second

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// InvalidationService drops dashboard cache entries after writes. With a
// queue attached the work runs in the background and is retried by the queue.
type InvalidationService struct {
	cache   cacheInvalidator
	queue   jobEnqueuer
	pattern string
	logger  *zap.Logger
}

// NewInvalidationService constructs an InvalidationService for the dashboard keys.
func NewInvalidationService(cache cacheInvalidator, logger *zap.Logger) *InvalidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationService{cache: cache, pattern: DashboardCachePattern, logger: logger}
}

// UseQueue routes future invalidations through queue.
func (s *InvalidationService) UseQueue(queue jobEnqueuer) {
	s.queue = queue
}

// Notify records that data behind the dashboard changed. It never fails the
// caller's write.
func (s *InvalidationService) Notify(ctx context.Context, reason string) {
	if s == nil || s.cache == nil {
		return
	}
	if s.queue != nil {
		job := jobs.Job{ID: uuid.NewString(), Type: JobTypeCacheInvalidate, Payload: s.pattern}
		err := s.queue.Enqueue(job)
		if err == nil {
			s.logger.Debug("cache invalidation queued", zap.String("job_id", job.ID), zap.String("reason", reason))
			return
		}
		s.logger.Warn("cache invalidation enqueue failed, invalidating inline", zap.String("reason", reason), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), syncInvalidateTimeout)
	defer cancel()
	if err := s.cache.Invalidate(ctx, s.pattern); err != nil {
		s.logger.Error("cache invalidation failed", zap.String("reason", reason), zap.Error(err))
	}
}

// Handle is the queue handler for invalidation jobs.
func (s *InvalidationService) Handle(ctx context.Context, job jobs.Job) error {
	pattern := job.Payload
	if pattern == "" {
		pattern = s.pattern
	}
	return s.cache.Invalidate(ctx, pattern)
}
