package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/music-school-api/pkg/jobs"
)

type recordingInvalidator struct {
	patterns chan string
	err      error
}

func (r *recordingInvalidator) Invalidate(_ context.Context, pattern string) error {
	r.patterns <- pattern
	return r.err
}

type failingQueue struct{}

func (failingQueue) Enqueue(jobs.Job) error { return errors.New("queue full") }

func TestInvalidationServiceInlineWithoutQueue(t *testing.T) {
	cache := &recordingInvalidator{patterns: make(chan string, 1)}
	svc := NewInvalidationService(cache, nil)

	svc.Notify(context.Background(), "student created")
	assert.Equal(t, DashboardCachePattern, <-cache.patterns)
}

func TestInvalidationServiceUsesQueue(t *testing.T) {
	cache := &recordingInvalidator{patterns: make(chan string, 1)}
	svc := NewInvalidationService(cache, nil)
	queue := jobs.NewQueue("cache-invalidation", svc.Handle, jobs.QueueConfig{RetryDelay: time.Millisecond})
	queue.Start(context.Background())
	defer queue.Stop()
	svc.UseQueue(queue)

	svc.Notify(context.Background(), "payment recorded")

	select {
	case pattern := <-cache.patterns:
		assert.Equal(t, DashboardCachePattern, pattern)
	case <-time.After(2 * time.Second):
		t.Fatal("invalidation job never ran")
	}
}

func TestInvalidationServiceFallsBackWhenEnqueueFails(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cache := &recordingInvalidator{patterns: make(chan string, 1)}
	svc := NewInvalidationService(cache, zap.New(core))
	svc.UseQueue(failingQueue{})

	svc.Notify(context.Background(), "expense deleted")
	assert.Equal(t, DashboardCachePattern, <-cache.patterns)

	entries := logs.FilterMessage("cache invalidation enqueue failed, invalidating inline").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "expense deleted", entries[0].ContextMap()["reason"])
}

func TestInvalidationServiceHandleUsesPayload(t *testing.T) {
	cache := &recordingInvalidator{patterns: make(chan string, 1), err: errors.New("redis down")}
	svc := NewInvalidationService(cache, nil)

	err := svc.Handle(context.Background(), jobs.Job{Payload: "dash:stats:*"})
	require.Error(t, err)
	assert.Equal(t, "dash:stats:*", <-cache.patterns)
}
