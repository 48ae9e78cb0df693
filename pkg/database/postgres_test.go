package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/music-school-api/pkg/config"
)

type flakyPinger struct {
	failures int
	calls    int
}

func (f *flakyPinger) PingContext(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetryRecovers(t *testing.T) {
	p := &flakyPinger{failures: 2}
	assert.NoError(t, pingWithRetry(p, 3, 0))
	assert.Equal(t, 3, p.calls)
}

func TestPingWithRetryGivesUp(t *testing.T) {
	p := &flakyPinger{failures: 10}
	assert.Error(t, pingWithRetry(p, 2, 0))
	assert.Equal(t, 2, p.calls)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "music_school", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=music_school sslmode=disable", dsn)
}
