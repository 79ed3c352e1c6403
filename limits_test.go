package wttp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsConfigValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.Enabled = true
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "datastore backend cannot host counters")

	cfg.Store.Backend = BackendRedis
	require.NoError(t, cfg.Validate())

	cfg.Limits.Window = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg.Limits.Window = time.Second
	cfg.Limits.MaxWrites = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestThrottle(t *testing.T) {
	ctx := context.Background()

	off := newDatastoreSite(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, off.Throttle(ctx, "c"))
	}

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := DefaultConfig()
	cfg.Store.Backend = BackendRedis
	cfg.Metrics.Enabled = true
	site, err := New().WithConfig(cfg).WithRedis(rdb).WithWriteLimit(1, time.Minute).Build()
	require.NoError(t, err)

	require.NoError(t, site.Throttle(ctx, "c"))
	err = site.Throttle(ctx, "c")
	require.ErrorIs(t, err, ErrRateLimited)
	assert.EqualValues(t, 1, site.MetricsSnapshot().Counters[MetricRateLimited])
	assert.Equal(t, time.Minute, mr.TTL("wttp:rw:c"))

	mr.FastForward(time.Minute)
	require.NoError(t, site.Throttle(ctx, "c"))

	mr.Close()
	err = site.Throttle(ctx, "c")
	assert.True(t, errors.Is(err, ErrStoreUnavailable), "got %v", err)
}

func TestBuildLimitsNeedRedisClient(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Backend = BackendRedis
	cfg.Limits.Enabled = true
	_, err := New().WithConfig(cfg).WithStore(newDatastoreSite(t).store).Build()
	require.ErrorIs(t, err, ErrInvalidConfig)
}
