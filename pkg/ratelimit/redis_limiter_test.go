package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseWindow(t *testing.T) {
	count, remaining, ttl, err := parseWindow([]interface{}{int64(3), int64(-1), int64(42)})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, -1, remaining)
	assert.Equal(t, int64(42), ttl)

	_, _, _, err = parseWindow([]interface{}{int64(1)})
	assert.Error(t, err)

	_, _, _, err = parseWindow("OK")
	assert.Error(t, err)

	_, _, _, err = parseWindow([]interface{}{"a", int64(1), int64(1)})
	assert.Error(t, err)
}

func TestRedisLimiter_InvalidConfig(t *testing.T) {
	limiter := NewRedisLimiter(nil, zaptest.NewLogger(t))

	allowed, _, _, _, err := limiter.Allow(context.Background(), LimitConfig{Key: "ip:1", Limit: 0, Period: time.Minute})
	assert.True(t, allowed)
	assert.Error(t, err)

	allowed, _, _, _, err = limiter.Allow(context.Background(), LimitConfig{Key: "ip:1", Limit: 10})
	assert.True(t, allowed)
	assert.Error(t, err)
}
