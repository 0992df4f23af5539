package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/goaltrack/internal/config"
)

func runLimited(t *testing.T, cfg config.RateLimitConfig, rdb *redis.Client) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RateLimit(cfg, rdb)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, h(c))
	return rec.Code
}

func TestRateLimitSubSecondWindow(t *testing.T) {
	// Unreachable Redis: Incr fails and the request passes through,
	// but the window bucket is computed first and must not divide by
	// zero for windows under one second.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	cfg := config.RateLimitConfig{Enabled: true, Limit: 10, Window: 500 * time.Millisecond, Prefix: "rl"}

	require.NotPanics(t, func() {
		require.Equal(t, http.StatusOK, runLimited(t, cfg, rdb))
	})
}

func TestRateLimitPassThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	disabled := config.RateLimitConfig{Enabled: false, Limit: 1, Window: time.Minute}
	require.Equal(t, http.StatusOK, runLimited(t, disabled, rdb))

	noRedis := config.RateLimitConfig{Enabled: true, Limit: 1, Window: time.Minute}
	require.Equal(t, http.StatusOK, runLimited(t, noRedis, nil))

	zeroWindow := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 0}
	require.Equal(t, http.StatusOK, runLimited(t, zeroWindow, rdb))
}
