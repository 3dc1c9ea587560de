package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/client"
	redisRepo "medcard/internal/database/redis/repository"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/telemetry"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRateLimitEngine(t *testing.T, settings config.RateLimit) (*miniredis.Miniredis, *gin.Engine) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	conf := &config.Configuration{
		RateLimit: settings,
		Redis:     config.Redis{Host: mr.Host(), Port: port},
	}
	redisClient, cleanup, err := client.NewRedisClient(zap.NewNop(), conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	trace := &telemetry.Trace{}
	limiter := NewRateLimit(zap.NewNop(), trace, &telemetry.Metric{}, conf, redisRepo.NewRateLimiterRepository(trace, conf, redisClient))
	asUser := func(c *gin.Context) {
		c.Set(core.ContextUserIDKey, int64(100))
		c.Next()
	}
	return mr, newTestEngine(conf, asUser, limiter.Guard())
}

func getProfile(engine *gin.Engine) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	return recorder
}

func TestRateLimit_BlocksAfterLimit(t *testing.T) {
	mr, engine := newRateLimitEngine(t, config.RateLimit{Enabled: true, Limit: 2, WindowSeconds: 60})

	first := getProfile(engine)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	second := getProfile(engine)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	third := getProfile(engine)
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "60", third.Header().Get("Retry-After"))
	assert.Equal(t, cErr.RATE_LIMIT_EXCEEDED, decodeError(t, third).Code)

	// 視窗過後重新計算
	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, getProfile(engine).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	_, engine := newRateLimitEngine(t, config.RateLimit{Enabled: false, Limit: 1, WindowSeconds: 60})

	for i := 0; i < 3; i++ {
		recorder := getProfile(engine)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimit_FailsOpenWhenRedisIsDown(t *testing.T) {
	mr, engine := newRateLimitEngine(t, config.RateLimit{Enabled: true, Limit: 1, WindowSeconds: 60})
	mr.Close()

	assert.Equal(t, http.StatusOK, getProfile(engine).Code)
	assert.Equal(t, http.StatusOK, getProfile(engine).Code)
}
