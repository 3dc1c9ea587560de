package middleware

import (
	"errors"
	"strconv"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/redis/repository"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/response"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RateLimit struct {
	logger                *zap.Logger
	trace                 *telemetry.Trace
	metric                *telemetry.Metric
	config                *config.Configuration
	rateLimiterRepository *repository.RateLimiterRepository
}

func NewRateLimit(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	return &RateLimit{
		logger:                logger,
		trace:                 trace,
		metric:                metric,
		config:                config,
		rateLimiterRepository: rateLimiterRepository,
	}
}

// Guard 依 VK user id 限制個人檔案查詢次數；Redis 失敗時放行
func (middleware *RateLimit) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		settings := middleware.config.RateLimit
		if !settings.Enabled || settings.Limit <= 0 || settings.WindowSeconds <= 0 {
			c.Next()
			return
		}

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRateLimitMiddleware))
		userID, ok := UserID(c)
		if !ok {
			err := cErr.InvalidToken("missing user context")
			end(err)
			response.AbortWithError(c, err)
			return
		}

		subject := strconv.FormatInt(userID, 10)
		remaining, ttl, err := middleware.rateLimiterRepository.Consume(ctx, core.RedisKeyProfileLimit, subject, settings.WindowSeconds, settings.Limit)
		blocked := errors.Is(err, repository.ErrRateLimitExceeded)
		if err != nil && !blocked {
			middleware.logger.Warn("rate limit unavailable, request allowed", zap.Int64("userId", userID), zap.Error(err))
			end(nil)
			c.Next()
			return
		}

		middleware.trace.ApplyTraceAttributes(span, core.TraceRateLimitMiddlewareMeta{
			UserID:      userID,
			ConfigLimit: settings.Limit,
			Remaining:   remaining,
			TTLSeconds:  ttl,
			Blocked:     blocked,
		})
		writeQuotaHeaders(c, settings.Limit, remaining, ttl, blocked)

		if !blocked {
			end(nil)
			c.Next()
			return
		}
		middleware.metric.IncRateLimited(c.FullPath())
		limitErr := cErr.RateLimitExceeded("rate limit exceeded")
		end(limitErr)
		response.AbortWithError(c, limitErr)
	}
}

// writeQuotaHeaders 額度資訊放在回應標頭；被擋時附 Retry-After
func writeQuotaHeaders(c *gin.Context, limit, remaining int, ttl int64, blocked bool) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if ttl <= 0 {
		return
	}
	reset := strconv.FormatInt(ttl, 10)
	c.Header("X-RateLimit-Reset", reset)
	if blocked {
		c.Header("Retry-After", reset)
	}
}
