package repository

import (
	"context"
	"errors"
	"fmt"

	"medcard/config"
	"medcard/internal/core"
	client "medcard/internal/database/client"
	"medcard/internal/telemetry"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

// consumeScript 固定視窗計數：INCR 與 EXPIRE 在同一個 script 內完成；
// 遺失 TTL 的 key 會重新補上視窗長度
var consumeScript = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
local ttl = redis.call('TTL', KEYS[1])
if ttl < 0 then
	redis.call('EXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

type RateLimiterRepository struct {
	trace     *telemetry.Trace
	client    *redis.Client
	keyPrefix string
}

func NewRateLimiterRepository(trace *telemetry.Trace, config *config.Configuration, client *client.RedisClient) *RateLimiterRepository {
	return newRateLimiterRepository(trace, client.Client(), config.Redis.KeyPrefix)
}

func newRateLimiterRepository(trace *telemetry.Trace, redisClient *redis.Client, keyPrefix string) *RateLimiterRepository {
	if keyPrefix == "" {
		keyPrefix = string(core.RedisKeyServerName)
	}
	return &RateLimiterRepository{trace: trace, client: redisClient, keyPrefix: keyPrefix}
}

// Consume 消耗一次配額，回傳剩餘次數與視窗剩餘秒數；超過 limit 時 err 為 ErrRateLimitExceeded
func (repository *RateLimiterRepository) Consume(
	ctx context.Context,
	scope core.RedisKey,
	subject string,
	windowSeconds int64,
	limit int,
) (remaining int, ttlSeconds int64, returnedError error) {
	ctx, span, end := repository.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	meta := core.TraceRateLimitMeta{
		Subject:   subject,
		Scope:     string(scope),
		Limit:     limit,
		WindowSec: windowSeconds,
		Op:        "consume",
	}
	defer func() { repository.trace.ApplyTraceAttributes(span, meta) }()

	values, err := consumeScript.Run(ctx, repository.client, []string{repository.buildKey(scope, subject)}, windowSeconds).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected rate limit script reply: %v", values)
	}

	used, ttlSeconds := values[0], values[1]
	remaining = max(limit-int(used), 0)
	meta.Remaining, meta.TTL = remaining, ttlSeconds
	if used > int64(limit) {
		return remaining, ttlSeconds, ErrRateLimitExceeded
	}
	return remaining, ttlSeconds, nil
}

// buildKey 例：medcard:profile_read:12345
func (repository *RateLimiterRepository) buildKey(scope core.RedisKey, subject string) string {
	return fmt.Sprintf("%s:%s:%s", repository.keyPrefix, scope, subject)
}
