package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewCors,
	NewLogger,
	NewRecovery,
	NewResponse,
	NewAuth,
	NewRateLimit,
)

const contextKeyRequestStart = "requestDuration"

// 不做 tracing / 記錄 / 包裝的路徑
var unobservedPrefixes = []string{"/swagger", "/metrics", "/version", "/health", "/debug/pprof"}

func isUnobserved(endpoint string) bool {
	for _, prefix := range unobservedPrefixes {
		if strings.HasPrefix(endpoint, prefix) {
			return true
		}
	}
	return false
}

// requestStartTime 取 TraceEntry 記下的起始時間，沒有時以現在為準並寫回
func requestStartTime(c *gin.Context) time.Time {
	if v, ok := c.Get(contextKeyRequestStart); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	now := time.Now().UTC()
	c.Set(contextKeyRequestStart, now)
	return now
}
