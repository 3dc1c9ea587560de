package middleware

import (
	"net/http"
	"slices"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Cors struct {
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewCors(trace *telemetry.Trace, config *config.Configuration) *Cors {
	return &Cors{trace: trace, config: config}
}

type corsMeta struct {
	AllowOrigins []string `trace:"http.cors.allow_origins"`
	AllowAll     bool     `trace:"http.cors.allow_all"`
	AllowMethods []string `trace:"http.cors.allow_methods"`
}

// corsConfig 依設定產生 gin-contrib/cors 的選項
func corsConfig(settings config.Cors) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After", "X-App-Version",
		},
		MaxAge: settings.MaxAge,
	}
	if len(settings.AllowOrigins) == 0 || slices.Contains(settings.AllowOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = settings.AllowOrigins
	}
	return cfg
}

// CorsHandler 略過 tracing 的路徑仍需套用 CORS，否則 preflight 失敗
func (m *Cors) CorsHandler() gin.HandlerFunc {
	cfg := corsConfig(m.config.Cors)
	corsHandler := cors.New(cfg)
	meta := corsMeta{
		AllowOrigins: cfg.AllowOrigins,
		AllowAll:     cfg.AllowAllOrigins,
		AllowMethods: cfg.AllowMethods,
	}

	return func(c *gin.Context) {
		if isUnobserved(c.FullPath()) {
			corsHandler(c)
			return
		}
		_, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanCorsMiddleware))
		defer end(nil)
		m.trace.ApplyTraceAttributes(span, meta)

		// 內部會呼叫 c.Next()
		corsHandler(c)
	}
}
