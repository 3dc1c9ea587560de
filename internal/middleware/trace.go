package middleware

import (
	"net"
	"strconv"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceEntry 每個請求的 server span 與 HTTP 指標，需排在所有 middleware 最前面
type TraceEntry struct {
	trace  *telemetry.Trace
	metric *telemetry.Metric
	conf   *config.Configuration
}

func NewTraceEntry(trace *telemetry.Trace, metric *telemetry.Metric, conf *config.Configuration) *TraceEntry {
	return &TraceEntry{trace: trace, metric: metric, conf: conf}
}

func (m *TraceEntry) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUnobserved(endpoint) {
			c.Next()
			return
		}
		start := requestStartTime(c)

		// 延續上游 traceparent
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := m.trace.StartSpanForLayer(ctx, core.TraceSpanName(c.Request.Method+" "+endpoint), trace.WithSpanKind(trace.SpanKindServer))
		c.Request = c.Request.WithContext(ctx)
		c.Set(core.ContextTraceKey, ctx)

		meta := m.serverMeta(c, endpoint)
		meta.SpanTraceID = span.SpanContext().TraceID().String()

		c.Next()

		meta.HttpStatusCode = c.Writer.Status()
		m.trace.ApplyTraceAttributes(span, &meta)
		m.metric.ObserveRequest(endpoint, meta.HttpStatusCode, time.Since(start))

		// 只有 5xx 才把 span 標成錯誤
		var spanErr error
		if meta.HttpStatusCode >= 500 && len(c.Errors) > 0 {
			spanErr = c.Errors.Last().Err
		}
		m.trace.EndSpan(span, spanErr)
	}
}

func (m *TraceEntry) serverMeta(c *gin.Context, endpoint string) core.TraceHttpServerMeta {
	peerAddr, peerPort := splitPeer(c.Request.RemoteAddr)
	if peerAddr == "" {
		peerAddr = c.ClientIP()
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return core.TraceHttpServerMeta{
		ClientAddr:        c.ClientIP(),
		HttpRequestMethod: c.Request.Method,
		HttpRoute:         endpoint,
		UrlPath:           c.Request.URL.Path,
		UrlScheme:         scheme,
		UserAgent:         c.Request.UserAgent(),
		ServerAddress:     m.conf.App.Name,
		NetworkPeerAddr:   peerAddr,
		NetworkPeerPort:   peerPort,
		NetworkProtoVer:   c.Request.Proto,
	}
}

// splitPeer RemoteAddr 無法解析時回傳空值
func splitPeer(remoteAddr string) (string, int) {
	host, port, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return "", 0
	}
	p, _ := strconv.Atoi(port)
	return host, p
}
