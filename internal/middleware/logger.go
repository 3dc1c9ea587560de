package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"strings"
	"unicode/utf8"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/fluentd/model"
	"medcard/internal/database/fluentd/repository"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/mssola/useragent"
	"go.uber.org/zap"
)

const (
	bodyPreviewLimit = 2000
	maskedValue      = "***"
)

type Logger struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewLogger(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Logger {
	return &Logger{
		logger:            logger,
		trace:             trace,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// 不寫入 log 的標頭
var redactedHeaders = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
}

// clientInfo user agent 解析結果
type clientInfo struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

func parseUserAgent(raw string) clientInfo {
	if raw == "" {
		return clientInfo{}
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	browser := strings.TrimSpace(name + " " + version)
	return clientInfo{Browser: browser, OS: ua.OS(), Mobile: ua.Mobile(), Bot: ua.Bot()}
}

// LoggerHandler 記錄每個請求；JSON body 只保留結構，字串值一律遮蔽（病史不可落地到 log）
func (m *Logger) LoggerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUnobserved(endpoint) {
			c.Next()
			return
		}

		ctx, span, end := m.trace.WithSpan(c.Request.Context(), string(core.SpanLoggerMiddleware))
		requestTime := requestStartTime(c)
		requestID := requestIDFrom(ctx)

		body := captureBody(c)
		headers := headerSnapshot(c)
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		client := parseUserAgent(c.Request.UserAgent())

		m.trace.ApplyTraceAttributes(span, core.LoggerRequestMeta{
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			FullPath:   endpoint,
			Query:      c.Request.URL.RawQuery,
			Body:       body,
			Host:       c.Request.Host,
			UserAgent:  c.Request.UserAgent(),
			ContentLen: c.Request.ContentLength,
			Proto:      c.Request.Proto,
			ClientIP:   c.ClientIP(),
			Headers:    headers,
			Params:     params,
		})

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("headers", headers),
			zap.String("traceId", requestID),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if len(params) > 0 {
			fields = append(fields, zap.Any("params", params))
		}
		if body != "" {
			fields = append(fields, zap.String("body", body))
		}
		if client.Browser != "" {
			fields = append(fields, zap.String("browser", client.Browser), zap.Bool("mobile", client.Mobile))
		}
		m.logger.Info("[Request] logging middleware message", fields...)

		if err := m.fluentdRepository.LogRequest(ctx, model.RequestLog{
			RequestID: requestID,
			Path:      c.Request.URL.Path,
			Method:    c.Request.Method,
			Query:     c.Request.URL.RawQuery,
			Body:      body,
			IPHash:    hashIP(c.ClientIP()),
			UserAgent: c.Request.UserAgent(),
			Browser:   client.Browser,
			OS:        client.OS,
			Mobile:    client.Mobile,
			Bot:       client.Bot,
			Version:   m.config.App.Version,
			RequestTS: requestTime.UTC().Format(timestampLayout),
		}); err != nil {
			m.logger.Warn("fluentd request log failed", zap.Error(err))
		}
		end(nil)
		c.Next()
	}
}

func headerSnapshot(c *gin.Context) map[string]string {
	headers := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		key := strings.ToLower(k)
		if _, redacted := redactedHeaders[key]; redacted {
			headers[key] = "[redacted]"
			continue
		}
		headers[key] = strings.Join(v, ",")
	}
	return headers
}

// captureBody 讀完整 body 後回填，下游仍可讀取
func captureBody(c *gin.Context) string {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if isBinaryContent(mediaType) {
		if c.Request.ContentLength > 0 {
			return fmt.Sprintf("(binary %s, %d bytes)", mediaType, c.Request.ContentLength)
		}
		return fmt.Sprintf("(binary %s)", mediaType)
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}
	data, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(data))

	if mediaType == "application/json" {
		return maskJSON(data)
	}
	return toSafePreview(data, bodyPreviewLimit)
}

// maskJSON 保留 key、數字與布林，字串值改為 ***
func maskJSON(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return fmt.Sprintf("(invalid json, %d bytes)", len(data))
	}
	masked, err := json.Marshal(maskStrings(payload))
	if err != nil {
		return fmt.Sprintf("(json, %d bytes)", len(data))
	}
	return toSafePreview(masked, bodyPreviewLimit)
}

func maskStrings(v any) any {
	switch value := v.(type) {
	case string:
		return maskedValue
	case map[string]any:
		for k, item := range value {
			value[k] = maskStrings(item)
		}
		return value
	case []any:
		for i, item := range value {
			value[i] = maskStrings(item)
		}
		return value
	default:
		return value
	}
}

// hashIP 不直接記錄 IP
func hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(sum[:8])
}

// toSafePreview UTF-8 直接截斷；非 UTF-8 以 Base64 表示
func toSafePreview(b []byte, max int) string {
	if len(b) == 0 {
		return ""
	}
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func isBinaryContent(mediaType string) bool {
	for _, prefix := range []string{"multipart/", "image/", "audio/", "video/"} {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return mediaType == "application/octet-stream"
}
