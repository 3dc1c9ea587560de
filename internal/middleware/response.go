package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/fluentd/model"
	"medcard/internal/database/fluentd/repository"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/response"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewResponse(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Response {
	return &Response{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

const (
	defaultSuccessMessage = "Request Success"
	dataPreviewMax        = 2000
)

// FormatHandler 把 handler 以 response.Success/Create 設定的資料包成統一格式
func (middleware *Response) FormatHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if isUnobserved(endpoint) {
			c.Next()
			return
		}
		startedAt := requestStartTime(c)

		c.Next()

		// 錯誤交給 Recovery；已寫出的回應不再處理
		if len(c.Errors) > 0 || c.Writer.Written() {
			return
		}
		data, hasData := c.Get(response.ContextKeyData)
		if !hasData && c.Writer.Status() >= http.StatusBadRequest {
			response.AbortWithError(c, cErr.MapHttpStatusToError(c.Writer.Status(), "request error"))
			return
		}
		if data == nil {
			data = map[string]any{}
		}
		statusCode, message := successStatus(c), successMessage(c)

		ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanResponseMiddleware))
		defer end(nil)
		duration := time.Since(startedAt)
		requestID := requestIDFrom(ctx)

		middleware.trace.ApplyTraceAttributes(span, core.TraceResponseMeta{
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     statusCode,
			Message:    message,
			Code:       cErr.SUCCESS,
			DurationMs: float64(duration.Milliseconds()),
			Data:       previewJSON(data, dataPreviewMax),
		})
		middleware.logger.Info("[Response] "+message,
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Int("status", statusCode),
			zap.Duration("duration", duration),
			zap.String("traceId", requestID),
		)
		middleware.record(ctx, c, requestID, endpoint, statusCode, duration)

		body, err := json.Marshal(response.Response{
			RequestID:   requestID,
			Code:        cErr.SUCCESS,
			Data:        data,
			Message:     "OK",
			Description: message,
		})
		if err != nil {
			response.AbortWithError(c, cErr.InternalServer("marshal response failed"))
			return
		}
		c.Data(statusCode, "application/json; charset=utf-8", body)
	}
}

// record 成功回應送 Fluentd 與指標
func (middleware *Response) record(ctx context.Context, c *gin.Context, requestID, endpoint string, statusCode int, duration time.Duration) {
	userID, _ := UserID(c)
	if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		UserID:     userID,
		Code:       cErr.SUCCESS,
		StatusCode: statusCode,
		LatencyMs:  duration.Milliseconds(),
		Version:    middleware.config.App.Version,
		ResponseTS: time.Now().UTC().Format(timestampLayout),
	}); err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
	middleware.metric.IncResponseSuccess(endpoint, statusCode)
}

func successStatus(c *gin.Context) int {
	if value, ok := c.Get(response.ContextKeyStatus); ok {
		if status, ok := value.(int); ok {
			return status
		}
	}
	return http.StatusOK
}

func successMessage(c *gin.Context) string {
	if message := c.GetString(response.ContextKeyMessage); message != "" {
		return message
	}
	return defaultSuccessMessage
}

func previewJSON(data any, max int) string {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("[marshal error: %v]", err)
	}
	return toSafePreview(b, max)
}
