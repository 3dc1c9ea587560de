package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"medcard/config"
	"medcard/internal/core"
	"medcard/internal/database/fluentd/model"
	"medcard/internal/database/fluentd/repository"
	cErr "medcard/internal/pkg/error"
	res "medcard/internal/pkg/response"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	timestampLayout = "2006-01-02 15:04:05.999999 UTC"
	errorDetailMax  = 8000
	stackMax        = 16000
)

// Recovery 把 panic 與 handler 放入 c.Errors 的錯誤統一輸出成 Response
type Recovery struct {
	logger            *zap.Logger
	trace             *telemetry.Trace
	metric            *telemetry.Metric
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		trace:             trace,
		metric:            metric,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

// failure 一次錯誤回應要記錄的內容
type failure struct {
	appErr  *cErr.Error
	detail  string
	attrs   any
	message string
	fields  []zap.Field
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := requestStartTime(c)

		// recover 必須在 c.Next() 之前註冊
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(startedAt)
				middleware.fail(c, panicFailure(c, rec, duration), duration)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		duration := time.Since(startedAt)
		middleware.fail(c, errorsFailure(c.Errors, duration), duration)
	}
}

func panicFailure(c *gin.Context, rec any, duration time.Duration) failure {
	meta := core.TracePanicMeta{
		Path:       c.Request.URL.Path,
		Method:     c.Request.Method,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		DurationMs: float64(duration.Milliseconds()),
		Message:    toSafePreview([]byte(fmt.Sprint(rec)), errorDetailMax),
		Stack:      toSafePreview(debug.Stack(), stackMax),
		Status:     http.StatusInternalServerError,
	}
	return failure{
		appErr:  cErr.InternalServer("unexpected panic"),
		detail:  meta.Message,
		attrs:   meta,
		message: "[PANIC] Recovered",
		fields: []zap.Field{
			zap.String("path", meta.Path),
			zap.String("method", meta.Method),
			zap.String("client_ip", meta.ClientIP),
			zap.String("panic", meta.Message),
			zap.String("stacktrace", meta.Stack),
		},
	}
}

// errorsFailure 取第一個 *cErr.Error，沒有就當成未知錯誤
func errorsFailure(errs gin.ErrorMsgs, duration time.Duration) failure {
	for _, e := range errs {
		var appErr *cErr.Error
		if !errors.As(e.Err, &appErr) {
			continue
		}
		fields := []zap.Field{
			zap.Int("code", appErr.ErrorCode()),
			zap.String("data", appErr.ErrorDesc()),
		}
		if cause := appErr.Unwrap(); cause != nil {
			fields = append(fields, zap.NamedError("cause", cause))
		}
		return failure{
			appErr: appErr,
			detail: appErr.ErrorDesc(),
			attrs: core.TraceErrorMeta{
				Code:       appErr.ErrorCode(),
				Message:    appErr.Error(),
				Detail:     appErr.ErrorDesc(),
				DurationMs: float64(duration.Milliseconds()),
				Status:     appErr.HttpCode(),
			},
			message: appErr.Error(),
			fields:  fields,
		}
	}

	unknown := errs.String()
	detail := toSafePreview([]byte(unknown), errorDetailMax)
	return failure{
		appErr: cErr.New(http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", detail),
		detail: detail,
		attrs: core.TraceErrorMeta{
			Code:       cErr.INTERNAL_ERROR,
			Message:    "unknown-error",
			Detail:     detail,
			DurationMs: float64(duration.Milliseconds()),
			Status:     http.StatusInternalServerError,
		},
		message: "[ERROR] unknown",
		fields:  []zap.Field{zap.String("error", unknown)},
	}
}

// fail 記錄 span、log、Fluentd 與指標後輸出錯誤回應
func (middleware *Recovery) fail(c *gin.Context, f failure, duration time.Duration) {
	ctx, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanRecoveryMiddleware))
	requestID := requestIDFrom(ctx)
	middleware.trace.ApplyTraceAttributes(span, f.attrs)

	fields := append(f.fields, zap.Duration("duration", duration), zap.String("requestId", requestID))
	if f.appErr.HttpCode() >= http.StatusInternalServerError {
		middleware.logger.Error(f.message, fields...)
		end(f.appErr)
	} else {
		middleware.logger.Warn(f.message, fields...)
		end(nil)
	}

	userID, _ := UserID(c)
	if err := middleware.fluentdRepository.LogResponse(ctx, model.ResponseLog{
		RequestID:  requestID,
		UserID:     userID,
		Code:       f.appErr.ErrorCode(),
		StatusCode: f.appErr.HttpCode(),
		Error:      toSafePreview([]byte(f.detail), errorDetailMax),
		LatencyMs:  duration.Milliseconds(),
		Version:    middleware.config.App.Version,
		ResponseTS: time.Now().UTC().Format(timestampLayout),
	}); err != nil {
		middleware.logger.Warn("fluentd response log failed", zap.Error(err))
	}
	middleware.metric.IncResponseFail(f.appErr.Error())

	if !c.Writer.Written() {
		res.FailByErr(c, requestID, f.appErr)
	}
	c.Abort()
}

// requestIDFrom 以 trace id 作為 requestID（未啟用 tracing 時為全 0）
func requestIDFrom(ctx context.Context) string {
	return oteltrace.SpanContextFromContext(ctx).TraceID().String()
}
