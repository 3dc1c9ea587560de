package telemetry

import (
	"context"
	"fmt"
	"time"

	"medcard/config"
	"medcard/internal/core"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Trace 未啟用時 TracerProvider 為 nil，所有 span 皆為 noop
type Trace struct {
	TracerProvider *sdktrace.TracerProvider
	ServiceName    string
}

func NewTrace(conf *config.Configuration) (*Trace, error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, nil
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(conf.Telemetry.Trace.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  time.Minute, // 超過即丟棄
		}),
		otlptracehttp.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(samplerFor(conf.Telemetry.Trace.SampleRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(conf.App.Name),
			semconv.ServiceVersion(conf.App.Version),
			semconv.DeploymentEnvironmentName(conf.App.Env),
		)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return &Trace{TracerProvider: tp, ServiceName: conf.App.Name}, nil
}

// samplerFor 0 或 >=1 時全取樣，其餘依比例取樣（尊重上游決定）
func samplerFor(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// Shutdown flush 尚未送出的 span
func (t *Trace) Shutdown(ctx context.Context) error {
	if t == nil || t.TracerProvider == nil {
		return nil
	}
	return t.TracerProvider.Shutdown(ctx)
}

func (t *Trace) tracer() trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.TracerProvider.Tracer(t.ServiceName)
}

func (t *Trace) StartSpanForLayer(ctx context.Context, spanName core.TraceSpanName, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer().Start(ctx, string(spanName), opts...)
}

// WithSpan handler 傳 *gin.Context、service/repository 傳 context.Context；
// 未指定名稱時 handler 用 gin handler 名，其餘用呼叫者方法名
func (t *Trace) WithSpan(parent any, name ...string) (context.Context, trace.Span, func(error)) {
	override := ""
	if len(name) > 0 {
		override = name[0]
	}

	var ctx context.Context
	var span trace.Span
	switch p := parent.(type) {
	case *gin.Context:
		ctx, span = t.StartSpanForLayer(traceContext(p), core.TraceSpanName(pickName(override, spanNameFromGin(p))))
		p.Set(core.ContextTraceKey, ctx)
	case context.Context:
		ctx, span = t.StartSpanForLayer(p, core.TraceSpanName(pickName(override, prettifyFuncName(callerFuncName(2)))))
	default:
		ctx, span = t.StartSpanForLayer(context.Background(), core.TraceSpanName(pickName(override, "")))
	}
	return ctx, span, func(err error) { t.EndSpan(span, err) }
}

// EndSpan 有錯誤時標註後結束
func (t *Trace) EndSpan(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// traceContext 取 trace middleware 寫入的最新 ctx
func traceContext(c *gin.Context) context.Context {
	if v, ok := c.Get(core.ContextTraceKey); ok {
		if ctx, ok := v.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}
