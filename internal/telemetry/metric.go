package telemetry

import (
	"strconv"
	"time"

	"medcard/config"
	"medcard/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
// 未啟用時所有欄位為 nil，Inc* 方法皆可安全呼叫
type Metric struct {
	HttpRequestsTotal    *prometheus.CounterVec
	HttpRequestDuration  *prometheus.HistogramVec
	ResponseSuccessTotal *prometheus.CounterVec
	ResponseFailTotal    *prometheus.CounterVec
	ShareViewsTotal      *prometheus.CounterVec
	FloodRejectedTotal   *prometheus.CounterVec
	RateLimitedTotal     *prometheus.CounterVec
	config               *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricName(config, core.MetricHttpRequestDuration),
				Help:    "API request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ResponseSuccessTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricResponseSuccessTotal),
				Help: "Successful API responses",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		ResponseFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricResponseFailTotal),
				Help: "Failed API responses",
			},
			labelNames(core.MetricLabelReason),
		),
		ShareViewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricShareViewsTotal),
				Help: "Profiles viewed through a share link",
			},
			labelNames(core.MetricLabelMode),
		),
		FloodRejectedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricFloodRejectedTotal),
				Help: "Add operations rejected by flood control",
			},
			labelNames(core.MetricLabelArray),
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricName(config, core.MetricRateLimitTotal),
				Help: "Requests rejected by the profile read rate limit",
			},
			labelNames(core.MetricLabelEndpoint),
		),
	}
}

// ObserveRequest 每個請求結束時記錄次數與耗時
func (m *Metric) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil || m.HttpRequestsTotal == nil || m.HttpRequestDuration == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.HttpRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metric) IncShareView(mode core.ShareMode) {
	if m == nil || m.ShareViewsTotal == nil {
		return
	}
	m.ShareViewsTotal.WithLabelValues(strconv.Itoa(int(mode))).Inc()
}

func (m *Metric) IncFloodRejected(array core.ProfileArray) {
	if m == nil || m.FloodRejectedTotal == nil {
		return
	}
	m.FloodRejectedTotal.WithLabelValues(string(array)).Inc()
}

func (m *Metric) IncRateLimited(endpoint string) {
	if m == nil || m.RateLimitedTotal == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metric) IncResponseSuccess(endpoint string, status int) {
	if m == nil || m.ResponseSuccessTotal == nil {
		return
	}
	m.ResponseSuccessTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
}

// IncResponseFail reason 使用 cErr 的 errorMsg（如 wrong-share）
func (m *Metric) IncResponseFail(reason string) {
	if m == nil || m.ResponseFailTotal == nil {
		return
	}
	m.ResponseFailTotal.WithLabelValues(reason).Inc()
}

func metricName(config *config.Configuration, name core.MetricName) string {
	return config.App.Name + "_" + string(name)
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
