package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
type TraceSpanName string

const (
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanAuthMiddleware      TraceSpanName = "auth_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanProfileSyncJob      TraceSpanName = "profile_sync_job"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal    MetricName = "requests_total"
	MetricHttpRequestDuration  MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal MetricName = "response_success_total"
	MetricResponseFailTotal    MetricName = "response_fail_total"
	MetricShareViewsTotal      MetricName = "profile_share_views_total"
	MetricFloodRejectedTotal   MetricName = "flood_rejected_total"
	MetricRateLimitTotal       MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelMode     MetricLabelName = "mode"
	MetricLabelArray    MetricLabelName = "array"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

// 供 Redis 限流 Consume / Get 使用
type TraceRateLimitMeta struct {
	Subject   string `trace:"rl.subject"`
	Scope     string `trace:"rl.scope"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"` // "consume" / "get" / "delete"
}

type TraceRateLimitMiddlewareMeta struct {
	UserID      int64 `trace:"ratelimit.user_id"`
	ConfigLimit int   `trace:"ratelimit.config.limit"`
	Remaining   int   `trace:"ratelimit.remaining"`
	TTLSeconds  int64 `trace:"ratelimit.ttl_sec"`
	Blocked     bool  `trace:"ratelimit.blocked"`
}

type TraceAuthMiddlewareMeta struct {
	UserID int64  `trace:"auth.user_id,omitempty"`
	Status string `trace:"auth.status,omitempty"`
}

// 個人檔案存取（self / uuid / uuidv4）
type TraceProfileAccessMeta struct {
	RequesterUserID int64  `trace:"profile.requester_user_id"`
	TargetKind      string `trace:"profile.target_kind"`
	TargetUserID    int64  `trace:"profile.target_user_id,omitempty"`
	LoadState       string `trace:"profile.load_state,omitempty"`
	Refreshed       bool   `trace:"profile.refreshed"`
	Decision        string `trace:"profile.decision,omitempty"`
}

type TraceProfileMutationMeta struct {
	UserID       int64  `trace:"profile.user_id"`
	Op           string `trace:"op"`
	Array        string `trace:"profile.array,omitempty"`
	EntryID      string `trace:"profile.entry_id,omitempty"`
	MatchedCount int64  `trace:"mongo.matched_count,omitempty"`
	FloodBlocked bool   `trace:"profile.flood_blocked"`
}

type TraceExternalFetchMeta struct {
	UserID     int64  `trace:"vk.user_id"`
	StatusCode int    `trace:"vk.status_code,omitempty"`
	ErrorCode  int    `trace:"vk.error_code,omitempty"`
	ErrorMsg   string `trace:"vk.error_msg,omitempty"`
}

type TraceProfileSyncMeta struct {
	Cutoff    string `trace:"sync.cutoff"`
	BatchSize int64  `trace:"sync.batch_size"`
	Scanned   int    `trace:"sync.scanned"`
	Refreshed int    `trace:"sync.refreshed"`
	Failed    int    `trace:"sync.failed"`
}
