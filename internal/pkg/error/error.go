package error

import (
	"errors"
	"net/http"
)

// Error 對外回應用的錯誤；errorMsg 為穩定的機器可讀 slug，errorDesc 為說明
type Error struct {
	httpCode  int
	errorCode int
	errorMsg  string
	errorDesc string
	cause     error
}

func New(httpCode, errorCode int, errorMsg string, errorDesc string) *Error {
	return &Error{
		httpCode:  httpCode,
		errorCode: errorCode,
		errorMsg:  errorMsg,
		errorDesc: errorDesc,
	}
}

// kind 同一類錯誤共用的 http/error code 與 slug
type kind struct {
	httpCode  int
	errorCode int
	errorMsg  string
}

func (k kind) new(errorDesc string) *Error {
	return New(k.httpCode, k.errorCode, k.errorMsg, errorDesc)
}

var (
	kindBadRequestBody   = kind{http.StatusBadRequest, BAD_REQUEST_BODY, "bad-request/body"}
	kindBadRequestParams = kind{http.StatusBadRequest, BAD_REQUEST_PARAMS, "bad-request/params"}
	kindUnauthorized     = kind{http.StatusUnauthorized, UNAUTHORIZED, "unauthorized"}
	kindInvalidToken     = kind{http.StatusUnauthorized, INVALID_TOKEN, "invalid-token"}
	kindWrongShare       = kind{http.StatusUnauthorized, WRONG_SHARE, "wrong-share"}
	kindForbidden        = kind{http.StatusForbidden, FORBIDDEN, "forbidden"}
	kindNotFound         = kind{http.StatusNotFound, NOT_FOUND, "not-found"}
	kindProfileNotFound  = kind{http.StatusNotFound, PROFILE_NOT_FOUND, "profile-not-found"}
	kindRateLimit        = kind{http.StatusTooManyRequests, RATE_LIMIT_EXCEEDED, "rate-limit-exceeded"}
	kindFloodControl     = kind{http.StatusTooManyRequests, FLOOD_CONTROL, "too-many-requests"}
	kindInternal         = kind{http.StatusInternalServerError, INTERNAL_ERROR, "internal-server-error"}
	kindDatabase         = kind{http.StatusInternalServerError, DATABASE_ERROR, "database-error"}
	kindUnavailable      = kind{http.StatusServiceUnavailable, SERVICE_UNAVAILABLE, "service-unavailable"}
	kindUpstream         = kind{http.StatusBadGateway, EXTERNAL_REQUEST_ERROR, "external-request-failed"}
	kindUpstreamFormat   = kind{http.StatusBadGateway, EXTERNAL_RESPONSE_FORMAT_ERROR, "external-response-invalid"}
	kindGatewayTimeout   = kind{http.StatusGatewayTimeout, GATEWAY_TIMEOUT, "gateway-timeout"}
)

// statusKinds MapHttpStatusToError 用；未列出的狀態碼一律 500
var statusKinds = map[int]kind{
	http.StatusBadRequest:         kindBadRequestBody,
	http.StatusUnauthorized:       kindUnauthorized,
	http.StatusForbidden:          kindForbidden,
	http.StatusNotFound:           kindNotFound,
	http.StatusTooManyRequests:    kindRateLimit,
	http.StatusServiceUnavailable: kindUnavailable,
	http.StatusGatewayTimeout:     kindGatewayTimeout,
}

// From 非 *Error 一律視為 500
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return kindInternal.new(err.Error()).Wrap(err)
}

func MapHttpStatusToError(status int, desc string) *Error {
	if k, ok := statusKinds[status]; ok {
		return k.new(desc)
	}
	return kindInternal.new(desc)
}

// 400
func ValidateErr(errorDesc string) *Error           { return kindBadRequestBody.new(errorDesc) }
func ValidatePathParamsErr(errorDesc string) *Error { return kindBadRequestParams.new(errorDesc) }
func BadRequestParams(errorDesc string) *Error      { return kindBadRequestParams.new(errorDesc) }

// 401 / 403
func Unauthorized(errorDesc string) *Error { return kindUnauthorized.new(errorDesc) }
func InvalidToken(errorDesc string) *Error { return kindInvalidToken.new(errorDesc) }
func Forbidden(errorDesc string) *Error    { return kindForbidden.new(errorDesc) }

// WrongShare 分享參照存在但不符合存取規則
func WrongShare() *Error { return kindWrongShare.new("Wrong uuid or wrong type") }

// 404
func NotFound(errorDesc string) *Error        { return kindNotFound.new(errorDesc) }
func ProfileNotFound(errorDesc string) *Error { return kindProfileNotFound.new(errorDesc) }

// 429
func RateLimitExceeded(errorDesc string) *Error { return kindRateLimit.new(errorDesc) }

// FloodControl 新增操作落在 flood window 內
func FloodControl() *Error { return kindFloodControl.new("Too Many Requests") }

// 5xx
func InternalServer(errorDesc string) *Error     { return kindInternal.new(errorDesc) }
func DatabaseError(errorDesc string) *Error      { return kindDatabase.new(errorDesc) }
func ServiceUnavailable(errorDesc string) *Error { return kindUnavailable.new(errorDesc) }
func ExternalRequestError(errorDesc string) *Error {
	return kindUpstream.new(errorDesc)
}
func ExternalResponseFormatError(errorDesc string) *Error {
	return kindUpstreamFormat.new(errorDesc)
}

// Wrap 回傳帶底層錯誤的複本；cause 只進 log，不會輸出給用戶端
func (e *Error) Wrap(cause error) *Error {
	wrapped := *e
	wrapped.cause = cause
	return &wrapped
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) HttpCode() int {
	return e.httpCode
}

func (e *Error) ErrorCode() int {
	return e.errorCode
}

func (e *Error) ErrorDesc() string {
	return e.errorDesc
}

func (e *Error) Error() string {
	return e.errorMsg
}
