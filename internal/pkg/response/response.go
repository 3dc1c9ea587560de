package response

import (
	"errors"
	"net/http"

	cErr "medcard/internal/pkg/error"

	"github.com/gin-gonic/gin"
)

// Response 所有 API 的統一外層格式（由 response middleware 輸出）
type Response struct {
	RequestID   string `json:"requestID"`
	Code        int    `json:"code"`
	Data        any    `json:"data"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

const (
	ContextKeyData    = "data"
	ContextKeyMessage = "message"
	ContextKeyStatus  = "status"
)

func Create(c *gin.Context, data any) {
	set(c, http.StatusCreated, "Create Success", data)
}

func Success(c *gin.Context, data any) {
	set(c, http.StatusOK, "Request Success", data)
}

func set(c *gin.Context, status int, message string, data any) {
	if msg, ok := data.(gin.H); ok {
		if custom, ok := msg["message"].(string); ok && custom != "" {
			message = custom
			delete(msg, "message")
		}
	}
	c.Set(ContextKeyData, data)
	c.Set(ContextKeyMessage, message)
	c.Set(ContextKeyStatus, status)
	c.Abort()
}

func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func Fail(c *gin.Context, requestID string, httpCode int, errorCode int, msg string, desc string) {
	c.JSON(httpCode, Response{
		RequestID:   requestID,
		Code:        errorCode,
		Data:        nil,
		Message:     msg,
		Description: desc,
	})
	c.Abort()
}

// FailByErr 非 *cErr.Error 一律視為 500
func FailByErr(c *gin.Context, requestID string, err error) {
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		Fail(c, requestID, appErr.HttpCode(), appErr.ErrorCode(), appErr.Error(), appErr.ErrorDesc())
		return
	}
	Fail(c, requestID, http.StatusInternalServerError, cErr.INTERNAL_ERROR, err.Error(), "internal error")
}
