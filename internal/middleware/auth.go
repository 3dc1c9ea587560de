package middleware

import (
	"fmt"
	"strings"

	"medcard/config"
	"medcard/internal/core"
	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/response"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

type Auth struct {
	logger *zap.Logger
	trace  *telemetry.Trace
	config *config.Configuration
}

func NewAuth(
	logger *zap.Logger,
	trace *telemetry.Trace,
	config *config.Configuration,
) *Auth {
	return &Auth{
		logger: logger,
		trace:  trace,
		config: config,
	}
}

// Handler 驗證 HS256 JWT，成功後把 vk_user_id 放入 gin.Context
func (middleware *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span, end := middleware.trace.WithSpan(c.Request.Context(), string(core.SpanAuthMiddleware))
		meta := core.TraceAuthMiddlewareMeta{}

		fail := func(status string, cause error) {
			meta.Status = status
			middleware.trace.ApplyTraceAttributes(span, meta)
			response.AbortWithError(c, cErr.InvalidToken(cause.Error()))
			end(cause)
		}

		tokenString := readBearer(c)
		if tokenString == "" {
			fail("missing_token", fmt.Errorf("missing bearer token"))
			return
		}

		claims, err := middleware.parse(tokenString)
		if err != nil {
			fail("invalid_token", err)
			return
		}

		meta.UserID = claims.VKUserID
		meta.Status = "success"
		middleware.trace.ApplyTraceAttributes(span, meta)
		end(nil)

		c.Set(core.ContextUserIDKey, claims.VKUserID)
		c.Next()
	}
}

func (middleware *Auth) parse(tokenString string) (*core.Claims, error) {
	claims := &core.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(middleware.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if issuer := middleware.config.Auth.Issuer; issuer != "" && !claims.VerifyIssuer(issuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if claims.VKUserID <= 0 {
		return nil, fmt.Errorf("vk_user_id is missing")
	}
	return claims, nil
}

// Authorization: Bearer <token>
func readBearer(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}

// UserID 取出 auth middleware 設定的 VK user id
func UserID(c *gin.Context) (int64, bool) {
	raw, ok := c.Get(core.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := raw.(int64)
	return userID, ok && userID > 0
}
