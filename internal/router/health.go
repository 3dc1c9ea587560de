package router

import (
	"medcard/internal/handler"

	"github.com/gin-gonic/gin"
)

// HealthRouter 探針與版本資訊，不需要驗證
type HealthRouter struct {
	handler *handler.HealthHandler
}

func NewHealthRouter(healthHandler *handler.HealthHandler) *HealthRouter {
	return &HealthRouter{handler: healthHandler}
}

func (healthRouter *HealthRouter) RegisterRoutes(engine *gin.Engine) {
	health := engine.Group("/health")
	health.GET("/liveness", healthRouter.handler.Liveness)
	health.GET("/readiness", healthRouter.handler.Readiness)

	engine.GET("/version", healthRouter.handler.Version)
}
