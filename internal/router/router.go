package router

import (
	"net/http"

	docs "medcard/cmd/docs"
	"medcard/config"
	"medcard/internal/middleware"
	"medcard/internal/pkg/response"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var ProviderSet = wire.NewSet(
	NewRouter,
	NewHealthRouter,
	NewProfileRouter,
)

// routeRegistrar 各功能模組自行掛路由
type routeRegistrar interface {
	RegisterRoutes(engine *gin.Engine)
}

// NewRouter middleware 順序：trace → logger → cors → recovery → response
func NewRouter(
	config *config.Configuration,
	traceEntry *middleware.TraceEntry,
	recovery *middleware.Recovery,
	cors *middleware.Cors,
	logger *middleware.Logger,
	responseMiddleware *middleware.Response,
	healthRouter *HealthRouter,
	profileRouter *ProfileRouter,
) *gin.Engine {
	gin.SetMode(ginMode(config.App.Env))

	engine := gin.New()
	engine.Use(
		traceEntry.Handler(),
		logger.LoggerHandler(),
		cors.CorsHandler(),
		recovery.ErrorHandler(),
		responseMiddleware.FormatHandler(),
		versionHeader(config.App.Version),
	)
	engine.GET("/health-check", healthCheck)

	registerOpsRoutes(engine, config.App)
	for _, registrar := range []routeRegistrar{healthRouter, profileRouter} {
		registrar.RegisterRoutes(engine)
	}
	return engine
}

func ginMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func versionHeader(version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if version != "" {
			c.Header("X-App-Version", version)
		}
		c.Next()
	}
}

// healthCheck 給負載平衡器用，不經 response middleware 包裝
func healthCheck(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, response.Response{
		Data:        "ok",
		Message:     "success",
		Description: "service is alive",
	})
}

// registerOpsRoutes /metrics、swagger 與 pprof
func registerOpsRoutes(engine *gin.Engine, app config.App) {
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if app.SwaggerEnabled {
		// Host 留空，swagger UI 以目前網址為準
		docs.SwaggerInfo.Host = ""
		if app.Env == "production" {
			docs.SwaggerInfo.Schemes = []string{"https"}
			docs.SwaggerInfo.BasePath = "/medcard"
		}
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if app.PprofEnabled {
		pprof.Register(engine)
	}
}
