package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"medcard/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestGinMode(t *testing.T) {
	assert.Equal(t, gin.ReleaseMode, ginMode("production"))
	assert.Equal(t, gin.TestMode, ginMode("test"))
	assert.Equal(t, gin.DebugMode, ginMode("development"))
	assert.Equal(t, gin.DebugMode, ginMode(""))
}

func TestVersionHeaderAndHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(versionHeader("2.0.1"))
	engine.GET("/health-check", healthCheck)

	recorder := serve(engine, "/health-check")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "2.0.1", recorder.Header().Get("X-App-Version"))
	assert.JSONEq(t, `{"requestID":"","code":0,"data":"ok","message":"success","description":"service is alive"}`, recorder.Body.String())
}

func TestRegisterOpsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	registerOpsRoutes(engine, config.App{})
	assert.Equal(t, http.StatusOK, serve(engine, "/metrics").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, "/swagger/index.html").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, "/debug/pprof/").Code)

	engine = gin.New()
	registerOpsRoutes(engine, config.App{SwaggerEnabled: true, PprofEnabled: true})
	assert.Equal(t, http.StatusOK, serve(engine, "/swagger/index.html").Code)
	assert.Equal(t, http.StatusOK, serve(engine, "/debug/pprof/").Code)
}
