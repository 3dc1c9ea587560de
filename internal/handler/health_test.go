package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medcard/config"
	"medcard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	redis := &stubPinger{}
	status := service.NewHealthServiceWith(map[string]service.Pinger{"mongodb": &stubPinger{}, "redis": redis})
	h := NewHealthHandler(status, &config.Configuration{App: config.App{Name: "medcard", Version: "1.2.3", Env: "test"}})

	engine := gin.New()
	engine.GET("/health/liveness", h.Liveness)
	engine.GET("/health/readiness", h.Readiness)
	engine.GET("/version", h.Version)

	get := func(path string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
		return recorder
	}

	assert.Equal(t, http.StatusOK, get("/health/liveness").Code)
	assert.Equal(t, http.StatusServiceUnavailable, get("/health/readiness").Code)

	status.SetReady(true)
	assert.Equal(t, http.StatusOK, get("/health/readiness").Code)

	redis.err = errors.New("connection refused")
	recorder := get("/health/readiness")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	var body struct {
		Status       string                     `json:"status"`
		Dependencies []service.DependencyStatus `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, []service.DependencyStatus{
		{Name: "mongodb", OK: true},
		{Name: "redis", OK: false, Error: "connection refused"},
	}, body.Dependencies)

	var info VersionInfo
	require.NoError(t, json.Unmarshal(get("/version").Body.Bytes(), &info))
	assert.Equal(t, "medcard", info.Name)
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "test", info.Env)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Uptime)
	assert.GreaterOrEqual(t, info.UptimeSeconds, int64(0))
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error {
	return p.err
}
