package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"medcard/config"
	"medcard/internal/service"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

// VersionInfo /version 回應；Uptime 為可讀字串，UptimeSeconds 給監控用
type VersionInfo struct {
	Env           string    `json:"env"`
	Name          string    `json:"name"`
	Version       string    `json:"version"`
	GoVersion     string    `json:"go_version"`
	StartAt       time.Time `json:"start_at"`
	Uptime        string    `json:"uptime"`
	UptimeSeconds int64     `json:"uptime_seconds"`
}

type HealthHandler struct {
	healthStatus *service.HealthService
	info         VersionInfo
}

func NewHealthHandler(status *service.HealthService, config *config.Configuration) *HealthHandler {
	return &HealthHandler{
		healthStatus: status,
		info: VersionInfo{
			Env:       config.App.Env,
			Name:      config.App.Name,
			Version:   config.App.Version,
			GoVersion: runtime.Version(),
			StartAt:   time.Now(),
		},
	}
}

func (h *HealthHandler) Liveness(c *gin.Context) {
	if !h.healthStatus.IsLive() {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness 啟動完成且 Mongo/Redis 皆可 ping 才回 200
func (h *HealthHandler) Readiness(c *gin.Context) {
	if !h.healthStatus.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	dependencies, ok := h.healthStatus.CheckDependencies(ctx)
	status, code := "ready", http.StatusOK
	if !ok {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "dependencies": dependencies})
}

func (h *HealthHandler) Version(c *gin.Context) {
	info := h.info
	uptime := time.Since(info.StartAt).Truncate(time.Second)
	info.Uptime, info.UptimeSeconds = uptime.String(), int64(uptime.Seconds())
	c.JSON(http.StatusOK, info)
}
