package telemetry

import (
	"testing"
	"time"

	"medcard/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestDisabledMetricIsSafe(t *testing.T) {
	metric := NewMetric(nil)
	assert.Nil(t, metric.ShareViewsTotal)
	assert.NotPanics(t, func() {
		metric.IncShareView(core.ShareModeToken)
		metric.IncFloodRejected(core.ProfileArrayDiseases)
		metric.IncRateLimited("/api/v1/profile")
		metric.IncResponseSuccess("/api/v1/profile", 200)
		metric.IncResponseFail("wrong-share")
	})

	var nilMetric *Metric
	assert.NotPanics(t, func() { nilMetric.IncShareView(core.ShareModeID) })
}

func TestPrettifyFuncName(t *testing.T) {
	assert.Equal(t, "ProfileService.AddDisease", prettifyFuncName("medcard/internal/service.(*ProfileService).AddDisease"))
	assert.Equal(t, "ProfileService.AddDisease", prettifyFuncName("medcard/internal/service.(*ProfileService).AddDisease.func1"))
	assert.Equal(t, "ProfileHandler.GetProfile", prettifyFuncName("medcard/internal/handler.(*ProfileHandler).GetProfile-fm"))
}

func TestSamplerFor(t *testing.T) {
	assert.Contains(t, samplerFor(0).Description(), "AlwaysOn")
	assert.Contains(t, samplerFor(1).Description(), "AlwaysOn")
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}

func TestObserveRequest_DisabledIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetric(nil).ObserveRequest("/api/v1/profile", 200, time.Millisecond)
	})
}
