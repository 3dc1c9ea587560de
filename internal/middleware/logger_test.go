package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"medcard/config"
	"medcard/internal/database/fluentd/repository"
	"medcard/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingFluentd struct {
	mu      sync.Mutex
	records []map[string]any
}

func (r *recordingFluentd) Post(_ context.Context, _ string, message any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, message.(map[string]any))
	return nil
}

func (r *recordingFluentd) Close() error { return nil }

func TestMaskJSON(t *testing.T) {
	masked := maskJSON([]byte(`{"title":"Asthma","color":3,"dateStart":1717200000000,"tags":["a",{"note":"x"}],"ok":true}`))
	assert.JSONEq(t, `{"title":"***","color":3,"dateStart":1717200000000,"tags":["***",{"note":"***"}],"ok":true}`, masked)

	assert.Equal(t, "(invalid json, 7 bytes)", maskJSON([]byte(`{"title`)))
	assert.Empty(t, maskJSON(nil))
}

func TestParseUserAgent(t *testing.T) {
	info := parseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.5 Mobile/15E148 Safari/604.1")
	assert.True(t, info.Mobile)
	assert.False(t, info.Bot)
	assert.Contains(t, info.Browser, "Safari")

	bot := parseUserAgent("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	assert.True(t, bot.Bot)

	assert.Equal(t, clientInfo{}, parseUserAgent(""))
}

func TestLoggerHandler_MasksBodyAndKeepsItReadable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fluentd := &recordingFluentd{}
	conf := &config.Configuration{App: config.App{Version: "1.0.0"}}
	logger := NewLogger(zap.NewNop(), &telemetry.Trace{}, conf, repository.NewLogRepository(conf, fluentd))

	var downstream string
	engine := gin.New()
	engine.Use(logger.LoggerHandler())
	engine.POST("/api/v1/profile/diseases", func(c *gin.Context) {
		data, _ := io.ReadAll(c.Request.Body)
		downstream = string(data)
		c.Status(http.StatusCreated)
	})

	body := `{"title":"Diabetes","color":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/diseases", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, body, downstream)

	require.Len(t, fluentd.records, 1)
	record := fluentd.records[0]
	assert.JSONEq(t, `{"title":"***","color":1}`, record["body"].(string))
	assert.NotContains(t, record["body"], "Diabetes")
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, false, record["mobile"])
	assert.Contains(t, record["browser"], "Chrome")
	assert.NotEmpty(t, record["ip_hash"])
}
