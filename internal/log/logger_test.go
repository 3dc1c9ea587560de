package log

import (
	"testing"

	"medcard/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"WARN":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), "level %q", input)
	}
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	conf := &config.Configuration{Log: config.Log{Level: "warn"}}
	logger, _, err := NewLogger(conf)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
}

func TestNewLogger_LevelCanChangeAtRuntime(t *testing.T) {
	logger, level, err := NewLogger(&config.Configuration{Log: config.Log{Level: "error"}})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	level.SetLevel(ParseLevel("debug"))
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewEncoder(t *testing.T) {
	assert.NotNil(t, newEncoder("console"))
	assert.NotNil(t, newEncoder(""))
}

func TestServiceName(t *testing.T) {
	assert.Equal(t, "medcard", serviceName(&config.Configuration{}))
	assert.Equal(t, "medcard-api", serviceName(&config.Configuration{App: config.App{Name: "medcard-api"}}))
}
