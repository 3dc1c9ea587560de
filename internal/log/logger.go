package log

import (
	"os"

	"medcard/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultServiceName = "medcard"

// NewLogger warn 以下寫 stdout、warn 以上寫 stderr；回傳的 level 可在設定重載時調整
func NewLogger(conf *config.Configuration) (*zap.Logger, zap.AtomicLevel, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))
	encoder := newEncoder(conf.Log.Encoding)

	below := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l < zapcore.WarnLevel
	})
	above := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l >= zapcore.WarnLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), below),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), above),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", serviceName(conf)))
	logger.Info("zap logger ready", zap.Stringer("level", level.Level()))
	return logger, level, nil
}

// ParseLevel 無法辨識時回退到 info
func ParseLevel(text string) zapcore.Level {
	level, err := zapcore.ParseLevel(text)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func newEncoder(encoding string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.MessageKey = "message"
	cfg.TimeKey = "ts"
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if encoding == "console" {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func serviceName(conf *config.Configuration) string {
	if conf.App.Name != "" {
		return conf.App.Name
	}
	return defaultServiceName
}
