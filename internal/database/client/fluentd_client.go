package client

import (
	"context"
	"time"

	"medcard/config"

	"github.com/fluent/fluent-logger-golang/fluent"
	"go.uber.org/zap"
)

const defaultFluentdTagPrefix = "medcard"

// Client 送出結構化紀錄；測試與停用時以 NoopClient 取代
type Client interface {
	Post(ctx context.Context, tag string, message any) error
	Close() error
}

type FluentdClient struct {
	client *fluent.Fluent
}

// NewFluentdClient Fluentd 停用時回傳 NoopClient
func NewFluentdClient(logger *zap.Logger, config *config.Configuration) (Client, func(), error) {
	settings := config.Fluentd
	if !settings.Enabled {
		logger.Info("fluentd disabled, using noop client")
		return &NoopClient{}, func() {}, nil
	}

	f, err := fluent.New(fluentConfig(settings))
	if err != nil {
		logger.Error("failed to connect to Fluentd", zap.Error(err))
		return nil, nil, err
	}
	fluentdClient := &FluentdClient{client: f}
	cleanup := func() {
		logger.Info("closing the Fluentd resources")
		if err := fluentdClient.Close(); err != nil {
			logger.Error("failed to close Fluentd client", zap.Error(err))
		}
	}
	return fluentdClient, cleanup, nil
}

// fluentConfig Timeout 單位為毫秒；非同步送出，連線中斷時由 logger 自行重試
func fluentConfig(settings config.Fluentd) fluent.Config {
	prefix := settings.TagPrefix
	if prefix == "" {
		prefix = defaultFluentdTagPrefix
	}
	cfg := fluent.Config{
		FluentHost: settings.Host,
		FluentPort: settings.Port,
		TagPrefix:  prefix,
		Async:      true,
	}
	if settings.Timeout > 0 {
		cfg.Timeout = time.Duration(settings.Timeout) * time.Millisecond
	}
	return cfg
}

func (c *FluentdClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Post fluent-logger 不吃 context，只在送出前檢查是否已取消
func (c *FluentdClient) Post(ctx context.Context, tag string, message any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.client.Post(tag, message)
}

type NoopClient struct{}

func (n *NoopClient) Post(context.Context, string, any) error { return nil }
func (n *NoopClient) Close() error                            { return nil }
