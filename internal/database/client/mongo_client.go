package client

import (
	"context"
	"strings"
	"time"

	"medcard/config"
	"medcard/internal/core"

	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultMongoConnectTimeout = 10 * time.Second

// MongoClient 持有連線與預設資料庫名稱
type MongoClient struct {
	client   *mongo.Client
	database string
}

func NewMongoClient(logger *zap.Logger, config *config.Configuration) (*MongoClient, func(), error) {
	settings := config.MongoDB
	client, err := connectMongo(settings, logger)
	if err != nil {
		logger.Error("failed to connect to MongoDB", zap.Error(err))
		return nil, nil, err
	}
	mongoClient := &MongoClient{client: client, database: databaseName(settings.Database)}
	logger.Info("Connected to MongoDB", zap.String("database", mongoClient.database))

	cleanup := func() {
		logger.Info("closing the MongoDB resources")
		if err := mongoClient.Close(); err != nil {
			logger.Error("failed to close MongoDB client", zap.Error(err))
		}
	}
	return mongoClient, cleanup, nil
}

func connectMongo(settings config.MongoDB, logger *zap.Logger) (*mongo.Client, error) {
	timeout := settings.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultMongoConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	c, err := mongo.Connect(ctx, clientOptions(settings, logger))
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}
	return c, nil
}

func clientOptions(settings config.MongoDB, logger *zap.Logger) *options.ClientOptions {
	opts := options.Client().ApplyURI(buildMongoURI(settings.URI, settings.Options))
	if settings.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(settings.MaxPoolSize)
	}
	if settings.SlowCommand > 0 {
		opts.SetMonitor(slowCommandMonitor(logger, settings.SlowCommand))
	}
	return opts
}

// slowCommandMonitor 成功但超過門檻的指令記 warn；失敗只記 debug，duplicate key 屬正常流程
func slowCommandMonitor(logger *zap.Logger, threshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Succeeded: func(_ context.Context, e *event.CommandSucceededEvent) {
			if e.Duration < threshold {
				return
			}
			logger.Warn("slow mongo command",
				zap.String("command", e.CommandName),
				zap.String("database", e.DatabaseName),
				zap.Duration("duration", e.Duration))
		},
		Failed: func(_ context.Context, e *event.CommandFailedEvent) {
			logger.Debug("mongo command failed",
				zap.String("command", e.CommandName),
				zap.Duration("duration", e.Duration),
				zap.String("failure", e.Failure))
		},
	}
}

func buildMongoURI(baseURI, optionStr string) string {
	if optionStr == "" {
		return baseURI
	}
	separator := "?"
	if strings.Contains(baseURI, "?") {
		separator = "&"
	}
	return baseURI + separator + optionStr
}

func databaseName(name string) string {
	if name == "" {
		return core.DefaultMongoDatabase
	}
	return name
}

func (m *MongoClient) Close() error {
	return m.client.Disconnect(context.Background())
}

// Ping 就緒檢查用
func (m *MongoClient) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoClient) Client() *mongo.Client {
	return m.client
}

// Collection 回傳設定資料庫下的 collection
func (m *MongoClient) Collection(name core.MongoCollection) *mongo.Collection {
	return m.client.Database(m.database).Collection(string(name))
}
