package database

import (
	client "medcard/internal/database/client"
	fluentdRepo "medcard/internal/database/fluentd/repository"
	mongoRepo "medcard/internal/database/mongodb/repository"
	redisRepo "medcard/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
