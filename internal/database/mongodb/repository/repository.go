package repository

import (
	"context"
	"errors"
	"time"

	"medcard/internal/core"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const ensureIndexesTimeout = 10 * time.Second

// ErrDuplicateProfile 同一 userId 已存在（併發首次存取）
var ErrDuplicateProfile = errors.New("profile already exists")

// 統一管理所有 MongoDB repository
type MongoDBRepository struct {
	Profile *ProfileRepository
	Event   *EventRepository
	ViewLog *ViewLogRepository
}

// 建立 MongoDB repository 物件
func NewMongoDBRepository(
	profileRepository *ProfileRepository,
	eventRepository *EventRepository,
	viewLogRepository *ViewLogRepository,
) *MongoDBRepository {
	return &MongoDBRepository{
		Profile: profileRepository,
		Event:   eventRepository,
		ViewLog: viewLogRepository,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewProfileRepository,
	NewEventRepository,
	NewViewLogRepository,
	NewMongoDBRepository)

// ensureIndexesOnStart 啟動時建立索引；失敗不中斷啟動但記 error，可再跑 ensure-indexes 補建
func ensureIndexesOnStart(logger *zap.Logger, collection core.MongoCollection, ensure func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), ensureIndexesTimeout)
	defer cancel()
	if err := ensure(ctx); err != nil {
		logger.Error("ensure mongo indexes failed",
			zap.String("collection", string(collection)),
			zap.Error(err))
	}
}

// withUpdatedAt 每次寫入都更新 updatedAt（同時作為 flood control 時鐘）
func withUpdatedAt(update bson.M, at time.Time) bson.M {
	set, ok := update["$set"].(bson.M)
	if !ok || set == nil {
		set = bson.M{}
	}
	set["updatedAt"] = at.UTC()
	update["$set"] = set
	return update
}

// arrayEntryFields 將 {"title": ...} 轉為 {"diseases.$.title": ...}
func arrayEntryFields(array string, fields bson.M) bson.M {
	positional := bson.M{}
	for key, value := range fields {
		positional[array+".$."+key] = value
	}
	return positional
}
