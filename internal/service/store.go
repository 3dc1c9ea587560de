package service

import (
	"context"
	"time"

	"medcard/internal/core"
	fluentdModel "medcard/internal/database/fluentd/model"
	"medcard/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileStore 找不到資料時回傳 mongo.ErrNoDocuments；
// 更新類操作回傳符合（或被修改）的文件數。
type ProfileStore interface {
	Insert(ctx context.Context, profile *model.Profile) (*model.Profile, error)
	FindByID(ctx context.Context, profileID primitive.ObjectID) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	FindByShareToken(ctx context.Context, shareToken string) (*model.Profile, error)
	ModifiedSince(ctx context.Context, userID int64, since time.Time) (bool, error)
	UpdateFields(ctx context.Context, userID int64, setFields bson.M, at time.Time) (int64, error)
	SyncExternalFields(ctx context.Context, userID int64, userName, photo string, at time.Time) (int64, error)
	PushArrayEntry(ctx context.Context, userID int64, array core.ProfileArray, entry any, notModifiedSince, at time.Time) (int64, error)
	PullArrayEntryByID(ctx context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID, at time.Time) (int64, error)
	UpdateArrayEntryByID(ctx context.Context, userID int64, array core.ProfileArray, entryID primitive.ObjectID, fields bson.M, at time.Time) (int64, error)
	ListStale(ctx context.Context, before time.Time, limit int64) ([]*model.Profile, error)
}

type EventStore interface {
	FindByUserID(ctx context.Context, userID int64) ([]model.Event, error)
}

type ViewLogStore interface {
	FindByViewerUserID(ctx context.Context, viewerUserID int64) ([]model.ViewLog, error)
	Append(ctx context.Context, viewLog *model.ViewLog) error
}

// ViewLogPublisher 將瀏覽事件送到 log pipeline（Fluentd）
type ViewLogPublisher interface {
	LogProfileView(ctx context.Context, view fluentdModel.ProfileViewLog) error
}
