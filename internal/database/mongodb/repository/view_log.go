package repository

import (
	"context"
	"fmt"

	"medcard/internal/core"
	client "medcard/internal/database/client"
	"medcard/internal/database/mongodb/model"
	"medcard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ViewLogRepository 分享瀏覽紀錄（append-only）
type ViewLogRepository struct {
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewViewLogRepository(trace *telemetry.Trace, logger *zap.Logger, mongoClient *client.MongoClient) *ViewLogRepository {
	repository := &ViewLogRepository{
		trace:      trace,
		collection: mongoClient.Collection(core.MongoCollectionViewLogs),
	}
	ensureIndexesOnStart(logger, core.MongoCollectionViewLogs, repository.EnsureIndexes)
	return repository
}

func (repository *ViewLogRepository) EnsureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.ViewLogIndexes)
	return err
}

// Append：新增一筆瀏覽紀錄
func (repository *ViewLogRepository) Append(
	contextValue context.Context,
	viewLog *model.ViewLog,
) (returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	if viewLog.ID.IsZero() {
		viewLog.ID = primitive.NewObjectID()
	}
	if _, insertError := repository.collection.InsertOne(contextValue, viewLog); insertError != nil {
		return fmt.Errorf("append view log: %w", insertError)
	}
	return nil
}

// FindByViewerUserID：使用者看過的檔案，新到舊
func (repository *ViewLogRepository) FindByViewerUserID(
	contextValue context.Context,
	viewerUserID int64,
) (_ []model.ViewLog, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	cursor, findError := repository.collection.Find(
		contextValue,
		bson.M{"userId": viewerUserID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	viewLogs := []model.ViewLog{}
	if returnedError = cursor.All(contextValue, &viewLogs); returnedError != nil {
		return nil, returnedError
	}
	return viewLogs, nil
}
