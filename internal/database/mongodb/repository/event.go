package repository

import (
	"context"

	"medcard/internal/core"
	client "medcard/internal/database/client"
	"medcard/internal/database/mongodb/model"
	"medcard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EventRepository 使用者行事曆事件（唯讀，由其他服務寫入）
type EventRepository struct {
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewEventRepository(trace *telemetry.Trace, logger *zap.Logger, mongoClient *client.MongoClient) *EventRepository {
	repository := &EventRepository{
		trace:      trace,
		collection: mongoClient.Collection(core.MongoCollectionEvents),
	}
	ensureIndexesOnStart(logger, core.MongoCollectionEvents, repository.EnsureIndexes)
	return repository
}

func (repository *EventRepository) EnsureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.EventIndexes)
	return err
}

// FindByUserID：依事件日期排序，無資料時回傳空 slice
func (repository *EventRepository) FindByUserID(
	contextValue context.Context,
	userID int64,
) (_ []model.Event, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	cursor, findError := repository.collection.Find(
		contextValue,
		bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	events := []model.Event{}
	if returnedError = cursor.All(contextValue, &events); returnedError != nil {
		return nil, returnedError
	}
	return events, nil
}
