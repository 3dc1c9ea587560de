package repository

import (
	"context"
	"fmt"
	"time"

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

type ProfileRepository struct {
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewProfileRepository(trace *telemetry.Trace, logger *zap.Logger, mongoClient *client.MongoClient) *ProfileRepository {
	repository := &ProfileRepository{
		trace:      trace,
		collection: mongoClient.Collection(core.MongoCollectionProfiles),
	}
	ensureIndexesOnStart(logger, core.MongoCollectionProfiles, repository.EnsureIndexes)
	return repository
}

func (repository *ProfileRepository) EnsureIndexes(contextValue context.Context) error {
	_, err := repository.collection.Indexes().CreateMany(contextValue, model.ProfileIndexes)
	return err
}

// Insert：單文件插入，userId 重複時回傳 ErrDuplicateProfile
func (repository *ProfileRepository) Insert(
	contextValue context.Context,
	profile *model.Profile,
) (_ *model.Profile, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	if profile.ID.IsZero() {
		profile.ID = primitive.NewObjectID()
	}
	if returnedError = profile.Validate(); returnedError != nil {
		return nil, returnedError
	}

	insertResult, insertError := repository.collection.InsertOne(contextValue, profile)
	if insertError != nil {
		if mongo.IsDuplicateKeyError(insertError) {
			return nil, ErrDuplicateProfile
		}
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	profile.ID = objectID
	return profile, nil
}

func (repository *ProfileRepository) FindByID(
	contextValue context.Context,
	profileID primitive.ObjectID,
) (*model.Profile, error) {
	return repository.findOne(contextValue, bson.M{"_id": profileID})
}

func (repository *ProfileRepository) FindByUserID(
	contextValue context.Context,
	userID int64,
) (*model.Profile, error) {
	return repository.findOne(contextValue, bson.M{"userId": userID})
}

func (repository *ProfileRepository) FindByShareToken(
	contextValue context.Context,
	shareToken string,
) (*model.Profile, error) {
	return repository.findOne(contextValue, bson.M{"uuidv4": shareToken})
}

// findOne 找不到時回傳 mongo.ErrNoDocuments
func (repository *ProfileRepository) findOne(contextValue context.Context, filter bson.M) (_ *model.Profile, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	var profile model.Profile
	if returnedError = repository.collection.FindOne(contextValue, filter).Decode(&profile); returnedError != nil {
		return nil, returnedError
	}
	return &profile, nil
}

// ModifiedSince：since 之後是否有任何寫入（flood control 查詢）
// updatedAt 恰好等於 since 視為在視窗外，與 PushArrayEntry 的 $lte 一致
func (repository *ProfileRepository) ModifiedSince(
	contextValue context.Context,
	userID int64,
	since time.Time,
) (_ bool, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	count, countError := repository.collection.CountDocuments(
		contextValue,
		bson.M{"userId": userID, "updatedAt": bson.M{"$gt": since.UTC()}},
		options.Count().SetLimit(1),
	)
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

// UpdateFields：單文件部分更新（請只傳欄位值，不要傳 operator）
func (repository *ProfileRepository) UpdateFields(
	contextValue context.Context,
	userID int64,
	setFields bson.M,
	at time.Time,
) (_ int64, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	update := bson.M{"$set": setFields}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"userId": userID}, withUpdatedAt(update, at))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// SyncExternalFields：只更新 VK 快取欄位與 syncedAt，不動 updatedAt
func (repository *ProfileRepository) SyncExternalFields(
	contextValue context.Context,
	userID int64,
	userName string,
	photo string,
	at time.Time,
) (_ int64, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	update := bson.M{"$set": bson.M{"userName": userName, "photo": photo, "syncedAt": at.UTC()}}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"userId": userID}, update)
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// PushArrayEntry：附加一筆陣列元素。
// notModifiedSince 非零時，只有 updatedAt <= notModifiedSince 的文件會被更新（flood control 的 CAS）。
func (repository *ProfileRepository) PushArrayEntry(
	contextValue context.Context,
	userID int64,
	array core.ProfileArray,
	entry any,
	notModifiedSince time.Time,
	at time.Time,
) (_ int64, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	filter := bson.M{"userId": userID}
	if !notModifiedSince.IsZero() {
		filter["updatedAt"] = bson.M{"$lte": notModifiedSince.UTC()}
	}
	update := bson.M{"$push": bson.M{string(array): entry}}
	result, updateError := repository.collection.UpdateOne(contextValue, filter, withUpdatedAt(update, at))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// PullArrayEntryByID：移除一筆陣列元素；元素不存在時不比對到文件，updatedAt 不動，回傳 0
func (repository *ProfileRepository) PullArrayEntryByID(
	contextValue context.Context,
	userID int64,
	array core.ProfileArray,
	entryID primitive.ObjectID,
	at time.Time,
) (_ int64, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	update := bson.M{"$pull": bson.M{string(array): bson.M{"_id": entryID}}}
	result, updateError := repository.collection.UpdateOne(contextValue, arrayEntryFilter(userID, array, entryID), withUpdatedAt(update, at))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// UpdateArrayEntryByID：以 positional operator 原地更新陣列元素
func (repository *ProfileRepository) UpdateArrayEntryByID(
	contextValue context.Context,
	userID int64,
	array core.ProfileArray,
	entryID primitive.ObjectID,
	fields bson.M,
	at time.Time,
) (_ int64, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	update := bson.M{"$set": arrayEntryFields(string(array), fields)}
	result, updateError := repository.collection.UpdateOne(contextValue, arrayEntryFilter(userID, array, entryID), withUpdatedAt(update, at))
	if updateError != nil {
		return 0, updateError
	}
	return result.MatchedCount, nil
}

// ListStale：列出 before 之前未修改也未同步的檔案（最舊的優先）
func (repository *ProfileRepository) ListStale(
	contextValue context.Context,
	before time.Time,
	limit int64,
) (_ []*model.Profile, returnedError error) {
	contextValue, _, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	findOptions := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "updatedAt", Value: 1}})

	cursor, findError := repository.collection.Find(contextValue, staleFilter(before), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var profiles []*model.Profile
	if returnedError = cursor.All(contextValue, &profiles); returnedError != nil {
		return nil, returnedError
	}
	return profiles, nil
}

func staleFilter(before time.Time) bson.M {
	return bson.M{
		"updatedAt": bson.M{"$lt": before},
		"$or": bson.A{
			bson.M{"syncedAt": bson.M{"$exists": false}},
			bson.M{"syncedAt": bson.M{"$lt": before}},
		},
	}
}

// arrayEntryFilter 只比對含有該元素的檔案，元素不存在時不會更新 updatedAt
func arrayEntryFilter(userID int64, array core.ProfileArray, entryID primitive.ObjectID) bson.M {
	return bson.M{"userId": userID, string(array) + "._id": entryID}
}
