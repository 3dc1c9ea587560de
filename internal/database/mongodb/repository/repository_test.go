package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"medcard/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithUpdatedAt(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	t.Run("adds $set when missing", func(t *testing.T) {
		update := withUpdatedAt(bson.M{"$push": bson.M{"diseases": "x"}}, at)
		set, ok := update["$set"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, at.UTC(), set["updatedAt"])
		assert.Contains(t, update, "$push")
	})

	t.Run("keeps existing $set fields", func(t *testing.T) {
		update := withUpdatedAt(bson.M{"$set": bson.M{"sex": 2}}, at)
		set := update["$set"].(bson.M)
		assert.Equal(t, 2, set["sex"])
		assert.Equal(t, at.UTC(), set["updatedAt"])
	})
}

func TestArrayEntryFields(t *testing.T) {
	got := arrayEntryFields("allergens", bson.M{"title": "pollen", "color": 3})
	assert.Equal(t, bson.M{"allergens.$.title": "pollen", "allergens.$.color": 3}, got)
}

func TestStaleFilter(t *testing.T) {
	before := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	filter := staleFilter(before)
	assert.Equal(t, bson.M{"$lt": before}, filter["updatedAt"])
	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	assert.Len(t, or, 2)
}

func TestArrayEntryFilter(t *testing.T) {
	entryID := primitive.NewObjectID()

	assert.Equal(t, bson.M{"userId": int64(100), "diseases._id": entryID},
		arrayEntryFilter(100, core.ProfileArrayDiseases, entryID))
	assert.Equal(t, bson.M{"userId": int64(100), "allergens._id": entryID},
		arrayEntryFilter(100, core.ProfileArrayAllergens, entryID))
}

func TestEnsureIndexesOnStart(t *testing.T) {
	observed, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(observed)

	ensureIndexesOnStart(logger, core.MongoCollectionProfiles, func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	assert.Zero(t, logs.Len())

	ensureIndexesOnStart(logger, core.MongoCollectionProfiles, func(context.Context) error {
		return errors.New("index build failed")
	})
	entries := logs.FilterMessage("ensure mongo indexes failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, string(core.MongoCollectionProfiles), entries[0].ContextMap()["collection"])
}
