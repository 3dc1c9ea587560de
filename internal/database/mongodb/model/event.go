package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event 行事曆項目，此服務只讀
type Event struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    int64              `json:"userId" bson:"userId"`
	Title     string             `json:"title" bson:"title"`
	Date      *time.Time         `json:"date,omitempty" bson:"date,omitempty"`
	Color     int                `json:"color" bson:"color"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

var EventIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("idx_userId_date"),
	},
}
