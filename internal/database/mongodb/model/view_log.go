package model

import (
	"time"

	"medcard/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ViewLog 透過分享管道成功查看他人檔案的紀錄，只新增不修改
type ViewLog struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	ViewerUserID   int64              `json:"userId" bson:"userId"`                         // 查看者
	ViewedUserID   int64              `json:"clientId" bson:"clientId"`                     // 被查看者
	ViewedUserName string             `json:"userName,omitempty" bson:"userName,omitempty"` // 被查看者名稱快照
	ViewedPhoto    string             `json:"photo,omitempty" bson:"photo,omitempty"`       // 被查看者頭像快照
	ShareMode      core.ShareMode     `json:"type" bson:"type"`                             // 0=uuid、1=uuidv4
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}

var ViewLogIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_userId_createdAt"),
	},
	{
		Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_clientId_createdAt"),
	},
}
