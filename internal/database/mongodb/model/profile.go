package model

import (
	"errors"
	"fmt"
	"time"

	"medcard/internal/core"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Profile struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id"`                                // internal id（uuid 分享管道）
	UserID     int64               `json:"userId" bson:"userId"`                         // VK user id，建立後不可變
	UserName   string              `json:"userName" bson:"userName"`                     // VK 顯示名稱快取
	Photo      string              `json:"photo,omitempty" bson:"photo,omitempty"`       // VK 頭像快取
	AllowView  core.VisibilityMode `json:"allowView" bson:"allowView"`                   // 0=uuid、1=uuidv4、其他=不分享
	ShareToken string              `json:"uuidv4" bson:"uuidv4"`                         // 可重新產生的分享 token
	BloodType  int                 `json:"bloodType" bson:"bloodType"`                   // 8=未知
	Diseases   []Disease           `json:"diseases" bson:"diseases"`                     // 疾病
	Allergens  []Allergen          `json:"allergens" bson:"allergens"`                   // 過敏原
	Birthday   *time.Time          `json:"birthday,omitempty" bson:"birthday,omitempty"` // 生日
	Sex        *int                `json:"sex,omitempty" bson:"sex,omitempty"`           // VK 性別代碼
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`                   // 建立時間
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`                   // 最後修改時間（flood control 時鐘）
	SyncedAt   *time.Time          `json:"syncedAt,omitempty" bson:"syncedAt,omitempty"` // 最後一次從 VK 同步名稱/頭像
}

type Disease struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	DateStart *time.Time         `json:"dateStart" bson:"dateStart"`
	DateEnd   *time.Time         `json:"dateEnd" bson:"dateEnd"`
	Color     int                `json:"color" bson:"color"`
}

type Allergen struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Title string             `json:"title" bson:"title"`
	Date  *time.Time         `json:"date" bson:"date"`
	Color int                `json:"color" bson:"color"`
}

var ProfileIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("uniq_userId").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "uuidv4", Value: 1}},
		Options: options.Index().SetName("uniq_uuidv4").SetUnique(true).SetSparse(true),
	},
	{
		Keys:    bson.D{{Key: "updatedAt", Value: 1}, {Key: "syncedAt", Value: 1}},
		Options: options.Index().SetName("idx_updatedAt_syncedAt"),
	},
}

// NewProfile 首次存取時以 VK 資料建立，其餘欄位套用預設值
func NewProfile(userID int64, userName, photo string, sex *int, birthday *time.Time, now time.Time) *Profile {
	return &Profile{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		UserName:   userName,
		Photo:      photo,
		AllowView:  core.VisibilityByID,
		ShareToken: NewShareToken(),
		BloodType:  core.BloodTypeUnknown,
		Diseases:   []Disease{},
		Allergens:  []Allergen{},
		Birthday:   birthday,
		Sex:        sex,
		CreatedAt:  now,
		UpdatedAt:  now,
		SyncedAt:   &now,
	}
}

func NewShareToken() string {
	return uuid.NewString()
}

// Validate 寫入前檢查
func (p *Profile) Validate() error {
	if p.ID.IsZero() {
		return errors.New("profile id is required")
	}
	if p.UserID <= 0 {
		return fmt.Errorf("invalid userId %d", p.UserID)
	}
	if p.ShareToken == "" {
		return errors.New("share token is required")
	}
	if p.BloodType < 0 || p.BloodType > core.BloodTypeUnknown {
		return fmt.Errorf("invalid bloodType %d", p.BloodType)
	}
	if p.AllowView < 0 {
		return fmt.Errorf("invalid allowView %d", p.AllowView)
	}
	return nil
}

// LastTouchedAt 用來判斷外部資料是否過期
func (p *Profile) LastTouchedAt() time.Time {
	if p.SyncedAt != nil && p.SyncedAt.After(p.UpdatedAt) {
		return *p.SyncedAt
	}
	return p.UpdatedAt
}
