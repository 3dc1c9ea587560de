package model

// ProfileViewLog 分享瀏覽事件（與 Mongo histories 同步送出一份到 log pipeline）
type ProfileViewLog struct {
	RequestID    string `bson:"request_id,omitempty" json:"request_id,omitempty"`
	ViewerUserID int64  `bson:"viewer_user_id" json:"viewer_user_id"`
	ViewedUserID int64  `bson:"viewed_user_id" json:"viewed_user_id"`
	ShareMode    int    `bson:"share_mode" json:"share_mode"`
	Version      string `bson:"version,omitempty" json:"version,omitempty"`
	LoggedAt     string `bson:"logged_at" json:"logged_at"`
}
