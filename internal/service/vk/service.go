package vk

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks Service

import (
	"context"
	"time"
)

// UserInfo users.get 回傳中本服務需要的欄位
type UserInfo struct {
	UserName string
	Photo    string
	Sex      *int
	Birthday *time.Time
}

// Service 外部身份資料來源
type Service interface {
	Fetch(ctx context.Context, userID int64) (*UserInfo, error)
}
