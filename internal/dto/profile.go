package dto

import (
	"time"

	"medcard/internal/core"
	"medcard/internal/pkg/request"
)

// 新增/編輯疾病（編輯時整筆覆寫）
type DiseaseDto struct {
	Title     string      `json:"title" binding:"required,max=256"`
	DateStart EpochMillis `json:"dateStart" swaggertype:"integer"`
	DateEnd   EpochMillis `json:"dateEnd" swaggertype:"integer"`
	Color     int         `json:"color" binding:"gte=0"`
}

func (DiseaseDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Title.required": "title is required",
		"Title.max":      "title is too long",
		"Color.gte":      "color must be a non-negative integer",
	}
}

// 新增/編輯過敏原（編輯時整筆覆寫）
type AllergenDto struct {
	Title string      `json:"title" binding:"required,max=256"`
	Date  EpochMillis `json:"date" swaggertype:"integer"`
	Color int         `json:"color" binding:"gte=0"`
}

func (AllergenDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Title.required": "title is required",
		"Title.max":      "title is too long",
		"Color.gte":      "color must be a non-negative integer",
	}
}

type ChangeBirthdayDto struct {
	Birthday EpochMillis `json:"birthday" swaggertype:"integer"`
}

type ChangeGenderDto struct {
	Sex *int `json:"sex" binding:"omitempty,gte=0,lte=2"`
}

type ChangeBloodTypeDto struct {
	BloodType *int `json:"bloodType" binding:"required,gte=0,lte=8"`
}

func (ChangeBloodTypeDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"BloodType.required": "bloodType is required",
		"BloodType.gte":      "bloodType must be between 0 and 8",
		"BloodType.lte":      "bloodType must be between 0 and 8",
	}
}

type ChangeVisibilityDto struct {
	AllowView *int `json:"allowView" binding:"required,gte=0"`
}

func (ChangeVisibilityDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"AllowView.required": "allowView is required",
		"AllowView.gte":      "allowView must be a non-negative integer",
	}
}

// GET /profile 查詢參數；兩者皆有時以 uuid 為準
type ProfileQueryDto struct {
	UUID   string `form:"uuid"`
	UUIDv4 string `form:"uuidv4"`
}

type DiseaseResponseDto struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	DateStart *time.Time `json:"dateStart"`
	DateEnd   *time.Time `json:"dateEnd"`
	Color     int        `json:"color"`
}

type AllergenResponseDto struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Date  *time.Time `json:"date"`
	Color int        `json:"color"`
}

type EventResponseDto struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Date  *time.Time `json:"date,omitempty"`
	Color int        `json:"color"`
}

type ViewLogResponseDto struct {
	ID        string         `json:"id"`
	ClientID  int64          `json:"clientId"`
	UserName  string         `json:"userName,omitempty"`
	Photo     string         `json:"photo,omitempty"`
	Type      core.ShareMode `json:"type"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ProfileViewDto 個人檔案 + events + history（分享檢視時 history 一律為空）
type ProfileViewDto struct {
	ID        string                `json:"id"`
	UserID    int64                 `json:"userId"`
	UserName  string                `json:"userName"`
	Photo     string                `json:"photo,omitempty"`
	AllowView core.VisibilityMode   `json:"allowView"`
	UUIDv4    string                `json:"uuidv4,omitempty"`
	BloodType int                   `json:"bloodType"`
	Diseases  []DiseaseResponseDto  `json:"diseases"`
	Allergens []AllergenResponseDto `json:"allergens"`
	Birthday  *time.Time            `json:"birthday,omitempty"`
	Sex       *int                  `json:"sex,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Events    []EventResponseDto    `json:"events"`
	History   []ViewLogResponseDto  `json:"history"`
}

// MutationResultDto edit/delete/單欄位修改結果；Updated 為 0 代表沒有符合的項目
type MutationResultDto struct {
	Updated int64 `json:"updated"`
}

type ShareTokenResponseDto struct {
	UUIDv4 string `json:"uuidv4"`
}
