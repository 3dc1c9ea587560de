package request

import (
	"errors"
	"regexp"

	cErr "medcard/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator DTO 自訂驗證訊息
type Validator interface {
	GetMessages() ValidatorMessages
}

// ValidatorMessages key 為 "<Field>.<tag>"，陣列索引以 .* 表示
type ValidatorMessages map[string]string

const defaultValidateMessage = "Parameter error"

var indexPattern = regexp.MustCompile(`\[\d+\]`)

// MessageKey 產生 ValidatorMessages 用的 key
func MessageKey(fe validator.FieldError) string {
	return indexPattern.ReplaceAllString(fe.Field(), ".*") + "." + fe.Tag()
}

// GetError 只回傳第一個欄位錯誤；有自訂訊息時優先
func GetError(request any, err error) *cErr.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return cErr.ValidateErr(defaultValidateMessage)
	}

	first := fieldErrs[0]
	if v, ok := request.(Validator); ok {
		if message, exist := v.GetMessages()[MessageKey(first)]; exist {
			return cErr.ValidateErr(message)
		}
	}
	return cErr.ValidateErr(first.Error())
}
