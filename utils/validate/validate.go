package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidationErrorResponse 列出每個欄位的 json 名稱、型別與 binding 規則
func ValidationErrorResponse(obj any, err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Validation error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString("Validation error:\n")
	for _, fe := range fieldErrs {
		name, typeName, rules := fe.Field(), "", []string(nil)
		if field, ok := lookupField(reflect.TypeOf(obj), fe.StructNamespace()); ok {
			name, typeName, rules = jsonName(field), field.Type.String(), bindingRules(field)
		}
		fmt.Fprintf(&b, " - Field %q (type: %s) failed the '%s' validation (rules: %v)\n", name, typeName, fe.Tag(), rules)
	}
	return b.String()
}

// lookupField namespace 形如 "Dto.Items[0].Title"，第一段為型別名稱
func lookupField(t reflect.Type, namespace string) (reflect.StructField, bool) {
	segments := strings.Split(namespace, ".")
	if t == nil || len(segments) < 2 {
		return reflect.StructField{}, false
	}
	var field reflect.StructField
	for _, segment := range segments[1:] {
		if i := strings.IndexByte(segment, '['); i >= 0 {
			segment = segment[:i]
		}
		t = elemType(t)
		if t.Kind() != reflect.Struct {
			return reflect.StructField{}, false
		}
		next, ok := t.FieldByName(segment)
		if !ok {
			return reflect.StructField{}, false
		}
		field, t = next, next.Type
	}
	return field, true
}

func elemType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		default:
			return t
		}
	}
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func bindingRules(field reflect.StructField) []string {
	if tag := field.Tag.Get("binding"); tag != "" {
		return strings.Split(tag, ",")
	}
	return nil
}

func ParseObjectID(c *gin.Context, key string) (id primitive.ObjectID, cause error, responseErr error) {
	id, err := primitive.ObjectIDFromHex(c.Param(key))
	if err != nil {
		return primitive.NilObjectID, err, cErr.ValidatePathParamsErr("invalid " + key)
	}
	return id, nil, nil
}

// BindAndValidate 有自訂訊息的 DTO 走 request.GetError，其餘輸出欄位規則
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil, nil
	}
	if _, ok := req.(request.Validator); ok {
		return err, request.GetError(req, err)
	}
	return err, cErr.ValidateErr(ValidationErrorResponse(req, err))
}

func BindQuery(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindQuery(req); err != nil {
		return err, cErr.BadRequestParams(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

// PayloadToMap 依 json tag 攤平成 map
func PayloadToMap(payload any) (map[string]any, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}
