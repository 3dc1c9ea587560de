package validate

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	cErr "medcard/internal/pkg/error"
	"medcard/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type plainBody struct {
	Name string `json:"name" binding:"required,max=4"`
}

type messageBody struct {
	Name string `json:"name" binding:"required"`
}

func (messageBody) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{"Name.required": "name is required"}
}

func newContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		var body plainBody
		cause, respErr := BindAndValidate(newContext(http.MethodPost, "/", `{"name":"ok"}`), &body)
		assert.NoError(t, cause)
		assert.NoError(t, respErr)
		assert.Equal(t, "ok", body.Name)
	})

	t.Run("rule listing without custom messages", func(t *testing.T) {
		var body plainBody
		cause, respErr := BindAndValidate(newContext(http.MethodPost, "/", `{"name":"too long"}`), &body)
		require.Error(t, cause)
		var appErr *cErr.Error
		require.ErrorAs(t, respErr, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
		assert.Contains(t, appErr.ErrorDesc(), `Field "name"`)
		assert.Contains(t, appErr.ErrorDesc(), "'max'")
	})

	t.Run("custom message from dto", func(t *testing.T) {
		var body messageBody
		_, respErr := BindAndValidate(newContext(http.MethodPost, "/", `{}`), &body)
		var appErr *cErr.Error
		require.ErrorAs(t, respErr, &appErr)
		assert.Equal(t, "name is required", appErr.ErrorDesc())
	})

	t.Run("malformed json", func(t *testing.T) {
		var body plainBody
		_, respErr := BindAndValidate(newContext(http.MethodPost, "/", `{`), &body)
		var appErr *cErr.Error
		require.ErrorAs(t, respErr, &appErr)
		assert.Contains(t, appErr.ErrorDesc(), "Validation error")
	})
}

type nestedBody struct {
	Items []struct {
		Title string `json:"title" binding:"required"`
	} `json:"items" binding:"required,dive"`
}

func TestBindAndValidate_NestedField(t *testing.T) {
	var body nestedBody
	_, respErr := BindAndValidate(newContext(http.MethodPost, "/", `{"items":[{"title":""}]}`), &body)
	var appErr *cErr.Error
	require.ErrorAs(t, respErr, &appErr)
	assert.Contains(t, appErr.ErrorDesc(), `Field "title" (type: string) failed the 'required' validation (rules: [required])`)
}

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	c := newContext(http.MethodGet, "/", "")
	c.Params = gin.Params{{Key: "diseaseId", Value: id.Hex()}}

	got, cause, respErr := ParseObjectID(c, "diseaseId")
	assert.NoError(t, cause)
	assert.NoError(t, respErr)
	assert.Equal(t, id, got)

	c.Params = gin.Params{{Key: "diseaseId", Value: "nope"}}
	_, cause, respErr = ParseObjectID(c, "diseaseId")
	assert.Error(t, cause)
	var appErr *cErr.Error
	require.ErrorAs(t, respErr, &appErr)
	assert.Equal(t, cErr.BAD_REQUEST_PARAMS, appErr.ErrorCode())
}

func TestPayloadToMap(t *testing.T) {
	m, err := PayloadToMap(struct {
		A string `json:"a"`
		B int    `json:"b,omitempty"`
	}{A: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x"}, m)
}
