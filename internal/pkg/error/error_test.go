package error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	t.Run("keeps application error", func(t *testing.T) {
		appErr := FloodControl()
		assert.Same(t, appErr, From(appErr))
	})

	t.Run("unwraps wrapped application error", func(t *testing.T) {
		appErr := ProfileNotFound("Client not found")
		got := From(fmt.Errorf("resolve: %w", appErr))
		assert.Equal(t, http.StatusNotFound, got.HttpCode())
		assert.Equal(t, PROFILE_NOT_FOUND, got.ErrorCode())
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := From(fmt.Errorf("boom"))
		assert.Equal(t, http.StatusInternalServerError, got.HttpCode())
		assert.Equal(t, "boom", got.ErrorDesc())
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("server selection timeout")
	base := DatabaseError("database FindByUserID error")
	wrapped := base.Wrap(cause)

	assert.Nil(t, base.Unwrap(), "Wrap must not mutate the receiver")
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, DATABASE_ERROR, wrapped.ErrorCode())
	assert.Equal(t, "database FindByUserID error", wrapped.ErrorDesc())
	assert.Same(t, wrapped, From(fmt.Errorf("profile: %w", wrapped)))

	plain := errors.New("boom")
	assert.ErrorIs(t, From(plain), plain)
}

func TestStableCodes(t *testing.T) {
	wrong := WrongShare()
	assert.Equal(t, http.StatusUnauthorized, wrong.HttpCode())
	assert.Equal(t, "Wrong uuid or wrong type", wrong.ErrorDesc())
	assert.Equal(t, WRONG_SHARE, wrong.ErrorCode())
	assert.Equal(t, "wrong-share", wrong.Error())

	flood := FloodControl()
	assert.Equal(t, http.StatusTooManyRequests, flood.HttpCode())
	assert.Equal(t, "Too Many Requests", flood.ErrorDesc())
	assert.Equal(t, FLOOD_CONTROL, flood.ErrorCode())
}

func TestMapHttpStatusToError(t *testing.T) {
	cases := map[int]int{
		http.StatusBadRequest:          BAD_REQUEST_BODY,
		http.StatusUnauthorized:        UNAUTHORIZED,
		http.StatusNotFound:            NOT_FOUND,
		http.StatusTooManyRequests:     RATE_LIMIT_EXCEEDED,
		http.StatusTeapot:              INTERNAL_ERROR,
		http.StatusInternalServerError: INTERNAL_ERROR,
	}
	for status, code := range cases {
		assert.Equal(t, code, MapHttpStatusToError(status, "x").ErrorCode(), "status %d", status)
	}
}
