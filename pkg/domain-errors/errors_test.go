package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "gone")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", New(CodeValidation, "bad"))
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
}

func TestHasCode(t *testing.T) {
	err := New(CodeInvalidState, "wrong step")
	assert.True(t, HasCode(err, CodeInvalidState))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("db down")
	err := Wrap(CodeInternal, "list archive", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "list archive")
	assert.Contains(t, err.Error(), "db down")
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:         http.StatusBadRequest,
		CodeBadRequest:         http.StatusBadRequest,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeInvalidState:       http.StatusConflict,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeInvariantViolation: http.StatusInternalServerError,
		CodeInternal:           http.StatusInternalServerError,
		Code("mystery"):        http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
