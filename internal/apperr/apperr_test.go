package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := New(CodeLevelNotFound, "no level %q", "everest")
	assert.Equal(t, `LEVEL_NOT_FOUND: no level "everest"`, err.Error())

	cause := errors.New("disk full")
	wrapped := Wrap(CodeInternal, cause, "save progress")
	assert.Equal(t, "INTERNAL_ERROR: save progress: disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", New(CodeLevelLocked, "locked"))

	assert.True(t, Is(err, CodeLevelLocked))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeInternal))
	assert.Equal(t, "locked", UserMessage(err))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeInvalidInput:    http.StatusBadRequest,
		CodeMissingUser:     http.StatusUnauthorized,
		CodeLevelNotFound:   http.StatusNotFound,
		CodeCardNotFound:    http.StatusNotFound,
		CodeLevelLocked:     http.StatusConflict,
		CodePremiumRequired: http.StatusPaymentRequired,
		CodeInternal:        http.StatusInternalServerError,
		Code("SOMETHING"):   http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}

func TestBodyRoundTrip(t *testing.T) {
	b := ToBody(New(CodePremiumRequired, "premium only"))
	assert.Equal(t, Body{Code: CodePremiumRequired, Message: "premium only"}, b)

	back := FromBody(b)
	assert.True(t, Is(back, CodePremiumRequired))

	assert.Equal(t, CodeInternal, ToBody(errors.New("boom")).Code)
	assert.Equal(t, CodeInternal, FromBody(Body{Message: "x"}).Code)
}
