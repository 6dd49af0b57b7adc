package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "a panel with this name already exists", NameExists().Error())
	assert.Equal(t, "Panel not found", NotFound("Panel").Error())
	assert.Equal(t, "Role limit exceeded", LimitExceeded("Role").Error())
	assert.Equal(t, "You need admin rights", Permission("You need admin rights").Error())
	assert.Equal(t, "Invalid name", InvalidInput("Invalid name").Error())
	assert.Equal(t, "internal error: something broke", Internal("something broke").Error())
	assert.Equal(t, "discord error: API error", Discordf("API error").Error())
}

func TestAppError_UserMessage_Verbatim(t *testing.T) {
	assert.Equal(t, "A panel with this name already exists.", NameExists().UserMessage())
	assert.Equal(t, "Panel not found.", NotFound("Panel").UserMessage())
	assert.Equal(t, "Role not found.", NotFound("Role").UserMessage())
	assert.Equal(t, "Resource not found.", NotFound("Something").UserMessage())
	assert.Equal(t, "A panel can hold at most 25 roles.", LimitExceeded("Role").UserMessage())
	assert.Equal(t, "Custom permission error", Permission("Custom permission error").UserMessage())
	assert.Equal(t, "Name too long", InvalidInput("Name too long").UserMessage())
}

func TestAppError_UserMessage_RedactsInternals(t *testing.T) {
	generic := "Something went wrong. Please try again."
	assert.Equal(t, generic, Database(errors.New("connection refused")).UserMessage())
	assert.Equal(t, generic, Discord(errors.New("HTTP 502")).UserMessage())
	assert.Equal(t, generic, Internal("stack trace...").UserMessage())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("row not found")
	err := Database(cause)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, errors.Unwrap(NameExists()))
}

func TestFrom(t *testing.T) {
	appErr := NotFound("Panel")
	assert.Same(t, appErr, From(appErr))
	assert.Same(t, appErr, From(fmt.Errorf("handler: %w", appErr)))

	wrapped := From(errors.New("plain failure"))
	assert.Equal(t, CodeInternal, wrapped.Code)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NotFound("Panel"), CodeNotFound))
	assert.True(t, IsCode(fmt.Errorf("wrap: %w", NameExists()), CodeNameExists))
	assert.False(t, IsCode(errors.New("other"), CodeNotFound))
}
