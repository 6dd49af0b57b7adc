// Package apperr defines the application error taxonomy. Every error
// carries enough detail for logs while UserMessage hides internals
// from Discord users.
package apperr

import (
	"errors"
	"fmt"
)

// Code classifies an application error
type Code string

const (
	CodeNameExists    Code = "name_exists"
	CodeNotFound      Code = "not_found"
	CodeLimitExceeded Code = "limit_exceeded"
	CodePermission    Code = "permission"
	CodeDatabase      Code = "database"
	CodeDiscord       Code = "discord"
	CodeInvalidInput  Code = "invalid_input"
	CodeInternal      Code = "internal"
)

const genericUserMessage = "Something went wrong. Please try again."

// AppError is the application error type. Resource is set for
// NotFound/LimitExceeded, Message for the user-visible variants, and
// Err for wrapped causes.
type AppError struct {
	Code     Code
	Resource string
	Message  string
	Err      error
}

func (e *AppError) Error() string {
	switch e.Code {
	case CodeNameExists:
		return "a panel with this name already exists"
	case CodeNotFound:
		return fmt.Sprintf("%s not found", e.Resource)
	case CodeLimitExceeded:
		return fmt.Sprintf("%s limit exceeded", e.Resource)
	case CodeDatabase:
		return fmt.Sprintf("database error: %v", e.Err)
	case CodeDiscord:
		if e.Err != nil {
			return fmt.Sprintf("discord error: %v", e.Err)
		}
		return fmt.Sprintf("discord error: %s", e.Message)
	case CodeInternal:
		return fmt.Sprintf("internal error: %s", e.Message)
	default:
		return e.Message
	}
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text safe to show to a Discord user.
// Database, Discord and Internal errors are redacted.
func (e *AppError) UserMessage() string {
	switch e.Code {
	case CodeNameExists:
		return "A panel with this name already exists."
	case CodeNotFound:
		switch e.Resource {
		case "Panel":
			return "Panel not found."
		case "Role":
			return "Role not found."
		default:
			return "Resource not found."
		}
	case CodeLimitExceeded:
		return "A panel can hold at most 25 roles."
	case CodePermission, CodeInvalidInput:
		return e.Message
	default:
		return genericUserMessage
	}
}

// NameExists reports a duplicate panel name within a guild
func NameExists() *AppError {
	return &AppError{Code: CodeNameExists}
}

// NotFound reports a missing resource ("Panel", "Role", ...)
func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Resource: resource}
}

// LimitExceeded reports a per-resource cap being hit
func LimitExceeded(resource string) *AppError {
	return &AppError{Code: CodeLimitExceeded, Resource: resource}
}

// Permission reports a role-hierarchy or manageability violation
func Permission(message string) *AppError {
	return &AppError{Code: CodePermission, Message: message}
}

// Database wraps a repository failure
func Database(err error) *AppError {
	return &AppError{Code: CodeDatabase, Err: err}
}

// Discord wraps a Discord API failure
func Discord(err error) *AppError {
	return &AppError{Code: CodeDiscord, Err: err}
}

// Discordf reports a Discord API failure with a formatted message
func Discordf(format string, args ...any) *AppError {
	return &AppError{Code: CodeDiscord, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput reports malformed user input or component identifiers
func InvalidInput(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// Internal reports an unexpected internal condition
func Internal(message string) *AppError {
	return &AppError{Code: CodeInternal, Message: message}
}

// From returns err as an *AppError, wrapping unknown errors as Internal
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: CodeInternal, Message: err.Error(), Err: err}
}

// IsCode reports whether err is an AppError with the given code
func IsCode(err error, code Code) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
