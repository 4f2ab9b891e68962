package domain

import (
	"errors"
	"strings"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrUnauthorized = errors.New("access is not allowed")
	ErrForbidden    = errors.New("only the owner can modify this recipe")

	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrInactiveAccount    = errors.New("the account has not been activated yet")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	ErrRateLimited = errors.New("too many requests")

	ErrInternal = errors.New("internal server error")
)

// ValidationError carries per-field messages for malformed or out-of-range
// input. Fields maps the submitted field name to a human readable message.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
