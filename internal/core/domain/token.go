package domain

import (
	"time"

	"github.com/google/uuid"
)

// TokenPair is the result of a successful login: a short-lived access token
// and a longer-lived refresh token. Both are generated before either is
// returned so a cancelled login never leaves a half-issued pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Identity describes the caller behind a validated access token. Fresh is
// true only for tokens issued directly from a password login; tokens
// obtained through a refresh exchange are not fresh.
type Identity struct {
	UserID    uuid.UUID
	JTI       string
	Fresh     bool
	ExpiresAt time.Time
}
