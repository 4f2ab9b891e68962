package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

// TokenDenylist is the process-wide revocation set. Entries expire at the
// revoked credential's own expiry so membership stays bounded by the number
// of outstanding unexpired revocations.
type TokenDenylist interface {
	// Revoke marks a token id as revoked until expiresAt. Revoking the
	// same id twice is a no-op on the second call.
	Revoke(jti string, expiresAt time.Time)
	IsRevoked(jti string) bool
}

// PasswordHasher is the opaque hashing capability; the rest of the system
// never sees how digests are produced.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type AuthService interface {
	// Login exchanges credentials for a token pair. It fails with
	// domain.ErrInactiveAccount before issuance when the account has not
	// been activated, independent of password correctness ordering seen
	// by the caller.
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	// Refresh exchanges a refresh token for a new, non-fresh access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// Revoke adds the presented token's id to the denylist.
	Revoke(ctx context.Context, token string) error
	// Identify validates an access token (structure, expiry, revocation)
	// and returns the caller's identity.
	Identify(ctx context.Context, accessToken string) (*domain.Identity, error)
	// ActivationToken issues a single-purpose token used in the account
	// activation link.
	ActivationToken(userID uuid.UUID) (string, error)
	// ParseActivationToken validates an activation token and returns the
	// account it activates.
	ParseActivationToken(token string) (uuid.UUID, error)
}
