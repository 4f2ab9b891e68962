package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

const (
	tokenTypeAccess     = "access"
	tokenTypeRefresh    = "refresh"
	tokenTypeActivation = "activation"
)

// claims extends the registered JWT claims with the token type and the
// freshness marker. Subject carries the user id and ID carries the jti
// used as the revocation key.
type claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"typ"`
	Fresh     bool   `json:"fresh,omitempty"`
}

type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	denylist ports.TokenDenylist

	secret        []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	activationTTL time.Duration
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, denylist ports.TokenDenylist, secret []byte, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		hasher:        hasher,
		denylist:      denylist,
		secret:        secret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		activationTTL: 24 * time.Hour,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordDigest) {
		return nil, domain.ErrInvalidCredentials
	}

	// Activation is checked before any credential is issued.
	if !user.IsActive {
		return nil, domain.ErrInactiveAccount
	}

	// Both tokens are generated before either is returned so an abandoned
	// request never observes a half-issued pair.
	accessToken, err := s.generate(user.ID, tokenTypeAccess, true, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.generate(user.ID, tokenTypeRefresh, false, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	c, err := s.parse(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return "", domain.ErrInvalidToken
	}

	// A refreshed access token is never fresh.
	accessToken, err := s.generate(userID, tokenTypeAccess, false, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, nil
}

func (s *AuthService) Revoke(ctx context.Context, token string) error {
	c, err := s.parseAnyType(token)
	if err != nil {
		return err
	}
	s.denylist.Revoke(c.ID, c.ExpiresAt.Time)
	return nil
}

func (s *AuthService) Identify(ctx context.Context, accessToken string) (*domain.Identity, error) {
	c, err := s.parse(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Identity{
		UserID:    userID,
		JTI:       c.ID,
		Fresh:     c.Fresh,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

func (s *AuthService) ActivationToken(userID uuid.UUID) (string, error) {
	return s.generate(userID, tokenTypeActivation, false, s.activationTTL)
}

func (s *AuthService) ParseActivationToken(token string) (uuid.UUID, error) {
	c, err := s.parse(token, tokenTypeActivation)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}

func (s *AuthService) generate(userID uuid.UUID, tokenType string, fresh bool, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: tokenType,
		Fresh:     fresh,
	})
	return token.SignedString(s.secret)
}

// parse validates structure, signature and expiry first, then checks the
// jti against the denylist: a revoked token is invalid even when otherwise
// well-formed and unexpired.
func (s *AuthService) parse(token, wantType string) (*claims, error) {
	c, err := s.parseAnyType(token)
	if err != nil {
		return nil, err
	}
	if c.TokenType != wantType {
		return nil, domain.ErrInvalidToken
	}
	if s.denylist.IsRevoked(c.ID) {
		return nil, domain.ErrTokenRevoked
	}
	return c, nil
}

func (s *AuthService) parseAnyType(token string) (*claims, error) {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(token, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if c.ID == "" || c.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}
	return c, nil
}

var _ ports.AuthService = (*AuthService)(nil)
