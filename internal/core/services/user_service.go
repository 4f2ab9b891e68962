package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	images ports.ImageStore
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, images ports.ImageStore) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		images: images,
	}
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	existing, err = s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:             uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordDigest: digest,
		IsActive:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	// Activating an already active account is a no-op.
	if user.IsActive {
		return nil
	}
	return s.repo.Activate(ctx, id)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) SetAvatar(ctx context.Context, id uuid.UUID, image io.Reader, ext string) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("avatars/%s%s", id, ext)
	url, err := s.images.Save(ctx, name, image)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	if err := s.repo.SetAvatarURL(ctx, id, url); err != nil {
		return nil, fmt.Errorf("failed to update avatar: %w", err)
	}
	user.AvatarImageURL = url
	return user, nil
}

func validateRegistration(input ports.RegisterInput) error {
	v := domain.NewValidationError()
	if strings.TrimSpace(input.Username) == "" {
		v.Add("username", "username is required")
	}
	if !strings.Contains(input.Email, "@") {
		v.Add("email", "a valid email is required")
	}
	if len(input.Password) < 6 {
		v.Add("password", "password must be at least 6 characters")
	}
	if len(v.Fields) > 0 {
		return v
	}
	return nil
}

var _ ports.UserService = (*UserService)(nil)
