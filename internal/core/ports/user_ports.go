package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
	SetAvatarURL(ctx context.Context, id uuid.UUID, url string) error
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SetAvatar(ctx context.Context, id uuid.UUID, image io.Reader, ext string) (*domain.User, error)
}
