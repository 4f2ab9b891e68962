package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clintonMF/smilecook/internal/adapters/password"
	"github.com/clintonMF/smilecook/internal/adapters/repository/memory"
	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

func newUserFixture(t *testing.T) (*UserService, *memory.UserRepository) {
	t.Helper()
	users := memory.NewUserRepository()
	svc := NewUserService(users, password.NewBcryptHasherWithCost(4), fakeImageStore{})
	return svc, users
}

func TestRegister(t *testing.T) {
	svc, _ := newUserFixture(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "john",
		Email:    "john@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	assert.Equal(t, "john", user.Username)
	assert.False(t, user.IsActive, "accounts start inactive")
	assert.NotEqual(t, "supersecret", user.PasswordDigest)
	assert.True(t, password.NewBcryptHasherWithCost(4).Verify("supersecret", user.PasswordDigest))
}

func TestRegisterTakenUsernameAndEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterInput{Username: "john", Email: "john@x.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, ports.RegisterInput{Username: "john", Email: "other@x.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = svc.Register(ctx, ports.RegisterInput{Username: "jane", Email: "john@x.com", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Username: "  ",
		Email:    "not-an-email",
		Password: "short",
	})

	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "username")
	assert.Contains(t, v.Fields, "email")
	assert.Contains(t, v.Fields, "password")
}

func TestActivate(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{Username: "john", Email: "john@x.com", Password: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Activate(ctx, user.ID))

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	// Activating twice is a no-op, not an error.
	require.NoError(t, svc.Activate(ctx, user.ID))

	err = svc.Activate(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByUsernameUnknown(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSetAvatar(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, ports.RegisterInput{Username: "john", Email: "john@x.com", Password: "supersecret"})
	require.NoError(t, err)

	updated, err := svc.SetAvatar(ctx, user.ID, strings.NewReader("png-bytes"), ".png")
	require.NoError(t, err)
	assert.Equal(t, "/static/images/avatars/"+user.ID.String()+".png", updated.AvatarImageURL)

	stored, err := users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.AvatarImageURL, stored.AvatarImageURL)
}
