package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

func TestCanView(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, CanView(nil, owner, true), "anonymous sees published")
	assert.False(t, CanView(nil, owner, false), "anonymous never sees unpublished")
	assert.True(t, CanView(&owner, owner, false), "owner sees own unpublished")
	assert.False(t, CanView(&other, owner, false), "non-owner never sees unpublished")
	assert.True(t, CanView(&other, owner, true), "non-owner sees published")
}

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.True(t, CanModify(&owner, owner))
	assert.False(t, CanModify(&other, owner), "publish state is irrelevant for writes")
	assert.False(t, CanModify(nil, owner))
}

func TestResolveVisibilityOwner(t *testing.T) {
	owner := uuid.New()

	assert.Equal(t, domain.VisibilityAll, ResolveVisibility(&owner, owner, domain.VisibilityAll))
	assert.Equal(t, domain.VisibilityPrivate, ResolveVisibility(&owner, owner, domain.VisibilityPrivate))
	assert.Equal(t, domain.VisibilityPublic, ResolveVisibility(&owner, owner, domain.VisibilityPublic))
}

func TestResolveVisibilityForcesPublicForOthers(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.Equal(t, domain.VisibilityPublic, ResolveVisibility(&other, owner, domain.VisibilityAll))
	assert.Equal(t, domain.VisibilityPublic, ResolveVisibility(&other, owner, domain.VisibilityPrivate))
	assert.Equal(t, domain.VisibilityPublic, ResolveVisibility(nil, owner, domain.VisibilityAll))
}
