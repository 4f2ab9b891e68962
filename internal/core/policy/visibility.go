// Package policy holds the access decisions for recipes. Every ownership
// and publish-state check goes through here so the rules live in exactly
// one place. All functions are pure; callers translate a false result into
// the error taxonomy themselves.
package policy

import (
	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

// CanView reports whether the caller may read a single recipe. Owners see
// their own recipes regardless of publish state; everyone else, including
// anonymous callers, only sees published ones.
func CanView(callerID *uuid.UUID, ownerID uuid.UUID, published bool) bool {
	if published {
		return true
	}
	return callerID != nil && *callerID == ownerID
}

// CanModify reports whether the caller may mutate a recipe. Only the owner
// can, regardless of publish state.
func CanModify(callerID *uuid.UUID, ownerID uuid.UUID) bool {
	return callerID != nil && *callerID == ownerID
}

// ResolveVisibility maps the requested listing visibility to the one that
// is actually applied. Only the owner of the listing may see private or
// unfiltered scopes; everyone else is forced down to public.
func ResolveVisibility(callerID *uuid.UUID, ownerID uuid.UUID, requested domain.Visibility) domain.Visibility {
	if callerID != nil && *callerID == ownerID {
		return requested
	}
	return domain.VisibilityPublic
}
