package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/policy"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

// Cache route prefixes. Any recipe mutation invalidates both listing
// routes; invalidation is coarse by design, trading recomputation for
// not having to track which entries a write affects.
const (
	routePublicListing = "recipes"
	routeUserListing   = "user_recipes"
)

type RecipeService struct {
	repo       ports.RecipeRepository
	users      ports.UserRepository
	cache      ports.ResultCache
	images     ports.ImageStore
	maxPerPage int
}

func NewRecipeService(repo ports.RecipeRepository, users ports.UserRepository, cache ports.ResultCache, images ports.ImageStore, maxPerPage int) *RecipeService {
	return &RecipeService{
		repo:       repo,
		users:      users,
		cache:      cache,
		images:     images,
		maxPerPage: maxPerPage,
	}
}

func (s *RecipeService) Create(ctx context.Context, callerID uuid.UUID, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	now := time.Now()
	recipe := &domain.Recipe{
		ID:            uuid.New(),
		OwnerID:       callerID,
		Name:          input.Name,
		Description:   input.Description,
		Ingredients:   input.Ingredients,
		Directions:    input.Directions,
		NumOfServings: input.NumOfServings,
		CookTime:      input.CookTime,
		IsPublished:   false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}
	if owner, err := s.users.GetByID(ctx, callerID); err == nil && owner != nil {
		recipe.Author = &domain.Author{ID: owner.ID, Username: owner.Username}
	}
	s.invalidateListings()
	return recipe, nil
}

func (s *RecipeService) Get(ctx context.Context, callerID *uuid.UUID, id uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanView(callerID, recipe.OwnerID, recipe.IsPublished) {
		return nil, domain.ErrUnauthorized
	}
	return recipe, nil
}

func (s *RecipeService) Update(ctx context.Context, callerID uuid.UUID, id uuid.UUID, input ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	// Only fields present in the payload are touched; an explicit empty
	// value clears the field where the model allows it.
	if input.Name != nil {
		recipe.Name = *input.Name
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Ingredients != nil {
		recipe.Ingredients = *input.Ingredients
	}
	if input.Directions != nil {
		recipe.Directions = *input.Directions
	}
	if input.NumOfServings != nil {
		recipe.NumOfServings = *input.NumOfServings
	}
	if input.CookTime != nil {
		recipe.CookTime = *input.CookTime
	}
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	recipe.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidateListings()
	return recipe, nil
}

func (s *RecipeService) Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error {
	if _, err := s.getOwned(ctx, callerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	s.invalidateListings()
	return nil
}

// SetPublished toggles the publish flag without touching any other field.
func (s *RecipeService) SetPublished(ctx context.Context, callerID uuid.UUID, id uuid.UUID, published bool) error {
	recipe, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	recipe.IsPublished = published
	recipe.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, recipe); err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidateListings()
	return nil
}

func (s *RecipeService) SetCoverImage(ctx context.Context, callerID uuid.UUID, id uuid.UUID, image io.Reader, ext string) (*domain.Recipe, error) {
	recipe, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("covers/%s%s", id, ext)
	url, err := s.images.Save(ctx, name, image)
	if err != nil {
		return nil, fmt.Errorf("failed to store cover image: %w", err)
	}

	recipe.CoverImageURL = url
	recipe.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	s.invalidateListings()
	return recipe, nil
}

func (s *RecipeService) ListPublished(ctx context.Context, input ports.ListRecipesInput) (*domain.Page, error) {
	q := s.normalize(input)
	published := true

	filter := ports.RecipeFilter{
		Q:                q.Q,
		Published:        &published,
		MatchIngredients: true,
		Sort:             q.Sort,
		Order:            q.Order,
		Page:             q.Page,
		PerPage:          q.PerPage,
	}

	return s.cache.GetOrCompute(ctx, routePublicListing, listingParams(q, nil, ""), func() (*domain.Page, error) {
		return s.repo.List(ctx, filter)
	})
}

func (s *RecipeService) ListByUser(ctx context.Context, callerID *uuid.UUID, username string, input ports.ListUserRecipesInput) (*domain.Page, error) {
	owner, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	q := s.normalize(input.ListRecipesInput)
	requested := domain.ParseVisibility(input.Visibility)
	effective := policy.ResolveVisibility(callerID, owner.ID, requested)

	filter := ports.RecipeFilter{
		Q:       q.Q,
		OwnerID: &owner.ID,
		Sort:    q.Sort,
		Order:   q.Order,
		Page:    q.Page,
		PerPage: q.PerPage,
	}
	switch effective {
	case domain.VisibilityPublic:
		published := true
		filter.Published = &published
	case domain.VisibilityPrivate:
		published := false
		filter.Published = &published
	case domain.VisibilityAll:
		// no publish filter
	}

	return s.cache.GetOrCompute(ctx, routeUserListing, listingParams(q, &owner.ID, effective), func() (*domain.Page, error) {
		return s.repo.List(ctx, filter)
	})
}

func (s *RecipeService) getOwned(ctx context.Context, callerID uuid.UUID, id uuid.UUID) (*domain.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(&callerID, recipe.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return recipe, nil
}

func (s *RecipeService) normalize(input ports.ListRecipesInput) domain.ListQuery {
	return domain.ListQuery{
		Q:       input.Q,
		Page:    input.Page,
		PerPage: input.PerPage,
		Sort:    domain.SortField(input.Sort),
		Order:   domain.Order(input.Order),
	}.Normalize(s.maxPerPage)
}

// invalidateListings drops every cached listing page. It runs synchronously
// on the write path, before the mutation's response returns.
func (s *RecipeService) invalidateListings() {
	s.cache.Invalidate(routePublicListing)
	s.cache.Invalidate(routeUserListing)
}

func listingParams(q domain.ListQuery, ownerID *uuid.UUID, visibility domain.Visibility) map[string]string {
	params := map[string]string{
		"q":        q.Q,
		"page":     strconv.Itoa(q.Page),
		"per_page": strconv.Itoa(q.PerPage),
		"sort":     string(q.Sort),
		"order":    string(q.Order),
	}
	if ownerID != nil {
		params["owner"] = ownerID.String()
	}
	if visibility != "" {
		params["visibility"] = string(visibility)
	}
	return params
}

var _ ports.RecipeService = (*RecipeService)(nil)
