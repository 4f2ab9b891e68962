// Package memory holds in-memory repository implementations used by unit
// tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type RecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]domain.Recipe
	users   *UserRepository
}

func NewRecipeRepository(users *UserRepository) *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[uuid.UUID]domain.Recipe),
		users:   users,
	}
}

func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *recipe
	stored.Author = nil
	r.recipes[recipe.ID] = stored
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	r.mu.RLock()
	stored, ok := r.recipes[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	recipe := stored
	r.attachAuthor(ctx, &recipe)
	return &recipe, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID]; !ok {
		return domain.ErrRecipeNotFound
	}
	stored := *recipe
	stored.Author = nil
	r.recipes[recipe.ID] = stored
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[id]; !ok {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *RecipeRepository) List(ctx context.Context, filter ports.RecipeFilter) (*domain.Page, error) {
	r.mu.RLock()
	var matched []domain.Recipe
	for _, recipe := range r.recipes {
		if matches(recipe, filter) {
			matched = append(matched, recipe)
		}
	}
	r.mu.RUnlock()

	sortRecipes(matched, filter.Sort, filter.Order)

	total := len(matched)
	offset := (filter.Page - 1) * filter.PerPage
	if offset > total {
		offset = total
	}
	end := offset + filter.PerPage
	if end > total {
		end = total
	}

	items := make([]*domain.Recipe, 0, end-offset)
	for _, recipe := range matched[offset:end] {
		recipe := recipe
		r.attachAuthor(ctx, &recipe)
		items = append(items, &recipe)
	}
	return domain.NewPage(items, filter.Page, filter.PerPage, total), nil
}

func matches(recipe domain.Recipe, filter ports.RecipeFilter) bool {
	if filter.OwnerID != nil && recipe.OwnerID != *filter.OwnerID {
		return false
	}
	if filter.Published != nil && recipe.IsPublished != *filter.Published {
		return false
	}
	if filter.Q == "" {
		return true
	}
	q := strings.ToLower(filter.Q)
	if strings.Contains(strings.ToLower(recipe.Name), q) ||
		strings.Contains(strings.ToLower(recipe.Description), q) {
		return true
	}
	return filter.MatchIngredients && strings.Contains(strings.ToLower(recipe.Ingredients), q)
}

// sortRecipes orders by the requested field with an id tie-break, matching
// the ORDER BY the postgres repository produces.
func sortRecipes(recipes []domain.Recipe, field domain.SortField, order domain.Order) {
	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := recipes[i], recipes[j]
		var less, equal bool
		switch field {
		case domain.SortByCookTime:
			less, equal = a.CookTime < b.CookTime, a.CookTime == b.CookTime
		case domain.SortByNumOfServings:
			less, equal = a.NumOfServings < b.NumOfServings, a.NumOfServings == b.NumOfServings
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			return a.ID.String() < b.ID.String()
		}
		if order == domain.OrderDesc {
			return !less
		}
		return less
	})
}

func (r *RecipeRepository) attachAuthor(ctx context.Context, recipe *domain.Recipe) {
	if r.users == nil {
		return
	}
	if user, _ := r.users.GetByID(ctx, recipe.OwnerID); user != nil {
		recipe.Author = &domain.Author{ID: user.ID, Username: user.Username}
	}
}
