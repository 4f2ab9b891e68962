package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
)

// RecipeFilter is the fully resolved query the repository executes. The
// service layer is responsible for normalizing user input and resolving
// visibility before building one.
type RecipeFilter struct {
	Q       string
	OwnerID *uuid.UUID
	// Published filters on publish state; nil applies no publish filter.
	Published *bool
	// MatchIngredients extends the substring match to the ingredients
	// field (public listings do this, owner-scoped listings do not).
	MatchIngredients bool
	Sort             domain.SortField
	Order            domain.Order
	Page             int
	PerPage          int
}

type RecipeRepository interface {
	Save(ctx context.Context, recipe *domain.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error)
	Update(ctx context.Context, recipe *domain.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter RecipeFilter) (*domain.Page, error)
}

type CreateRecipeInput struct {
	Name          string
	Description   string
	Ingredients   string
	Directions    string
	NumOfServings int
	CookTime      int
}

// UpdateRecipeInput distinguishes absent fields from explicitly submitted
// ones: a nil pointer keeps the stored value, a non-nil pointer replaces
// it. This lets a caller deliberately clear ingredients by sending an
// empty string; required fields reject empty values in validation.
type UpdateRecipeInput struct {
	Name          *string
	Description   *string
	Ingredients   *string
	Directions    *string
	NumOfServings *int
	CookTime      *int
}

type ListRecipesInput struct {
	Q       string
	Page    int
	PerPage int
	Sort    string
	Order   string
}

type ListUserRecipesInput struct {
	ListRecipesInput
	Visibility string
}

type RecipeService interface {
	Create(ctx context.Context, callerID uuid.UUID, input CreateRecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, callerID *uuid.UUID, id uuid.UUID) (*domain.Recipe, error)
	Update(ctx context.Context, callerID uuid.UUID, id uuid.UUID, input UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error
	SetPublished(ctx context.Context, callerID uuid.UUID, id uuid.UUID, published bool) error
	SetCoverImage(ctx context.Context, callerID uuid.UUID, id uuid.UUID, image io.Reader, ext string) (*domain.Recipe, error)
	ListPublished(ctx context.Context, input ListRecipesInput) (*domain.Page, error)
	ListByUser(ctx context.Context, callerID *uuid.UUID, username string, input ListUserRecipesInput) (*domain.Page, error)
}
