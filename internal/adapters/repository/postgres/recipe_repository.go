package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type RecipeRepository struct {
	db *sql.DB
}

func NewRecipeRepository(db *sql.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

const recipeColumns = `r.id, r.owner_id, r.name, r.description, COALESCE(r.ingredients, ''),
	r.directions, r.num_of_servings, r.cook_time, r.is_published,
	COALESCE(r.cover_image_url, ''), r.created_at, r.updated_at, u.username`

func (r *RecipeRepository) Save(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		INSERT INTO recipes (id, owner_id, name, description, ingredients, directions,
			num_of_servings, cook_time, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.OwnerID, recipe.Name, recipe.Description, recipe.Ingredients,
		recipe.Directions, recipe.NumOfServings, recipe.CookTime, recipe.IsPublished,
		recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipe, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		JOIN users u ON u.id = r.owner_id
		WHERE r.id = $1
	`, recipeColumns)

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	query := `
		UPDATE recipes
		SET name = $2, description = $3, ingredients = NULLIF($4, ''), directions = $5,
			num_of_servings = $6, cook_time = $7, is_published = $8,
			cover_image_url = NULLIF($9, ''), updated_at = $10
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		recipe.ID, recipe.Name, recipe.Description, recipe.Ingredients, recipe.Directions,
		recipe.NumOfServings, recipe.CookTime, recipe.IsPublished, recipe.CoverImageURL,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) List(ctx context.Context, filter ports.RecipeFilter) (*domain.Page, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM recipes r ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	// ORDER BY columns come from a whitelist, never from user input; the
	// id tie-break keeps pagination deterministic for equal sort keys.
	query := fmt.Sprintf(`
		SELECT %s
		FROM recipes r
		JOIN users u ON u.id = r.owner_id
		%s
		ORDER BY r.%s %s, r.id ASC
		LIMIT $%d OFFSET $%d
	`, recipeColumns, where, sortColumn(filter.Sort), sortDirection(filter.Order), len(args)+1, len(args)+2)

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*domain.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return domain.NewPage(recipes, filter.Page, filter.PerPage, total), nil
}

func buildWhere(filter ports.RecipeFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	keyword := "%" + filter.Q + "%"
	args = append(args, keyword)
	match := "(r.name ILIKE $1 OR r.description ILIKE $1"
	if filter.MatchIngredients {
		match += " OR r.ingredients ILIKE $1"
	}
	match += ")"
	clauses = append(clauses, match)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clauses = append(clauses, fmt.Sprintf("r.owner_id = $%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		clauses = append(clauses, fmt.Sprintf("r.is_published = $%d", len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func sortColumn(sort domain.SortField) string {
	switch sort {
	case domain.SortByCookTime:
		return "cook_time"
	case domain.SortByNumOfServings:
		return "num_of_servings"
	default:
		return "created_at"
	}
}

func sortDirection(order domain.Order) string {
	if order == domain.OrderAsc {
		return "ASC"
	}
	return "DESC"
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (*domain.Recipe, error) {
	var recipe domain.Recipe
	var username string
	err := row.Scan(
		&recipe.ID, &recipe.OwnerID, &recipe.Name, &recipe.Description, &recipe.Ingredients,
		&recipe.Directions, &recipe.NumOfServings, &recipe.CookTime, &recipe.IsPublished,
		&recipe.CoverImageURL, &recipe.CreatedAt, &recipe.UpdatedAt, &username,
	)
	if err != nil {
		return nil, err
	}
	recipe.Author = &domain.Author{ID: recipe.OwnerID, Username: username}
	return &recipe, nil
}
