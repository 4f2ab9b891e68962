package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 200
	MaxIngredientsLength = 500
	MaxDirectionsLength  = 1000

	MinServings = 1
	MaxServings = 50

	MinCookTime = 1
	MaxCookTime = 300
)

type Recipe struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"-"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Ingredients   string    `json:"ingredients,omitempty"`
	Directions    string    `json:"directions"`
	NumOfServings int       `json:"num_of_servings"`
	CookTime      int       `json:"cook_time"`
	IsPublished   bool      `json:"is_published"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Author        *Author   `json:"author,omitempty"`
}

// Author is the subset of the owner's profile embedded in recipe
// representations.
type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Validate checks the field constraints of a fully assembled recipe and
// reports every violated field at once.
func (r *Recipe) Validate() error {
	v := NewValidationError()

	if r.Name == "" {
		v.Add("name", "name is required")
	} else if len(r.Name) > MaxNameLength {
		v.Add("name", fmt.Sprintf("name cannot be longer than %d characters", MaxNameLength))
	}

	if r.Description == "" {
		v.Add("description", "description is required")
	} else if len(r.Description) > MaxDescriptionLength {
		v.Add("description", fmt.Sprintf("description cannot be longer than %d characters", MaxDescriptionLength))
	}

	if r.Directions == "" {
		v.Add("directions", "directions are required")
	} else if len(r.Directions) > MaxDirectionsLength {
		v.Add("directions", fmt.Sprintf("directions cannot be longer than %d characters", MaxDirectionsLength))
	}

	if len(r.Ingredients) > MaxIngredientsLength {
		v.Add("ingredients", fmt.Sprintf("ingredients cannot be longer than %d characters", MaxIngredientsLength))
	}

	if r.NumOfServings < MinServings {
		v.Add("num_of_servings", "number of servings must be greater than 0")
	} else if r.NumOfServings > MaxServings {
		v.Add("num_of_servings", fmt.Sprintf("number of servings cannot be greater than %d", MaxServings))
	}

	if r.CookTime < MinCookTime {
		v.Add("cook_time", "cook time must be greater than 0 minutes")
	} else if r.CookTime > MaxCookTime {
		v.Add("cook_time", fmt.Sprintf("cook time cannot be greater than %d minutes", MaxCookTime))
	}

	if len(v.Fields) > 0 {
		return v
	}
	return nil
}
