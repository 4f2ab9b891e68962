package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecipe() *Recipe {
	return &Recipe{
		Name:          "Cheese Pizza",
		Description:   "A classic pizza",
		Directions:    "Bake it",
		NumOfServings: 2,
		CookTime:      30,
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validRecipe().Validate())
}

func TestValidateServingsBounds(t *testing.T) {
	cases := []struct {
		servings int
		valid    bool
	}{
		{0, false},
		{1, true},
		{50, true},
		{51, false},
	}

	for _, tc := range cases {
		r := validRecipe()
		r.NumOfServings = tc.servings
		err := r.Validate()
		if tc.valid {
			assert.NoError(t, err, "servings=%d", tc.servings)
		} else {
			var v *ValidationError
			require.ErrorAs(t, err, &v, "servings=%d", tc.servings)
			assert.Contains(t, v.Fields, "num_of_servings")
		}
	}
}

func TestValidateCookTimeBounds(t *testing.T) {
	cases := []struct {
		cookTime int
		valid    bool
	}{
		{0, false},
		{1, true},
		{300, true},
		{301, false},
	}

	for _, tc := range cases {
		r := validRecipe()
		r.CookTime = tc.cookTime
		err := r.Validate()
		if tc.valid {
			assert.NoError(t, err, "cook_time=%d", tc.cookTime)
		} else {
			var v *ValidationError
			require.ErrorAs(t, err, &v, "cook_time=%d", tc.cookTime)
			assert.Contains(t, v.Fields, "cook_time")
		}
	}
}

func TestValidateRequiredFields(t *testing.T) {
	r := &Recipe{NumOfServings: 1, CookTime: 1}
	err := r.Validate()

	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "name")
	assert.Contains(t, v.Fields, "description")
	assert.Contains(t, v.Fields, "directions")
}

func TestValidateLengthBounds(t *testing.T) {
	r := validRecipe()
	r.Name = strings.Repeat("a", MaxNameLength+1)
	r.Description = strings.Repeat("b", MaxDescriptionLength+1)
	r.Ingredients = strings.Repeat("c", MaxIngredientsLength+1)
	r.Directions = strings.Repeat("d", MaxDirectionsLength+1)
	err := r.Validate()

	var v *ValidationError
	require.ErrorAs(t, err, &v)
	assert.Len(t, v.Fields, 4)
}

func TestNewPageMetadata(t *testing.T) {
	page := NewPage(nil, 3, 10, 21)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 21, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
