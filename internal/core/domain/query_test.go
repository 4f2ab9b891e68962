package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	q := ListQuery{}.Normalize(100)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPerPage, q.PerPage)
	assert.Equal(t, SortByCreatedAt, q.Sort)
	assert.Equal(t, OrderDesc, q.Order)
}

func TestNormalizeCoercesUnknownValues(t *testing.T) {
	q := ListQuery{
		Page:    -3,
		PerPage: 0,
		Sort:    SortField("password_digest"),
		Order:   Order("sideways"),
	}.Normalize(100)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPerPage, q.PerPage)
	assert.Equal(t, SortByCreatedAt, q.Sort)
	assert.Equal(t, OrderDesc, q.Order)
}

func TestNormalizeClampsPerPage(t *testing.T) {
	q := ListQuery{PerPage: 5000}.Normalize(100)
	assert.Equal(t, 100, q.PerPage)
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	q := ListQuery{
		Q:       "pasta",
		Page:    4,
		PerPage: 25,
		Sort:    SortByCookTime,
		Order:   OrderAsc,
	}.Normalize(100)

	assert.Equal(t, "pasta", q.Q)
	assert.Equal(t, 4, q.Page)
	assert.Equal(t, 25, q.PerPage)
	assert.Equal(t, SortByCookTime, q.Sort)
	assert.Equal(t, OrderAsc, q.Order)
}

func TestParseVisibility(t *testing.T) {
	assert.Equal(t, VisibilityPublic, ParseVisibility("public"))
	assert.Equal(t, VisibilityPrivate, ParseVisibility("private"))
	assert.Equal(t, VisibilityAll, ParseVisibility("all"))
	assert.Equal(t, VisibilityPublic, ParseVisibility(""))
	assert.Equal(t, VisibilityPublic, ParseVisibility("everything"))
}
