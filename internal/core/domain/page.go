package domain

// Page is one page of a recipe listing plus the metadata callers need to
// render navigation. Requesting a page past the last one yields an empty
// Items slice with the same metadata, not an error.
type Page struct {
	Items      []*Recipe `json:"data"`
	Page       int       `json:"page"`
	PerPage    int       `json:"per_page"`
	TotalItems int       `json:"total_items"`
	TotalPages int       `json:"total_pages"`
}

// NewPage computes the pagination metadata for a result window.
func NewPage(items []*Recipe, page, perPage, totalItems int) *Page {
	totalPages := totalItems / perPage
	if totalItems%perPage != 0 {
		totalPages++
	}
	if items == nil {
		items = []*Recipe{}
	}
	return &Page{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
