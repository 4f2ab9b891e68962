package domain

type SortField string

const (
	SortByCreatedAt     SortField = "created_at"
	SortByCookTime      SortField = "cook_time"
	SortByNumOfServings SortField = "num_of_servings"
)

type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
	VisibilityAll     Visibility = "all"
)

const DefaultPerPage = 10

// ListQuery holds the listing parameters after normalization. Unrecognized
// sort, order and visibility values coerce to the documented defaults
// instead of being rejected.
type ListQuery struct {
	Q       string
	Page    int
	PerPage int
	Sort    SortField
	Order   Order
}

// Normalize coerces out-of-range or unrecognized values to their defaults
// and clamps per_page to maxPerPage.
func (q ListQuery) Normalize(maxPerPage int) ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	switch q.Sort {
	case SortByCreatedAt, SortByCookTime, SortByNumOfServings:
	default:
		q.Sort = SortByCreatedAt
	}
	switch q.Order {
	case OrderAsc, OrderDesc:
	default:
		q.Order = OrderDesc
	}
	return q
}

// ParseVisibility coerces an arbitrary requested value to a known
// visibility, defaulting to public.
func ParseVisibility(s string) Visibility {
	switch Visibility(s) {
	case VisibilityPrivate:
		return VisibilityPrivate
	case VisibilityAll:
		return VisibilityAll
	default:
		return VisibilityPublic
	}
}
