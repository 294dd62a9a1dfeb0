package pagination

import "maps"

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Query represents an untrusted offset pagination request.
// Nil Page or Limit means the value was not sent.
type Query struct {
	Page      *int      `json:"page,omitempty" query:"page" form:"page"`
	Limit     *int      `json:"limit,omitempty" query:"limit" form:"limit"`
	Search    string    `json:"search,omitempty" query:"search" form:"search"`
	SortBy    string    `json:"sortBy,omitempty" query:"sortBy" form:"sortBy"`
	SortOrder SortOrder `json:"sortOrder,omitempty" query:"sortOrder" form:"sortOrder"`
}

// Sort is a single ordering key and its direction
type Sort struct {
	Key   string    `json:"key"`
	Value SortOrder `json:"value"`
}

// WhereClause carries everything a storage layer needs to fetch one page
type WhereClause struct {
	Where   map[string]any       `json:"where"`
	OrderBy map[string]SortOrder `json:"orderBy"`
	Page    int                  `json:"page"`
	Skip    int                  `json:"skip"`
	Limit   int                  `json:"limit"`
}

// GenerateWhereClause normalizes q into skip/limit/orderBy parameters.
// Out-of-range values are clamped, never rejected:
//   - page falls back to the default page and is at least 1
//   - limit falls back to the default limit and is clamped into [MinLimit, MaxLimit]
//   - orderBy uses q.SortBy/q.SortOrder only when both are set, defaultSort otherwise
//
// Where is a copy of defaultWhere, extended by WithSearch when q.Search is set.
func GenerateWhereClause(q Query, defaultSort Sort, defaultWhere map[string]any, opts ...Option) WhereClause {
	o := newOptions(opts)

	page := o.cfg.DefaultPage
	if q.Page != nil {
		page = *q.Page
	}
	page = max(page, 1)

	limit := o.cfg.DefaultLimit
	if q.Limit != nil {
		limit = *q.Limit
	}
	limit = min(max(limit, o.cfg.MinLimit), o.cfg.MaxLimit)

	orderBy := map[string]SortOrder{defaultSort.Key: defaultSort.Value}
	if q.SortBy != "" && q.SortOrder != "" {
		orderBy = map[string]SortOrder{q.SortBy: q.SortOrder}
	}

	where := make(map[string]any, len(defaultWhere))
	maps.Copy(where, defaultWhere)
	if o.search != nil && q.Search != "" {
		maps.Copy(where, o.search(q.Search))
	}

	return WhereClause{
		Where:   where,
		OrderBy: orderBy,
		Page:    page,
		Skip:    (page - 1) * limit,
		Limit:   limit,
	}
}
