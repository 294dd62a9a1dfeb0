package pagination

// Meta is the page-count metadata returned next to a page of items
type Meta struct {
	Total           int  `json:"total"`
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Response is a page of items together with its metadata.
// Generic type T allows reuse across different entity types
type Response[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// Range holds the 1-indexed inclusive bounds of the items shown on a page
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// GeneratePagination derives page metadata from total, page and limit.
// TotalPages is never below 1, so an empty result is still page 1 of 1.
// Page is not checked against TotalPages; a page past the end simply has no next page.
func GeneratePagination(total, page, limit int) Meta {
	totalPages := 1
	if limit > 0 {
		totalPages = max((total+limit-1)/limit, 1)
	}

	return Meta{
		Total:           total,
		CurrentPage:     page,
		PageSize:        limit,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}

// CreatePaginatedResponse wraps an already fetched page of data with its metadata
func CreatePaginatedResponse[T any](data []T, total, page, limit int) Response[T] {
	if data == nil {
		data = []T{}
	}

	return Response[T]{
		Data:       data,
		Pagination: GeneratePagination(total, page, limit),
	}
}

// PaginateArray slices an in-memory collection to the requested page.
// Bounds outside the collection produce an empty page, not an error.
func PaginateArray[T any](items []T, page, limit int) Response[T] {
	start := min(max((page-1)*limit, 0), len(items))
	end := min(max(page*limit, start), len(items))

	data := make([]T, end-start)
	copy(data, items[start:end])

	return CreatePaginatedResponse(data, len(items), page, limit)
}

// DisplayRange returns the "showing From-To of total" bounds of a page.
// Both bounds are clamped to total, so a page beyond the data yields From == To == total
// and an empty collection yields {0, 0}.
func DisplayRange(page, limit, total int) Range {
	return Range{
		From: min((page-1)*limit+1, total),
		To:   min(page*limit, total),
	}
}
