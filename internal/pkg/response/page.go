package response

// Pagination describes the position of a page within the full result set.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination builds the pagination block on its own, for endpoints whose
// list key is named after the resource.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// NewPageResponse is a helper to quickly create a response.
func NewPageResponse[T any](items []T, page, limit, total int) PageResponse[T] {
	// Handle empty slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
	}
}
