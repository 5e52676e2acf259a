package model

// Pagination describes the window of a paginated read.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPagination derives the full pagination block from a page window and the
// matching document count. TotalPages is ceil(total/perPage).
func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// PaginatedResult is one page of items plus its pagination block. The count
// and the page read are separate store calls, so the two are only eventually
// consistent with each other.
type PaginatedResult struct {
	Items      []Item
	Pagination Pagination
}
