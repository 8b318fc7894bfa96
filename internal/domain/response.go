package domain

// SearchResult is one page of rides plus pagination metadata.
type SearchResult struct {
	// Rides contains the page window, in sort order
	Rides []Ride `json:"rides"`

	// Pagination describes where the window sits in the full result set
	Pagination Pagination `json:"pagination"`
}

// Pagination contains metadata about a page window.
type Pagination struct {
	// CurrentPage is the 1-based page that was requested
	CurrentPage int `json:"current_page"`

	// PerPage is the requested page size
	PerPage int `json:"per_page"`

	// TotalItems is the number of rides matching the criteria across all pages
	TotalItems int `json:"total_items"`

	// TotalPages is ceil(TotalItems / PerPage); 0 when nothing matched
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata for a result set.
// A non-positive perPage yields zero pages.
func NewPagination(totalItems, page, perPage int) Pagination {
	totalPages := 0
	if perPage > 0 && totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}
	return Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}
}

// NewSearchResult creates a SearchResult, never with a nil ride slice.
func NewSearchResult(rides []Ride, pagination Pagination) SearchResult {
	if rides == nil {
		rides = []Ride{}
	}
	return SearchResult{
		Rides:      rides,
		Pagination: pagination,
	}
}
