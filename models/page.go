package models

// PageRequest selects one page of the remote catalog.
type PageRequest struct {
	// Page is 1-based.
	Page     int
	PageSize int
	Search   string
	Category string
}

// Offset returns the zero-based index of the first row on the page.
func (r PageRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.PageSize
}

// Page is one page of catalog records as returned by the remote dataset.
type Page struct {
	Items []CatalogRecord `json:"items"`

	// Total is the total number of matching rows when the remote reports
	// it, nil otherwise.
	Total *int `json:"total,omitempty"`
}

// Stats is a summary of the local store contents.
type Stats struct {
	Records   int `json:"records"`
	Favorites int `json:"favorites"`
	Pending   int `json:"pending"`
}
