package domain

// Pagination defaults
const (
	DefaultPageSize = 100
	MaxPageSize     = 1000
)

// PageRequest selects a page of a list
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit into valid ranges
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Offset returns the row offset of the page
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages for count rows
func (p PageRequest) TotalPages(count int) int {
	pages := (count + p.Limit - 1) / p.Limit
	if pages == 0 {
		pages = 1
	}
	return pages
}
