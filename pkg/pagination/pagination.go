// Package pagination pages through listings such as the scan history.
package pagination

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params are the page query parameters of a listing.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Default returns the first page with the default size.
func Default() *Params {
	return &Params{Page: 1, PerPage: DefaultPerPage}
}

// Normalize clamps the parameters into range.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit is the number of rows to return.
func (p *Params) Limit() int {
	return p.PerPage
}

// Page describes where a page sits in the full listing.
type Page struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPage describes the page selected by p out of total rows.
func NewPage(p *Params, total int64) *Page {
	totalPages := 0
	if p.PerPage > 0 {
		totalPages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return &Page{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}

// Result is one page of items.
type Result[T any] struct {
	Items      []T   `json:"items"`
	Pagination *Page `json:"pagination"`
}

// NewResult wraps items as the page selected by p.
func NewResult[T any](items []T, p *Params, total int64) *Result[T] {
	return &Result[T]{Items: items, Pagination: NewPage(p, total)}
}
