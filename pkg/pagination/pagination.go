package pagination

import (
	"net/url"
	"strconv"
)

const (
	// DefaultPerPage is the standard page size when one is not provided.
	DefaultPerPage = 24
	// MaxPerPage caps how many rows any list query can request.
	MaxPerPage = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page    int
	PerPage int
}

// FromQuery reads page and per_page from a query string, falling back to
// defaults on absent or malformed values.
func FromQuery(values url.Values) Params {
	return Params{
		Page:    parseInt(values.Get("page"), 1),
		PerPage: parseInt(values.Get("per_page"), DefaultPerPage),
	}.Normalize()
}

// Normalize clamps the parameters into their allowed ranges.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Limit returns the page size.
func (p Params) Limit() int {
	return p.Normalize().PerPage
}

// Meta describes a page of results for API responses.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewMeta computes response metadata from the params and the total row count.
func NewMeta(p Params, totalCount int64) Meta {
	n := p.Normalize()
	totalPages := int((totalCount + int64(n.PerPage) - 1) / int64(n.PerPage))
	return Meta{
		Page:       n.Page,
		PerPage:    n.PerPage,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
