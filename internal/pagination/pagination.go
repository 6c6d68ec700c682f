// Package pagination normalizes page requests and builds the response
// meta block shared by every listing endpoint.
package pagination

import "math"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a normalized page request.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps raw query values into a valid page request.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta carries continuation metadata alongside a page of results.
type Meta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

func NewMeta(p Params, totalItems int64) Meta {
	totalPages := int(math.Ceil(float64(totalItems) / float64(p.Limit)))
	return Meta{
		CurrentPage:     p.Page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    p.Limit,
		HasNextPage:     p.Page < totalPages,
		HasPreviousPage: p.Page > 1,
	}
}
