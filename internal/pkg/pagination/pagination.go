// Package pagination parses and normalizes page/limit query parameters.
package pagination

import "github.com/gofiber/fiber/v2"

const (
	// DefaultLimit is applied when the client omits or mangles the limit.
	DefaultLimit = 20
	// MaxLimit caps how many rows a single page may request.
	MaxLimit = 100
)

// Params is a normalized page request. Page is 1-based.
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// GetParams reads page/limit from the query string and clamps them
// into valid range.
func GetParams(c *fiber.Ctx) *Params {
	return Clamp(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// Clamp normalizes raw page/limit values.
func Clamp(page, limit int) *Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return &Params{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip for this page.
func (p *Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Slice returns the [start, end) bounds of this page within a
// collection of total rows. Pages past the end come back empty.
func (p *Params) Slice(total int) (int, int) {
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return start, end
}

// PageCount returns how many pages are needed to hold total rows.
func PageCount(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
