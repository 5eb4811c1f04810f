package pagination

import "github.com/gofiber/fiber/v2"

// Page size bounds
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped page request
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromQuery reads ?page= and ?limit= from the request
func FromQuery(c *fiber.Ctx) Params {
	return NewParams(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// NewParams clamps page to >= 1 and limit to [1, MaxLimit]
func NewParams(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset is the number of rows to skip
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits in the full result set
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Meta computes page metadata for total matching rows
func (p Params) Meta(total int64) Meta {
	limit := int64(p.Limit)
	pages := int((total + limit - 1) / limit)

	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}

// Page is one page of items with its metadata
type Page[T any] struct {
	Items []T  `json:"items"`
	Meta  Meta `json:"meta"`
}

// NewPage converts rows with toItem and attaches metadata
func NewPage[R, T any](rows []R, params Params, total int64, toItem func(R) T) *Page[T] {
	items := make([]T, len(rows))
	for i, row := range rows {
		items[i] = toItem(row)
	}
	return &Page[T]{Items: items, Meta: params.Meta(total)}
}
