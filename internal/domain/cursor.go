package domain

import "fmt"

// Pagination bounds accepted by the backend.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Cursor selects one page of a collection. Pages are 1-based.
// Zero values fall back to page 1 and DefaultLimit.
type Cursor struct {
	Page  int
	Limit int
}

// Normalize fills defaults and checks bounds.
func (c Cursor) Normalize() (Cursor, error) {
	if c.Page == 0 {
		c.Page = 1
	}
	if c.Limit == 0 {
		c.Limit = DefaultLimit
	}
	if c.Page < 1 {
		return c, &ValidationError{Field: "page", Reason: fmt.Sprintf("must be >= 1, got %d", c.Page)}
	}
	if c.Limit < 1 || c.Limit > MaxLimit {
		return c, &ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d, got %d", MaxLimit, c.Limit)}
	}
	return c, nil
}

// Offset returns the number of rows preceding this page.
func (c Cursor) Offset() int {
	if c.Page < 1 {
		return 0
	}
	return (c.Page - 1) * c.Limit
}

// Next returns the cursor of the following page.
func (c Cursor) Next() Cursor {
	return Cursor{Page: c.Page + 1, Limit: c.Limit}
}
