package pagination

import "strconv"

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page holds normalized page/limit query parameters
type Page struct {
	Number int
	Limit  int
}

// Parse normalizes raw page/limit query values. Bad input falls back to
// defaults rather than erroring; list endpoints stay forgiving.
func Parse(pageStr, limitStr string) Page {
	page := 1
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	limit := DefaultLimit
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
		limit = l
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// Offset returns the row offset for the page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
