package types

// Page captures optional list pagination. A zero PerPage means "unpaged":
// the caller gets the full collection.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) Enabled() bool { return p.PerPage > 0 }

// Offset returns the row offset for the requested page (1-based pages).
func (p Page) Offset() int {
	if !p.Enabled() {
		return 0
	}
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.PerPage
}

// Paged wraps a page of rows with the total row count.
type Paged[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
}
