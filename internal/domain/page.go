package domain

// DefaultPageSize is the number of issues requested per search page
const DefaultPageSize = 50

// PageCursor tracks offset based pagination over a search result
type PageCursor struct {
	StartAt    int
	MaxResults int
	Total      int // as reported by the most recent page
}

// NewPageCursor returns a cursor positioned at the first page
func NewPageCursor(pageSize int) *PageCursor {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &PageCursor{MaxResults: pageSize}
}

// Advance records the page total and moves the cursor to the next page
func (p *PageCursor) Advance(total int) {
	p.Total = total
	p.StartAt += p.MaxResults
}

// HasNext reports whether another page should be requested
func (p *PageCursor) HasNext() bool {
	return p.StartAt < p.Total
}

// IssuePage is one page of an issue search
type IssuePage struct {
	StartAt    int
	MaxResults int
	Total      int
	Issues     []Issue
}
