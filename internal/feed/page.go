package feed

import "context"

const (
	// DefaultPageSize is served when the caller sends no page size or a non-positive one.
	DefaultPageSize = 10
	// MaxPageSize caps oversized requests.
	MaxPageSize = 100
)

// Page is one slice of a feed.
type Page[T any] struct {
	Items      []T     `json:"items"`
	HasNext    bool    `json:"has_next"`
	NextCursor *Cursor `json:"next_cursor"`
}

// PageSize resolves the requested size against the configured default and cap.
type PageSize struct {
	Default int
	Max     int
}

func DefaultPageSizes() PageSize {
	return PageSize{Default: DefaultPageSize, Max: MaxPageSize}
}

func (p PageSize) Resolve(requested int) int {
	def, max := p.Default, p.Max
	if def <= 0 {
		def = DefaultPageSize
	}
	if max <= 0 {
		max = MaxPageSize
	}
	if requested <= 0 {
		requested = def
	}
	if requested > max {
		return max
	}
	return requested
}

// Fetch asks query for pageSize+1 rows, trims the lookahead row and derives HasNext and the
// cursor of the last row kept. pageSize must already be resolved.
func Fetch[T any](ctx context.Context, pageSize int, query func(ctx context.Context, limit int) ([]T, error), key func(T) Cursor) (Page[T], error) {
	rows, err := query(ctx, pageSize+1)
	if err != nil {
		return Page[T]{}, err
	}
	return Slice(rows, pageSize, key), nil
}

func Slice[T any](rows []T, pageSize int, key func(T) Cursor) Page[T] {
	page := Page[T]{Items: rows}
	if len(rows) > pageSize {
		page.Items = rows[:pageSize]
		page.HasNext = true
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	if page.HasNext && len(page.Items) > 0 {
		next := key(page.Items[len(page.Items)-1])
		page.NextCursor = &next
	}
	return page
}

// Map converts page items while keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Items:      make([]U, len(p.Items)),
		HasNext:    p.HasNext,
		NextCursor: p.NextCursor,
	}
	for i, item := range p.Items {
		out.Items[i] = fn(item)
	}
	return out
}
