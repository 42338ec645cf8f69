package feed

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedSortType is returned for an unknown sort or one a feed cannot serve.
var ErrUnsupportedSortType = errors.New("unsupported sort type")

// SortType selects the ordering of a feed.
type SortType string

const (
	SortLatest SortType = "LATEST"
	SortLikes  SortType = "LIKES"
)

// ParseSortType accepts the query-string form of a sort type. An empty value means LATEST.
func ParseSortType(raw string) (SortType, error) {
	switch SortType(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", SortLatest:
		return SortLatest, nil
	case SortLikes:
		return SortLikes, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedSortType, raw)
	}
}

// Query is what a repository needs to fetch one slice of a feed.
type Query struct {
	Sort   SortType
	Cursor Cursor
	Limit  int
}

// Args collects positional parameters for a pgx query and hands out their placeholders.
type Args struct {
	values []any
}

func NewArgs(initial ...any) *Args {
	return &Args{values: initial}
}

// Add appends v and returns its placeholder ($n).
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

func (a *Args) Values() []any {
	return a.values
}

// Columns names the SQL expressions a keyset is built over.
type Columns struct {
	ID        string
	CreatedAt string
	// LikesOf is a format string with a single %s for the row id whose live like count it yields,
	// e.g. "(SELECT COUNT(*) FROM likes l WHERE l.subject_id = %s)". Only LIKES uses it.
	LikesOf string
}

// Keyset is the resumption predicate and ordering for one sort strategy.
// Where is empty on the first page.
type Keyset struct {
	Where   string
	OrderBy string
}

// BuildKeyset dispatches on the sort type.
func BuildKeyset(sort SortType, c Cursor, cols Columns, args *Args) (Keyset, error) {
	switch sort {
	case SortLatest:
		return latestKeyset(c, cols, args), nil
	case SortLikes:
		if cols.LikesOf == "" {
			return Keyset{}, fmt.Errorf("%w: %s is not available for this feed", ErrUnsupportedSortType, sort)
		}
		return likesKeyset(c, cols, args), nil
	default:
		return Keyset{}, fmt.Errorf("%w: %q", ErrUnsupportedSortType, sort)
	}
}

func latestKeyset(c Cursor, cols Columns, args *Args) Keyset {
	ks := Keyset{OrderBy: fmt.Sprintf("%s DESC, %s DESC", cols.CreatedAt, cols.ID)}
	if c.LastID == nil || c.LastCreatedAt == nil {
		return ks
	}

	at := args.Add(*c.LastCreatedAt)
	id := args.Add(*c.LastID)
	ks.Where = fmt.Sprintf("(%s < %s OR (%s = %s AND %s < %s))",
		cols.CreatedAt, at, cols.CreatedAt, at, cols.ID, id)
	return ks
}

// likesKeyset orders by the live like count. The anchor count is re-read from the last row on
// every request, so a row whose count moves between pages can be skipped or served twice.
func likesKeyset(c Cursor, cols Columns, args *Args) Keyset {
	rowLikes := fmt.Sprintf(cols.LikesOf, cols.ID)
	ks := Keyset{OrderBy: fmt.Sprintf("%s DESC, %s DESC", rowLikes, cols.ID)}
	if c.LastID == nil {
		return ks
	}

	id := args.Add(*c.LastID)
	anchorLikes := fmt.Sprintf(cols.LikesOf, id)
	ks.Where = fmt.Sprintf("(%s < %s OR (%s = %s AND %s < %s))",
		rowLikes, anchorLikes, rowLikes, anchorLikes, cols.ID, id)
	return ks
}

// WithLimit returns a copy of q with a different row limit.
func (q Query) WithLimit(limit int) Query {
	q.Limit = limit
	return q
}
