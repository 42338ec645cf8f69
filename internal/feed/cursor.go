// Package feed holds the keyset pagination engine shared by every list endpoint:
// cursor validation, sort dispatch, batched row signals and page slicing.
package feed

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCursor is matched with errors.Is by every InvalidCursorError.
var ErrInvalidCursor = errors.New("invalid cursor")

// CursorReason is the client-facing explanation carried by an InvalidCursorError.
type CursorReason string

const (
	ReasonMissingPair     CursorReason = "last_id and last_created_at must be sent together"
	ReasonNonPositiveID   CursorReason = "last_id must be a positive integer"
	ReasonFutureTimestamp CursorReason = "last_created_at is in the future"
)

// InvalidCursorError rejects a resumption cursor that cannot address a row.
type InvalidCursorError struct {
	Reason CursorReason
}

func (e *InvalidCursorError) Error() string {
	return fmt.Sprintf("invalid cursor: %s", e.Reason)
}

// Is makes every InvalidCursorError match ErrInvalidCursor.
func (e *InvalidCursorError) Is(target error) bool {
	return target == ErrInvalidCursor
}

// Cursor identifies the last row of the previous page. The zero value asks for the first page.
type Cursor struct {
	LastID        *int64     `json:"last_id,omitempty"`
	LastCreatedAt *time.Time `json:"last_created_at,omitempty"`
}

func (c Cursor) IsFirstPage() bool {
	return c.LastID == nil && c.LastCreatedAt == nil
}

// CursorAt builds the cursor pointing at a row.
func CursorAt(id int64, createdAt time.Time) Cursor {
	return Cursor{LastID: &id, LastCreatedAt: &createdAt}
}

// Validate checks a resumption cursor against the requested sort type.
//
// LIKES cursors are not required to carry last_created_at: popularity ties are broken on id and
// the anchor like count is looked up from last_id, so an id-only cursor is accepted.
func Validate(c Cursor, sort SortType, now time.Time) error {
	if c.IsFirstPage() {
		return nil
	}

	if sort == SortLatest && (c.LastID == nil || c.LastCreatedAt == nil) {
		return &InvalidCursorError{Reason: ReasonMissingPair}
	}

	if c.LastID != nil && *c.LastID <= 0 {
		return &InvalidCursorError{Reason: ReasonNonPositiveID}
	}

	if c.LastCreatedAt != nil && c.LastCreatedAt.After(now) {
		return &InvalidCursorError{Reason: ReasonFutureTimestamp}
	}

	return nil
}
