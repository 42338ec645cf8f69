package request

import (
	"time"

	"picky-feed/internal/feed"
)

// FeedRequest carries the query parameters shared by every feed endpoint.
type FeedRequest struct {
	Sort          string
	LastID        *int64
	LastCreatedAt *time.Time
	Size          int
}

func (r FeedRequest) Cursor() feed.Cursor {
	return feed.Cursor{LastID: r.LastID, LastCreatedAt: r.LastCreatedAt}
}
