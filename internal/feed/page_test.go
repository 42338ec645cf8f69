package feed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picky-feed/internal/feed"
)

type item struct {
	id int64
	at time.Time
}

func items(n int) []item {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]item, n)
	for i := range out {
		out[i] = item{id: int64(n - i), at: base.Add(time.Duration(n-i) * time.Minute)}
	}
	return out
}

func itemKey(it item) feed.Cursor { return feed.CursorAt(it.id, it.at) }

// source mimics a LIMIT query over a fixed data set.
func source(data []item, gotLimit *int) func(context.Context, int) ([]item, error) {
	return func(_ context.Context, limit int) ([]item, error) {
		*gotLimit = limit
		if limit > len(data) {
			limit = len(data)
		}
		return data[:limit], nil
	}
}

func TestFetch_Trimming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rows     int
		hasNext  bool
		wantSize int
	}{
		{name: "eleven eligible rows", rows: 11, hasNext: true, wantSize: 10},
		{name: "exactly ten rows", rows: 10, hasNext: false, wantSize: 10},
		{name: "fewer rows", rows: 3, hasNext: false, wantSize: 3},
		{name: "empty", rows: 0, hasNext: false, wantSize: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := items(tt.rows)
			var limit int
			page, err := feed.Fetch(context.Background(), 10, source(data, &limit), itemKey)
			require.NoError(t, err)

			assert.Equal(t, 11, limit)
			assert.Len(t, page.Items, tt.wantSize)
			assert.Equal(t, tt.hasNext, page.HasNext)
			assert.NotNil(t, page.Items)

			if !tt.hasNext {
				assert.Nil(t, page.NextCursor)
				return
			}
			require.NotNil(t, page.NextCursor)
			last := page.Items[len(page.Items)-1]
			assert.Equal(t, last.id, *page.NextCursor.LastID)
			assert.True(t, last.at.Equal(*page.NextCursor.LastCreatedAt))
		})
	}
}

func TestFetch_PropagatesError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := feed.Fetch(context.Background(), 5, func(context.Context, int) ([]item, error) {
		return nil, boom
	}, itemKey)
	assert.ErrorIs(t, err, boom)
}

func TestPageSize_Resolve(t *testing.T) {
	t.Parallel()

	sizes := feed.DefaultPageSizes()
	assert.Equal(t, feed.DefaultPageSize, sizes.Resolve(0))
	assert.Equal(t, feed.DefaultPageSize, sizes.Resolve(-4))
	assert.Equal(t, 25, sizes.Resolve(25))
	assert.Equal(t, feed.MaxPageSize, sizes.Resolve(1000))

	custom := feed.PageSize{Default: 20, Max: 30}
	assert.Equal(t, 20, custom.Resolve(0))
	assert.Equal(t, 30, custom.Resolve(31))

	assert.Equal(t, feed.DefaultPageSize, feed.PageSize{}.Resolve(0))
}

func TestMap_KeepsMetadata(t *testing.T) {
	t.Parallel()

	page := feed.Slice(items(4), 3, itemKey)
	mapped := feed.Map(page, func(it item) int64 { return it.id })

	assert.Equal(t, []int64{4, 3, 2}, mapped.Items)
	assert.True(t, mapped.HasNext)
	assert.Equal(t, page.NextCursor, mapped.NextCursor)
}
