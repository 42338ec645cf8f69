package feed

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesServed counts pages returned per feed and sort type.
	PagesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_pages_served_total",
			Help: "Total number of feed pages served",
		},
		[]string{"feed", "sort", "has_next"},
	)

	// PageItems tracks how many rows each page carried.
	PageItems = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_page_items",
			Help:    "Number of rows per served feed page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"feed"},
	)

	// Errors counts rejected or failed feed requests.
	// Labels: type (invalid_cursor, unsupported_sort, not_found, deleted, read_failure)
	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_errors_total",
			Help: "Total number of feed request errors",
		},
		[]string{"feed", "type"},
	)
)

func RecordPage[T any](feedName string, sort SortType, p Page[T]) {
	hasNext := "false"
	if p.HasNext {
		hasNext = "true"
	}
	PagesServed.WithLabelValues(feedName, string(sort), hasNext).Inc()
	PageItems.WithLabelValues(feedName).Observe(float64(len(p.Items)))
}

// RecordError labels err by kind. Callers pass their own kind for errors outside this package.
func RecordError(feedName string, err error, fallback string) {
	kind := fallback
	switch {
	case errors.Is(err, ErrInvalidCursor):
		kind = "invalid_cursor"
	case errors.Is(err, ErrUnsupportedSortType):
		kind = "unsupported_sort"
	}
	Errors.WithLabelValues(feedName, kind).Inc()
}
