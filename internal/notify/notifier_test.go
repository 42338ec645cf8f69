package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStreamArgs(t *testing.T) {
	at := time.Date(2026, 4, 2, 9, 30, 0, 0, time.FixedZone("KST", 9*3600))
	args := streamArgs(Event{
		Type:        EventBoardComment,
		ActorID:     3,
		RecipientID: 12,
		SubjectID:   40,
		CreatedAt:   at,
	}, 500)

	assert.Equal(t, "notifications:12", args.Stream)
	assert.Equal(t, int64(500), args.MaxLen)
	assert.True(t, args.Approx)
	assert.Equal(t, "*", args.ID)
	assert.Equal(t, map[string]any{
		"type":       "BOARD_COMMENT",
		"actor_id":   int64(3),
		"subject_id": int64(40),
		"created_at": "2026-04-02T00:30:00Z",
	}, args.Values)
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	err := n.Publish(context.Background(), Event{Type: EventLineReviewLike, ActorID: 1, RecipientID: 2, SubjectID: 3})
	require.NoError(t, err)
	require.NoError(t, n.Close())

	entries := logs.FilterMessage("Notification").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "LINE_REVIEW_LIKE", fields["type"])
	assert.Equal(t, int64(2), fields["recipient_id"])
}
