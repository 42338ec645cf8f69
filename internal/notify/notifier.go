// Package notify publishes activity notifications for the users a mutation concerns.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type EventType string

const (
	EventLineReviewLike EventType = "LINE_REVIEW_LIKE"
	EventBoardLike      EventType = "BOARD_LIKE"
	EventBoardComment   EventType = "BOARD_COMMENT"
)

// Event tells RecipientID that ActorID acted on SubjectID.
type Event struct {
	Type        EventType
	ActorID     int64
	RecipientID int64
	SubjectID   int64
	CreatedAt   time.Time
}

type Notifier interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// StreamKey is the per-recipient stream a client replays from.
func StreamKey(recipientID int64) string {
	return "notifications:" + strconv.FormatInt(recipientID, 10)
}

type redisNotifier struct {
	client *redis.Client
	maxLen int64
	log    *zap.Logger
}

// NewRedisNotifier appends events to a Redis stream per recipient. The stream entry id
// increases monotonically and doubles as the replay position.
func NewRedisNotifier(ctx context.Context, redisURL string, maxLen int64, log *zap.Logger) (Notifier, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisNotifier{
		client: client,
		maxLen: maxLen,
		log:    log.With(zap.String("notifier", "redis")),
	}, nil
}

func streamArgs(event Event, maxLen int64) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: StreamKey(event.RecipientID),
		MaxLen: maxLen,
		Approx: true,
		ID:     "*",
		Values: map[string]any{
			"type":       string(event.Type),
			"actor_id":   event.ActorID,
			"subject_id": event.SubjectID,
			"created_at": event.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}
}

func (n *redisNotifier) Publish(ctx context.Context, event Event) error {
	id, err := n.client.XAdd(ctx, streamArgs(event, n.maxLen)).Result()
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}

	n.log.Debug("Notification published",
		zap.String("type", string(event.Type)),
		zap.Int64("recipient_id", event.RecipientID),
		zap.String("stream_id", id),
	)
	return nil
}

func (n *redisNotifier) Close() error {
	return n.client.Close()
}

type logNotifier struct {
	log *zap.Logger
}

// NewLogNotifier only logs events. It is used when no Redis URL is configured.
func NewLogNotifier(log *zap.Logger) Notifier {
	return &logNotifier{log: log.With(zap.String("notifier", "log"))}
}

func (n *logNotifier) Publish(_ context.Context, event Event) error {
	n.log.Info("Notification",
		zap.String("type", string(event.Type)),
		zap.Int64("actor_id", event.ActorID),
		zap.Int64("recipient_id", event.RecipientID),
		zap.Int64("subject_id", event.SubjectID),
	)
	return nil
}

func (n *logNotifier) Close() error {
	return nil
}
