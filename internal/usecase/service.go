package usecase

import (
	"context"

	"picky-feed/internal/data/repository"
	"picky-feed/internal/feed"
	"picky-feed/internal/notify"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Movie      MovieService
	Feed       FeedService
	LineReview LineReviewService
	Board      BoardService
}

func NewService(repo *repository.Repository, notifier notify.Notifier, config *utils.Config, log *zap.Logger) *Service {
	sizes := feed.PageSize{
		Default: config.Feed.DefaultPageSize,
		Max:     config.Feed.MaxPageSize,
	}

	return &Service{
		Auth:       NewAuthService(repo, config, log),
		User:       NewUserService(repo.User, log),
		Movie:      NewMovieService(repo, log),
		Feed:       NewFeedService(repo, sizes, log),
		LineReview: NewLineReviewService(repo, notifier, log),
		Board:      NewBoardService(repo, notifier, log),
	}
}

// publish never fails the calling mutation; a lost notification is only logged.
func publish(ctx context.Context, notifier notify.Notifier, log *zap.Logger, event notify.Event) {
	if err := notifier.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish notification",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.Int64("recipient_id", event.RecipientID),
		)
	}
}
