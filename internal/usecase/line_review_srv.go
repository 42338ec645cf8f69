package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/dto/request"
	"picky-feed/internal/dto/response"
	"picky-feed/internal/feed"
	"picky-feed/internal/notify"

	"go.uber.org/zap"
)

type LineReviewService interface {
	CreateLineReview(ctx context.Context, userID int64, req *request.CreateLineReviewRequest) (*response.ReviewRow, error)
	UpdateLineReview(ctx context.Context, reviewID, userID int64, req *request.UpdateLineReviewRequest) (*response.ReviewRow, error)
	DeleteLineReview(ctx context.Context, reviewID, userID int64) error

	// React sets the caller's like or dislike, replacing the other one.
	React(ctx context.Context, reviewID, userID int64, req *request.ReactionRequest) error
	Unreact(ctx context.Context, reviewID, userID int64) error
}

type lineReviewService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewLineReviewService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) LineReviewService {
	return &lineReviewService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "line_review")),
	}
}

func (s *lineReviewService) CreateLineReview(ctx context.Context, userID int64, req *request.CreateLineReviewRequest) (*response.ReviewRow, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create line review validation failed", zap.Error(err))
		return nil, err
	}

	if _, err := liveMovie(ctx, s.repo.Movie, req.MovieID); err != nil {
		return nil, err
	}

	writer, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find writer: %w", err)
	}
	if writer == nil || writer.IsDeleted() {
		return nil, notFound("user", userID)
	}

	now := time.Now()
	review := &entity.LineReview{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         userID,
		MovieID:        req.MovieID,
		WriterNickname: writer.Nickname,
		Rating:         req.Rating,
		Context:        req.Context,
		IsSpoiler:      req.IsSpoiler,
	}

	if err := s.repo.LineReview.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("user %d already reviewed movie %d: %w", userID, req.MovieID, ErrConflict)
		}
		return nil, fmt.Errorf("create line review: %w", err)
	}

	s.log.Info("Line review created",
		zap.Int64("line_review_id", review.ID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", req.MovieID),
		zap.Float64("rating", req.Rating),
	)

	row := response.ReviewToRow(*review, entity.ReactionCounts{}, feed.UserCaller(userID), feed.ReactionNone)
	return &row, nil
}

func (s *lineReviewService) UpdateLineReview(ctx context.Context, reviewID, userID int64, req *request.UpdateLineReviewRequest) (*response.ReviewRow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	review, err := s.ownReview(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	review.Context = req.Context
	review.IsSpoiler = req.IsSpoiler
	review.UpdatedAt = time.Now()

	if err := s.repo.LineReview.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update line review: %w", err)
	}

	ids := []int64{reviewID}
	counts, err := s.repo.LineReview.CountReactions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	mine, err := s.repo.LineReview.FindCallerReactions(ctx, ids, userID)
	if err != nil {
		return nil, fmt.Errorf("find own reaction: %w", err)
	}

	row := response.ReviewToRow(*review, counts[reviewID], feed.UserCaller(userID), reactionOf(mine[reviewID]))
	return &row, nil
}

func (s *lineReviewService) DeleteLineReview(ctx context.Context, reviewID, userID int64) error {
	if _, err := s.ownReview(ctx, reviewID, userID); err != nil {
		return err
	}

	if err := s.repo.LineReview.SoftDelete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete line review: %w", err)
	}

	s.log.Info("Line review deleted", zap.Int64("line_review_id", reviewID), zap.Int64("user_id", userID))
	return nil
}

func (s *lineReviewService) React(ctx context.Context, reviewID, userID int64, req *request.ReactionRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	review, err := liveLineReview(ctx, s.repo.LineReview, reviewID)
	if err != nil {
		return err
	}

	reaction := &entity.LineReviewReaction{
		LineReviewID: reviewID,
		UserID:       userID,
		Preference:   entity.Preference(req.Preference),
		CreatedAt:    time.Now(),
	}

	changed, err := s.repo.LineReview.UpsertReaction(ctx, reaction)
	if err != nil {
		return fmt.Errorf("react to line review: %w", err)
	}

	if changed && reaction.Preference == entity.PreferenceLike && review.UserID != userID {
		publish(ctx, s.notifier, s.log, notify.Event{
			Type:        notify.EventLineReviewLike,
			ActorID:     userID,
			RecipientID: review.UserID,
			SubjectID:   reviewID,
			CreatedAt:   reaction.CreatedAt,
		})
	}
	return nil
}

// Unreact is idempotent; removing a reaction that does not exist succeeds.
func (s *lineReviewService) Unreact(ctx context.Context, reviewID, userID int64) error {
	if _, err := liveLineReview(ctx, s.repo.LineReview, reviewID); err != nil {
		return err
	}

	if _, err := s.repo.LineReview.DeleteReaction(ctx, reviewID, userID); err != nil {
		return fmt.Errorf("remove line review reaction: %w", err)
	}
	return nil
}

func (s *lineReviewService) ownReview(ctx context.Context, reviewID, userID int64) (*entity.LineReview, error) {
	review, err := liveLineReview(ctx, s.repo.LineReview, reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		s.log.Warn("Line review mutation by non-author",
			zap.Int64("line_review_id", reviewID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("line review %d: %w", reviewID, ErrUnauthorized)
	}
	return review, nil
}
