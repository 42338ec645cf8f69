package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/dto/request"
	"picky-feed/internal/dto/response"
	"picky-feed/internal/feed"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Feed names used as metric labels.
const (
	feedReviewsByMovie = "reviews_by_movie"
	feedReviewsByUser  = "reviews_by_user"
	feedBoardsByMovie  = "boards_by_movie"
	feedBoards         = "boards"
	feedBoardComments  = "board_comments"
)

type FeedService interface {
	ListReviewsByMovie(ctx context.Context, movieID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.ReviewRow], error)
	ListReviewsByUser(ctx context.Context, userID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.ReviewRow], error)
	ListBoardsByMovie(ctx context.Context, movieID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.BoardRow], error)
	ListBoards(ctx context.Context, caller feed.Caller, req request.FeedRequest) (feed.Page[response.BoardRow], error)
	ListBoardComments(ctx context.Context, boardID int64, req request.FeedRequest) (feed.Page[response.CommentRow], error)
}

type feedService struct {
	repo  *repository.Repository
	sizes feed.PageSize
	now   func() time.Time
	log   *zap.Logger
}

func NewFeedService(repo *repository.Repository, sizes feed.PageSize, log *zap.Logger) FeedService {
	return newFeedService(repo, sizes, time.Now, log)
}

func newFeedService(repo *repository.Repository, sizes feed.PageSize, now func() time.Time, log *zap.Logger) *feedService {
	return &feedService{
		repo:  repo,
		sizes: sizes,
		now:   now,
		log:   log.With(zap.String("service", "feed")),
	}
}

func (s *feedService) ListReviewsByMovie(ctx context.Context, movieID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.ReviewRow], error) {
	if err := s.requireMovie(ctx, movieID); err != nil {
		return failed[response.ReviewRow](feedReviewsByMovie, err)
	}

	q, err := s.query(req, feed.SortLatest, feed.SortLikes)
	if err != nil {
		return failed[response.ReviewRow](feedReviewsByMovie, err)
	}

	rows, err := feed.Fetch(ctx, q.Limit, func(ctx context.Context, limit int) ([]entity.LineReview, error) {
		return s.repo.LineReview.FindFeedByMovie(ctx, movieID, q.WithLimit(limit))
	}, lineReviewKey)
	if err != nil {
		return failed[response.ReviewRow](feedReviewsByMovie, s.readFailure("list reviews by movie", err))
	}

	return s.reviewPage(ctx, feedReviewsByMovie, q.Sort, rows, caller)
}

func (s *feedService) ListReviewsByUser(ctx context.Context, userID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.ReviewRow], error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return failed[response.ReviewRow](feedReviewsByUser, s.readFailure("find user", err))
	}
	if user == nil {
		return failed[response.ReviewRow](feedReviewsByUser, notFound("user", userID))
	}
	if user.IsDeleted() {
		return failed[response.ReviewRow](feedReviewsByUser, deleted("user", userID))
	}

	q, err := s.query(req, feed.SortLatest)
	if err != nil {
		return failed[response.ReviewRow](feedReviewsByUser, err)
	}

	rows, err := feed.Fetch(ctx, q.Limit, func(ctx context.Context, limit int) ([]entity.LineReview, error) {
		return s.repo.LineReview.FindFeedByUser(ctx, userID, q.WithLimit(limit))
	}, lineReviewKey)
	if err != nil {
		return failed[response.ReviewRow](feedReviewsByUser, s.readFailure("list reviews by user", err))
	}

	return s.reviewPage(ctx, feedReviewsByUser, q.Sort, rows, caller)
}

func (s *feedService) ListBoardsByMovie(ctx context.Context, movieID int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.BoardRow], error) {
	if err := s.requireMovie(ctx, movieID); err != nil {
		return failed[response.BoardRow](feedBoardsByMovie, err)
	}
	return s.listBoards(ctx, feedBoardsByMovie, &movieID, caller, req)
}

func (s *feedService) ListBoards(ctx context.Context, caller feed.Caller, req request.FeedRequest) (feed.Page[response.BoardRow], error) {
	return s.listBoards(ctx, feedBoards, nil, caller, req)
}

func (s *feedService) ListBoardComments(ctx context.Context, boardID int64, req request.FeedRequest) (feed.Page[response.CommentRow], error) {
	if _, err := liveBoard(ctx, s.repo.Board, boardID); err != nil {
		return failed[response.CommentRow](feedBoardComments, s.lookupFailure(err))
	}

	q, err := s.query(req, feed.SortLatest)
	if err != nil {
		return failed[response.CommentRow](feedBoardComments, err)
	}

	rows, err := feed.Fetch(ctx, q.Limit, func(ctx context.Context, limit int) ([]entity.BoardComment, error) {
		return s.repo.BoardComment.FindFeedByBoard(ctx, boardID, q.WithLimit(limit))
	}, func(c entity.BoardComment) feed.Cursor {
		return feed.CursorAt(c.ID, c.CreatedAt)
	})
	if err != nil {
		return failed[response.CommentRow](feedBoardComments, s.readFailure("list board comments", err))
	}

	page := feed.Map(rows, response.CommentToRow)
	feed.RecordPage(feedBoardComments, q.Sort, page)
	return page, nil
}

func (s *feedService) listBoards(ctx context.Context, name string, movieID *int64, caller feed.Caller, req request.FeedRequest) (feed.Page[response.BoardRow], error) {
	q, err := s.query(req, feed.SortLatest)
	if err != nil {
		return failed[response.BoardRow](name, err)
	}

	rows, err := feed.Fetch(ctx, q.Limit, func(ctx context.Context, limit int) ([]entity.BoardFeedRow, error) {
		return s.repo.Board.FindFeed(ctx, movieID, q.WithLimit(limit))
	}, func(b entity.BoardFeedRow) feed.Cursor {
		return feed.CursorAt(b.ID, b.CreatedAt)
	})
	if err != nil {
		return failed[response.BoardRow](name, s.readFailure("list boards", err))
	}

	ids := make([]int64, len(rows.Items))
	for i, b := range rows.Items {
		ids[i] = b.ID
	}

	sig, err := feed.LoadSignals(ctx, ids, caller, s.boardAggregates, s.repo.Board.FindLikedBy)
	if err != nil {
		return failed[response.BoardRow](name, s.readFailure("load board signals", err))
	}

	page := feed.Map(rows, func(b entity.BoardFeedRow) response.BoardRow {
		agg := sig.Aggregates[b.ID]
		return response.BoardToRow(b, agg.counts, agg.contents, sig.Mine[b.ID])
	})
	feed.RecordPage(name, q.Sort, page)
	return page, nil
}

type boardAggregate struct {
	counts   entity.BoardCounts
	contents []entity.BoardContent
}

// boardAggregates reads counts and contents concurrently; both batches cover the whole page.
func (s *feedService) boardAggregates(ctx context.Context, ids []int64) (map[int64]boardAggregate, error) {
	var (
		counts   map[int64]entity.BoardCounts
		contents map[int64][]entity.BoardContent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.repo.Board.CountSignals(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		contents, err = s.repo.Board.FindContents(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[int64]boardAggregate, len(ids))
	for _, id := range ids {
		out[id] = boardAggregate{counts: counts[id], contents: contents[id]}
	}
	return out, nil
}

func (s *feedService) reviewPage(ctx context.Context, name string, sort feed.SortType, rows feed.Page[entity.LineReview], caller feed.Caller) (feed.Page[response.ReviewRow], error) {
	ids := make([]int64, len(rows.Items))
	for i, lr := range rows.Items {
		ids[i] = lr.ID
	}

	sig, err := feed.LoadSignals(ctx, ids, caller, s.repo.LineReview.CountReactions, s.callerReactions)
	if err != nil {
		return failed[response.ReviewRow](name, s.readFailure("load review signals", err))
	}

	page := feed.Map(rows, func(lr entity.LineReview) response.ReviewRow {
		return response.ReviewToRow(lr, sig.Aggregates[lr.ID], caller, sig.Mine[lr.ID])
	})
	feed.RecordPage(name, sort, page)
	return page, nil
}

func (s *feedService) callerReactions(ctx context.Context, ids []int64, callerID int64) (map[int64]feed.Reaction, error) {
	prefs, err := s.repo.LineReview.FindCallerReactions(ctx, ids, callerID)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]feed.Reaction, len(prefs))
	for id, p := range prefs {
		out[id] = reactionOf(p)
	}
	return out, nil
}

func reactionOf(p entity.Preference) feed.Reaction {
	switch p {
	case entity.PreferenceLike:
		return feed.ReactionLiked
	case entity.PreferenceDislike:
		return feed.ReactionDisliked
	default:
		return feed.ReactionNone
	}
}

func lineReviewKey(lr entity.LineReview) feed.Cursor {
	return feed.CursorAt(lr.ID, lr.CreatedAt)
}

// query resolves the sort type, cursor and page size of a request against the sorts a feed offers.
func (s *feedService) query(req request.FeedRequest, offered ...feed.SortType) (feed.Query, error) {
	sort, err := feed.ParseSortType(req.Sort)
	if err != nil {
		return feed.Query{}, err
	}
	if !slices.Contains(offered, sort) {
		return feed.Query{}, fmt.Errorf("%w: %s is not offered by this feed", feed.ErrUnsupportedSortType, sort)
	}

	cursor := req.Cursor()
	if err := feed.Validate(cursor, sort, s.now()); err != nil {
		return feed.Query{}, err
	}

	return feed.Query{Sort: sort, Cursor: cursor, Limit: s.sizes.Resolve(req.Size)}, nil
}

func (s *feedService) requireMovie(ctx context.Context, movieID int64) error {
	_, err := liveMovie(ctx, s.repo.Movie, movieID)
	return s.lookupFailure(err)
}

// lookupFailure passes NotFound and Deleted through and turns anything else into a read failure.
func (s *feedService) lookupFailure(err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDeleted) {
		return err
	}
	return s.readFailure("parent lookup", err)
}

func (s *feedService) readFailure(op string, err error) error {
	s.log.Error("Feed read failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w: %w", op, ErrReadFailure, err)
}

func failed[T any](name string, err error) (feed.Page[T], error) {
	kind := "read_failure"
	switch {
	case errors.Is(err, ErrNotFound):
		kind = "not_found"
	case errors.Is(err, ErrDeleted):
		kind = "deleted"
	}
	feed.RecordError(name, err, kind)
	return feed.Page[T]{}, err
}
