package usecase

import (
	"context"
	"fmt"
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/dto/request"
	"picky-feed/internal/dto/response"
	"picky-feed/internal/notify"

	"go.uber.org/zap"
)

// ErrBoardContentOverFive rejects boards with more than entity.MaxBoardContents attachments.
var ErrBoardContentOverFive = fmt.Errorf("%w: BOARD_CONTENT_OVER_FIVE", ErrInvalidInput)

type BoardService interface {
	CreateBoard(ctx context.Context, userID int64, req *request.CreateBoardRequest) (*response.BoardRow, error)
	UpdateBoard(ctx context.Context, boardID, userID int64, req *request.UpdateBoardRequest) (*response.BoardRow, error)
	DeleteBoard(ctx context.Context, boardID, userID int64) error
	LikeBoard(ctx context.Context, boardID, userID int64) error
	UnlikeBoard(ctx context.Context, boardID, userID int64) error

	CreateComment(ctx context.Context, boardID, userID int64, req *request.CreateCommentRequest) (*response.CommentRow, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
}

type boardService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewBoardService(repo *repository.Repository, notifier notify.Notifier, log *zap.Logger) BoardService {
	return &boardService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "board")),
	}
}

func (s *boardService) CreateBoard(ctx context.Context, userID int64, req *request.CreateBoardRequest) (*response.BoardRow, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create board validation failed", zap.Error(err))
		return nil, err
	}
	if len(req.Contents) > entity.MaxBoardContents {
		return nil, ErrBoardContentOverFive
	}

	movie, err := liveMovie(ctx, s.repo.Movie, req.MovieID)
	if err != nil {
		return nil, err
	}

	writer, err := s.writer(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	board := &entity.Board{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         userID,
		MovieID:        movie.ID,
		WriterNickname: writer.Nickname,
		Context:        req.Context,
		IsSpoiler:      req.IsSpoiler,
		Contents:       make([]entity.BoardContent, len(req.Contents)),
	}
	for i, c := range req.Contents {
		board.Contents[i] = entity.BoardContent{
			ContentURL:  c.URL,
			ContentType: entity.BoardContentType(c.MediaType),
		}
	}

	if err := s.repo.Board.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	s.log.Info("Board created",
		zap.Int64("board_id", board.ID),
		zap.Int64("user_id", userID),
		zap.Int64("movie_id", movie.ID),
		zap.Int("contents", len(board.Contents)),
	)

	row := response.BoardToRow(entity.BoardFeedRow{
		Board:           *board,
		WriterAvatarURL: writer.AvatarURL,
		MovieTitle:      movie.Title,
	}, entity.BoardCounts{}, board.Contents, false)
	return &row, nil
}

func (s *boardService) UpdateBoard(ctx context.Context, boardID, userID int64, req *request.UpdateBoardRequest) (*response.BoardRow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	board, err := s.ownBoard(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	board.Context = req.Context
	board.IsSpoiler = req.IsSpoiler
	board.UpdatedAt = time.Now()

	if err := s.repo.Board.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("update board: %w", err)
	}

	return s.row(ctx, board, userID)
}

func (s *boardService) DeleteBoard(ctx context.Context, boardID, userID int64) error {
	if _, err := s.ownBoard(ctx, boardID, userID); err != nil {
		return err
	}

	if err := s.repo.Board.SoftDelete(ctx, boardID); err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	s.log.Info("Board deleted", zap.Int64("board_id", boardID), zap.Int64("user_id", userID))
	return nil
}

func (s *boardService) LikeBoard(ctx context.Context, boardID, userID int64) error {
	board, err := liveBoard(ctx, s.repo.Board, boardID)
	if err != nil {
		return err
	}

	liked, err := s.repo.Board.Like(ctx, boardID, userID)
	if err != nil {
		return fmt.Errorf("like board: %w", err)
	}

	if liked && board.UserID != userID {
		publish(ctx, s.notifier, s.log, notify.Event{
			Type:        notify.EventBoardLike,
			ActorID:     userID,
			RecipientID: board.UserID,
			SubjectID:   boardID,
			CreatedAt:   time.Now(),
		})
	}
	return nil
}

func (s *boardService) UnlikeBoard(ctx context.Context, boardID, userID int64) error {
	if _, err := liveBoard(ctx, s.repo.Board, boardID); err != nil {
		return err
	}

	if _, err := s.repo.Board.Unlike(ctx, boardID, userID); err != nil {
		return fmt.Errorf("unlike board: %w", err)
	}
	return nil
}

func (s *boardService) CreateComment(ctx context.Context, boardID, userID int64, req *request.CreateCommentRequest) (*response.CommentRow, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	board, err := liveBoard(ctx, s.repo.Board, boardID)
	if err != nil {
		return nil, err
	}

	writer, err := s.writer(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &entity.BoardComment{
		BaseSimple: entity.BaseSimple{CreatedAt: time.Now()},
		BoardID:    boardID,
		UserID:     userID,
		WriterName: writer.Nickname,
		Context:    req.Context,
	}

	if err := s.repo.BoardComment.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	if board.UserID != userID {
		publish(ctx, s.notifier, s.log, notify.Event{
			Type:        notify.EventBoardComment,
			ActorID:     userID,
			RecipientID: board.UserID,
			SubjectID:   boardID,
			CreatedAt:   comment.CreatedAt,
		})
	}

	row := response.CommentToRow(*comment)
	return &row, nil
}

func (s *boardService) DeleteComment(ctx context.Context, commentID, userID int64) error {
	comment, err := s.repo.BoardComment.FindByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}
	if comment == nil {
		return notFound("comment", commentID)
	}
	if comment.UserID != userID {
		return fmt.Errorf("comment %d: %w", commentID, ErrUnauthorized)
	}

	if _, err := liveBoard(ctx, s.repo.Board, comment.BoardID); err != nil {
		return err
	}

	if err := s.repo.BoardComment.Delete(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *boardService) ownBoard(ctx context.Context, boardID, userID int64) (*entity.Board, error) {
	board, err := liveBoard(ctx, s.repo.Board, boardID)
	if err != nil {
		return nil, err
	}
	if board.UserID != userID {
		s.log.Warn("Board mutation by non-author",
			zap.Int64("board_id", boardID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("board %d: %w", boardID, ErrUnauthorized)
	}
	return board, nil
}

func (s *boardService) writer(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find writer: %w", err)
	}
	if user == nil || user.IsDeleted() {
		return nil, notFound("user", userID)
	}
	return user, nil
}

// row rebuilds the display row of a single board with its live counts.
func (s *boardService) row(ctx context.Context, board *entity.Board, callerID int64) (*response.BoardRow, error) {
	writer, err := s.repo.User.FindByID(ctx, board.UserID)
	if err != nil {
		return nil, fmt.Errorf("find writer: %w", err)
	}
	movie, err := s.repo.Movie.FindByID(ctx, board.MovieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}

	ids := []int64{board.ID}
	counts, err := s.repo.Board.CountSignals(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count board signals: %w", err)
	}
	contents, err := s.repo.Board.FindContents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find board contents: %w", err)
	}
	liked, err := s.repo.Board.FindLikedBy(ctx, ids, callerID)
	if err != nil {
		return nil, fmt.Errorf("find own like: %w", err)
	}

	feedRow := entity.BoardFeedRow{Board: *board}
	if writer != nil {
		feedRow.WriterAvatarURL = writer.AvatarURL
	}
	if movie != nil {
		feedRow.MovieTitle = movie.Title
	}

	row := response.BoardToRow(feedRow, counts[board.ID], contents[board.ID], liked[board.ID])
	return &row, nil
}
