package repository

import (
	"context"
	"errors"
	"fmt"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/feed"
	"picky-feed/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BoardCommentRepository interface {
	Create(ctx context.Context, comment *entity.BoardComment) error
	FindByID(ctx context.Context, id int64) (*entity.BoardComment, error)
	Delete(ctx context.Context, id int64) error
	FindFeedByBoard(ctx context.Context, boardID int64, q feed.Query) ([]entity.BoardComment, error)
}

var boardCommentColumns = feed.Columns{
	ID:        "c.id",
	CreatedAt: "c.created_at",
}

const boardCommentSelect = `
	SELECT c.id, c.board_id, c.user_id, u.nickname, c.context, c.created_at
	FROM board_comments c
	JOIN users u ON u.id = c.user_id
`

type boardCommentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBoardCommentRepository(db database.PgxIface, log *zap.Logger) BoardCommentRepository {
	return &boardCommentRepository{
		db:  db,
		log: log.With(zap.String("repository", "board_comment")),
	}
}

func scanBoardComment(row pgx.Row) (entity.BoardComment, error) {
	var c entity.BoardComment
	err := row.Scan(&c.ID, &c.BoardID, &c.UserID, &c.WriterName, &c.Context, &c.CreatedAt)
	return c, err
}

func (r *boardCommentRepository) Create(ctx context.Context, comment *entity.BoardComment) error {
	query := `
		INSERT INTO board_comments (board_id, user_id, context, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		comment.BoardID,
		comment.UserID,
		comment.Context,
		comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		r.log.Error("Failed to create board comment",
			zap.Error(err),
			zap.Int64("board_id", comment.BoardID),
			zap.Int64("user_id", comment.UserID),
		)
		return fmt.Errorf("create comment on board %d: %w", comment.BoardID, err)
	}
	return nil
}

func (r *boardCommentRepository) FindByID(ctx context.Context, id int64) (*entity.BoardComment, error) {
	c, err := scanBoardComment(r.db.QueryRow(ctx, boardCommentSelect+" WHERE c.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find board comment", zap.Error(err), zap.Int64("comment_id", id))
		return nil, fmt.Errorf("find board comment %d: %w", id, err)
	}
	return &c, nil
}

func (r *boardCommentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM board_comments WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete board comment", zap.Error(err), zap.Int64("comment_id", id))
		return fmt.Errorf("delete board comment %d: %w", id, err)
	}
	return nil
}

func (r *boardCommentRepository) FindFeedByBoard(ctx context.Context, boardID int64, q feed.Query) ([]entity.BoardComment, error) {
	args := feed.NewArgs(boardID)
	query, err := pageQuery(boardCommentSelect+" WHERE c.board_id = $1", q, boardCommentColumns, args)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		r.log.Error("Failed to query comment feed", zap.Error(err), zap.Int64("board_id", boardID))
		return nil, fmt.Errorf("query comments of board %d: %w", boardID, err)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BoardComment, error) {
		return scanBoardComment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan comment feed: %w", err)
	}
	return comments, nil
}
