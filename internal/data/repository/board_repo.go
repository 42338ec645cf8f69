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

type BoardRepository interface {
	Create(ctx context.Context, board *entity.Board) error
	FindByID(ctx context.Context, id int64) (*entity.Board, error)
	Update(ctx context.Context, board *entity.Board) error
	SoftDelete(ctx context.Context, id int64) error

	// FindFeed lists live boards, restricted to one movie when movieID is set.
	FindFeed(ctx context.Context, movieID *int64, q feed.Query) ([]entity.BoardFeedRow, error)
	FindContents(ctx context.Context, ids []int64) (map[int64][]entity.BoardContent, error)
	CountSignals(ctx context.Context, ids []int64) (map[int64]entity.BoardCounts, error)
	FindLikedBy(ctx context.Context, ids []int64, userID int64) (map[int64]bool, error)

	// Like and Unlike report whether a row was written.
	Like(ctx context.Context, boardID, userID int64) (bool, error)
	Unlike(ctx context.Context, boardID, userID int64) (bool, error)
}

var boardColumns = feed.Columns{
	ID:        "b.id",
	CreatedAt: "b.created_at",
}

type boardRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBoardRepository(db database.PgxIface, log *zap.Logger) BoardRepository {
	return &boardRepository{
		db:  db,
		log: log.With(zap.String("repository", "board")),
	}
}

// Create stores the board and its contents atomically. Contents keep their slice order.
func (r *boardRepository) Create(ctx context.Context, board *entity.Board) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO boards (user_id, movie_id, context, is_spoiler, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, query,
			board.UserID,
			board.MovieID,
			board.Context,
			board.IsSpoiler,
			board.CreatedAt,
			board.UpdatedAt,
		).Scan(&board.ID); err != nil {
			return fmt.Errorf("insert board: %w", err)
		}

		for i := range board.Contents {
			c := &board.Contents[i]
			c.BoardID = board.ID
			if err := tx.QueryRow(ctx,
				`INSERT INTO board_contents (board_id, content_url, content_type) VALUES ($1, $2, $3) RETURNING id`,
				c.BoardID, c.ContentURL, c.ContentType,
			).Scan(&c.ID); err != nil {
				return fmt.Errorf("insert board content %d: %w", i, err)
			}
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create board",
			zap.Error(err),
			zap.Int64("user_id", board.UserID),
			zap.Int64("movie_id", board.MovieID),
		)
		return fmt.Errorf("create board for movie %d: %w", board.MovieID, err)
	}
	return nil
}

// FindByID returns tombstoned boards too. Contents are not loaded.
func (r *boardRepository) FindByID(ctx context.Context, id int64) (*entity.Board, error) {
	query := `
		SELECT b.id, b.user_id, b.movie_id, u.nickname, b.context, b.is_spoiler,
		       b.created_at, b.updated_at, b.deleted_at
		FROM boards b
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1
	`

	var b entity.Board
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID,
		&b.UserID,
		&b.MovieID,
		&b.WriterNickname,
		&b.Context,
		&b.IsSpoiler,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find board by ID", zap.Error(err), zap.Int64("board_id", id))
		return nil, fmt.Errorf("find board by ID %d: %w", id, err)
	}
	return &b, nil
}

func (r *boardRepository) Update(ctx context.Context, board *entity.Board) error {
	query := `
		UPDATE boards
		SET context = $2, is_spoiler = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, board.ID, board.Context, board.IsSpoiler, board.UpdatedAt); err != nil {
		r.log.Error("Failed to update board", zap.Error(err), zap.Int64("board_id", board.ID))
		return fmt.Errorf("update board %d: %w", board.ID, err)
	}
	return nil
}

func (r *boardRepository) SoftDelete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE boards SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	); err != nil {
		r.log.Error("Failed to delete board", zap.Error(err), zap.Int64("board_id", id))
		return fmt.Errorf("delete board %d: %w", id, err)
	}
	return nil
}

func (r *boardRepository) FindFeed(ctx context.Context, movieID *int64, q feed.Query) ([]entity.BoardFeedRow, error) {
	base := `
		SELECT b.id, b.user_id, b.movie_id, u.nickname, u.avatar_url, m.title,
		       b.context, b.is_spoiler, b.created_at, b.updated_at
		FROM boards b
		JOIN users u ON u.id = b.user_id
		JOIN movies m ON m.id = b.movie_id
		WHERE b.deleted_at IS NULL
	`

	args := feed.NewArgs()
	if movieID != nil {
		base += " AND b.movie_id = " + args.Add(*movieID)
	}

	query, err := pageQuery(base, q, boardColumns, args)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		r.log.Error("Failed to query board feed", zap.Error(err), zap.Int("limit", q.Limit))
		return nil, fmt.Errorf("query board feed: %w", err)
	}

	boards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.BoardFeedRow, error) {
		var b entity.BoardFeedRow
		err := row.Scan(
			&b.ID,
			&b.UserID,
			&b.MovieID,
			&b.WriterNickname,
			&b.WriterAvatarURL,
			&b.MovieTitle,
			&b.Context,
			&b.IsSpoiler,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan board feed: %w", err)
	}
	return boards, nil
}

func (r *boardRepository) FindContents(ctx context.Context, ids []int64) (map[int64][]entity.BoardContent, error) {
	query := `
		SELECT id, board_id, content_url, content_type
		FROM board_contents
		WHERE board_id = ANY($1)
		ORDER BY board_id, id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find board contents", zap.Error(err), zap.Int("ids", len(ids)))
		return nil, fmt.Errorf("find board contents: %w", err)
	}
	defer rows.Close()

	contents := make(map[int64][]entity.BoardContent, len(ids))
	for rows.Next() {
		var c entity.BoardContent
		if err := rows.Scan(&c.ID, &c.BoardID, &c.ContentURL, &c.ContentType); err != nil {
			return nil, fmt.Errorf("scan board content: %w", err)
		}
		contents[c.BoardID] = append(contents[c.BoardID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board contents: %w", err)
	}
	return contents, nil
}

// CountSignals returns like and comment counts for every id, zero counts included.
func (r *boardRepository) CountSignals(ctx context.Context, ids []int64) (map[int64]entity.BoardCounts, error) {
	query := `
		SELECT b.id,
		       (SELECT COUNT(*) FROM board_likes bl WHERE bl.board_id = b.id),
		       (SELECT COUNT(*) FROM board_comments bc WHERE bc.board_id = b.id)
		FROM unnest($1::bigint[]) AS b(id)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to count board signals", zap.Error(err), zap.Int("ids", len(ids)))
		return nil, fmt.Errorf("count board signals: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]entity.BoardCounts, len(ids))
	for rows.Next() {
		var id int64
		var c entity.BoardCounts
		if err := rows.Scan(&id, &c.Likes, &c.Comments); err != nil {
			return nil, fmt.Errorf("scan board counts: %w", err)
		}
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate board counts: %w", err)
	}
	return counts, nil
}

func (r *boardRepository) FindLikedBy(ctx context.Context, ids []int64, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT board_id FROM board_likes WHERE board_id = ANY($1) AND user_id = $2`,
		ids, userID,
	)
	if err != nil {
		r.log.Error("Failed to find liked boards", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("find boards liked by user %d: %w", userID, err)
	}

	liked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("scan liked boards: %w", err)
	}

	out := make(map[int64]bool, len(liked))
	for _, id := range liked {
		out[id] = true
	}
	return out, nil
}

func (r *boardRepository) Like(ctx context.Context, boardID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO board_likes (board_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (board_id, user_id) DO NOTHING
	`, boardID, userID)
	if err != nil {
		r.log.Error("Failed to like board",
			zap.Error(err),
			zap.Int64("board_id", boardID),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("like board %d: %w", boardID, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *boardRepository) Unlike(ctx context.Context, boardID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM board_likes WHERE board_id = $1 AND user_id = $2`,
		boardID, userID,
	)
	if err != nil {
		r.log.Error("Failed to unlike board",
			zap.Error(err),
			zap.Int64("board_id", boardID),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("unlike board %d: %w", boardID, err)
	}
	return result.RowsAffected() > 0, nil
}
