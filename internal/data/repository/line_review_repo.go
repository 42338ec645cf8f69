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

type LineReviewRepository interface {
	Create(ctx context.Context, review *entity.LineReview) error
	FindByID(ctx context.Context, id int64) (*entity.LineReview, error)
	Update(ctx context.Context, review *entity.LineReview) error
	SoftDelete(ctx context.Context, id int64) error

	// Feed queries
	FindFeedByMovie(ctx context.Context, movieID int64, q feed.Query) ([]entity.LineReview, error)
	FindFeedByUser(ctx context.Context, userID int64, q feed.Query) ([]entity.LineReview, error)
	CountReactions(ctx context.Context, ids []int64) (map[int64]entity.ReactionCounts, error)
	FindCallerReactions(ctx context.Context, ids []int64, userID int64) (map[int64]entity.Preference, error)

	// UpsertReaction reports whether the stored preference changed.
	UpsertReaction(ctx context.Context, reaction *entity.LineReviewReaction) (bool, error)
	DeleteReaction(ctx context.Context, reviewID, userID int64) (bool, error)
}

var lineReviewColumns = feed.Columns{
	ID:        "lr.id",
	CreatedAt: "lr.created_at",
	LikesOf:   "(SELECT COUNT(*) FROM line_review_likes l WHERE l.line_review_id = %s AND l.preference = 'LIKE')",
}

const lineReviewSelect = `
	SELECT lr.id, lr.user_id, lr.movie_id, u.nickname, lr.rating, lr.context, lr.is_spoiler,
	       lr.created_at, lr.updated_at, lr.deleted_at
	FROM line_reviews lr
	JOIN users u ON u.id = lr.user_id
`

type lineReviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLineReviewRepository(db database.PgxIface, log *zap.Logger) LineReviewRepository {
	return &lineReviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "line_review")),
	}
}

func scanLineReview(row pgx.Row) (*entity.LineReview, error) {
	var lr entity.LineReview
	err := row.Scan(
		&lr.ID,
		&lr.UserID,
		&lr.MovieID,
		&lr.WriterNickname,
		&lr.Rating,
		&lr.Context,
		&lr.IsSpoiler,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func collectLineReview(row pgx.CollectableRow) (entity.LineReview, error) {
	lr, err := scanLineReview(row)
	if err != nil {
		return entity.LineReview{}, err
	}
	return *lr, nil
}

func (r *lineReviewRepository) Create(ctx context.Context, review *entity.LineReview) error {
	query := `
		INSERT INTO line_reviews (user_id, movie_id, rating, context, is_spoiler, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.UserID,
		review.MovieID,
		review.Rating,
		review.Context,
		review.IsSpoiler,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ID)

	if isUniqueViolation(err) {
		return fmt.Errorf("line review for movie %d by user %d: %w", review.MovieID, review.UserID, ErrDuplicate)
	}
	if err != nil {
		r.log.Error("Failed to create line review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create line review for movie %d by user %d: %w", review.MovieID, review.UserID, err)
	}

	return nil
}

// FindByID returns tombstoned reviews too.
func (r *lineReviewRepository) FindByID(ctx context.Context, id int64) (*entity.LineReview, error) {
	lr, err := scanLineReview(r.db.QueryRow(ctx, lineReviewSelect+" WHERE lr.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find line review by ID",
			zap.Error(err),
			zap.Int64("line_review_id", id),
		)
		return nil, fmt.Errorf("find line review by ID %d: %w", id, err)
	}
	return lr, nil
}

func (r *lineReviewRepository) Update(ctx context.Context, review *entity.LineReview) error {
	query := `
		UPDATE line_reviews
		SET context = $2, is_spoiler = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL
	`

	_, err := r.db.Exec(ctx, query, review.ID, review.Context, review.IsSpoiler, review.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update line review",
			zap.Error(err),
			zap.Int64("line_review_id", review.ID),
		)
		return fmt.Errorf("update line review %d: %w", review.ID, err)
	}
	return nil
}

func (r *lineReviewRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE line_reviews
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to delete line review",
			zap.Error(err),
			zap.Int64("line_review_id", id),
		)
		return fmt.Errorf("delete line review %d: %w", id, err)
	}
	return nil
}

func (r *lineReviewRepository) FindFeedByMovie(ctx context.Context, movieID int64, q feed.Query) ([]entity.LineReview, error) {
	return r.findFeed(ctx, "lr.movie_id", movieID, q)
}

func (r *lineReviewRepository) FindFeedByUser(ctx context.Context, userID int64, q feed.Query) ([]entity.LineReview, error) {
	return r.findFeed(ctx, "lr.user_id", userID, q)
}

func (r *lineReviewRepository) findFeed(ctx context.Context, parentCol string, parentID int64, q feed.Query) ([]entity.LineReview, error) {
	args := feed.NewArgs(parentID)
	query, err := pageQuery(
		lineReviewSelect+" WHERE "+parentCol+" = $1 AND lr.deleted_at IS NULL",
		q, lineReviewColumns, args,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args.Values()...)
	if err != nil {
		r.log.Error("Failed to query line review feed",
			zap.Error(err),
			zap.String("parent", parentCol),
			zap.Int64("parent_id", parentID),
			zap.String("sort", string(q.Sort)),
		)
		return nil, fmt.Errorf("query line review feed: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, collectLineReview)
	if err != nil {
		return nil, fmt.Errorf("scan line review feed: %w", err)
	}
	return reviews, nil
}

// CountReactions aggregates likes and dislikes for every id in one query. Ids without
// reactions are absent from the result.
func (r *lineReviewRepository) CountReactions(ctx context.Context, ids []int64) (map[int64]entity.ReactionCounts, error) {
	query := `
		SELECT line_review_id,
		       COUNT(*) FILTER (WHERE preference = 'LIKE'),
		       COUNT(*) FILTER (WHERE preference = 'DISLIKE')
		FROM line_review_likes
		WHERE line_review_id = ANY($1)
		GROUP BY line_review_id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to count line review reactions", zap.Error(err), zap.Int("ids", len(ids)))
		return nil, fmt.Errorf("count line review reactions: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]entity.ReactionCounts, len(ids))
	for rows.Next() {
		var id int64
		var c entity.ReactionCounts
		if err := rows.Scan(&id, &c.Likes, &c.Dislikes); err != nil {
			return nil, fmt.Errorf("scan reaction counts: %w", err)
		}
		counts[id] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reaction counts: %w", err)
	}
	return counts, nil
}

func (r *lineReviewRepository) FindCallerReactions(ctx context.Context, ids []int64, userID int64) (map[int64]entity.Preference, error) {
	query := `
		SELECT line_review_id, preference
		FROM line_review_likes
		WHERE line_review_id = ANY($1) AND user_id = $2
	`

	rows, err := r.db.Query(ctx, query, ids, userID)
	if err != nil {
		r.log.Error("Failed to find caller reactions",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find reactions of user %d: %w", userID, err)
	}
	defer rows.Close()

	mine := make(map[int64]entity.Preference)
	for rows.Next() {
		var id int64
		var p entity.Preference
		if err := rows.Scan(&id, &p); err != nil {
			return nil, fmt.Errorf("scan caller reaction: %w", err)
		}
		mine[id] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate caller reactions: %w", err)
	}
	return mine, nil
}

func (r *lineReviewRepository) UpsertReaction(ctx context.Context, reaction *entity.LineReviewReaction) (bool, error) {
	query := `
		INSERT INTO line_review_likes (line_review_id, user_id, preference, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (line_review_id, user_id)
		DO UPDATE SET preference = EXCLUDED.preference
		WHERE line_review_likes.preference <> EXCLUDED.preference
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		reaction.LineReviewID,
		reaction.UserID,
		reaction.Preference,
		reaction.CreatedAt,
	).Scan(&reaction.ID)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to upsert line review reaction",
			zap.Error(err),
			zap.Int64("line_review_id", reaction.LineReviewID),
			zap.Int64("user_id", reaction.UserID),
		)
		return false, fmt.Errorf("upsert reaction on line review %d: %w", reaction.LineReviewID, err)
	}
	return true, nil
}

func (r *lineReviewRepository) DeleteReaction(ctx context.Context, reviewID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM line_review_likes WHERE line_review_id = $1 AND user_id = $2`,
		reviewID, userID,
	)
	if err != nil {
		r.log.Error("Failed to delete line review reaction",
			zap.Error(err),
			zap.Int64("line_review_id", reviewID),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("delete reaction on line review %d: %w", reviewID, err)
	}
	return result.RowsAffected() > 0, nil
}
