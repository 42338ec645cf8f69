package repository

import (
	"context"
	"errors"
	"fmt"

	"picky-feed/internal/data/entity"
	"picky-feed/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie, genreIDs []int64) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	// Update rewrites a live movie. A nil genreIDs keeps the current genres.
	Update(ctx context.Context, movie *entity.Movie, genreIDs []int64) error
	FindGenres(ctx context.Context, movieID int64) ([]string, error)
	RatingStats(ctx context.Context, movieID int64) (*entity.MovieRating, error)

	// Like and Unlike report whether a row was written.
	Like(ctx context.Context, movieID, userID int64) (bool, error)
	Unlike(ctx context.Context, movieID, userID int64) (bool, error)
	// CountLikes reports LikedByCaller only for a positive callerID.
	CountLikes(ctx context.Context, movieID, callerID int64) (entity.MovieLikes, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// Create inserts the movie and its genre links in one transaction
func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, genreIDs []int64) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (title, plot, poster_url, release_date, runtime, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, query,
			movie.Title,
			movie.Plot,
			movie.PosterURL,
			movie.ReleaseDate,
			movie.Runtime,
			movie.CreatedAt,
			movie.UpdatedAt,
		).Scan(&movie.ID); err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}

		for _, genreID := range genreIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				movie.ID, genreID,
			); err != nil {
				return fmt.Errorf("link genre %d: %w", genreID, err)
			}
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

// FindByID returns soft-deleted movies too; callers decide what a tombstone means.
func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT id, title, plot, poster_url, release_date, runtime,
		       created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Plot,
		&movie.PosterURL,
		&movie.ReleaseDate,
		&movie.Runtime,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) FindGenres(ctx context.Context, movieID int64) ([]string, error) {
	query := `
		SELECT g.name
		FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = $1
		ORDER BY g.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find movie genres", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("find genres of movie %d: %w", movieID, err)
	}
	defer rows.Close()

	genres := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}
	return genres, nil
}

// RatingStats aggregates the live line reviews of a movie: overall and per reviewer gender, plus
// a per-star histogram. Empty groups average 0.
func (r *movieRepository) RatingStats(ctx context.Context, movieID int64) (*entity.MovieRating, error) {
	query := `
		SELECT COALESCE(AVG(lr.rating), 0), COUNT(*),
		       COALESCE(AVG(lr.rating) FILTER (WHERE u.gender = 'MALE'), 0),
		       COUNT(*) FILTER (WHERE u.gender = 'MALE'),
		       COALESCE(AVG(lr.rating) FILTER (WHERE u.gender = 'FEMALE'), 0),
		       COUNT(*) FILTER (WHERE u.gender = 'FEMALE'),
		       COUNT(*) FILTER (WHERE CEIL(lr.rating) = 1),
		       COUNT(*) FILTER (WHERE CEIL(lr.rating) = 2),
		       COUNT(*) FILTER (WHERE CEIL(lr.rating) = 3),
		       COUNT(*) FILTER (WHERE CEIL(lr.rating) = 4),
		       COUNT(*) FILTER (WHERE CEIL(lr.rating) = 5)
		FROM line_reviews lr
		JOIN users u ON u.id = lr.user_id
		WHERE lr.movie_id = $1 AND lr.deleted_at IS NULL
	`

	var stats entity.MovieRating
	err := r.db.QueryRow(ctx, query, movieID).Scan(
		&stats.Average,
		&stats.ReviewCount,
		&stats.Male.Average,
		&stats.Male.ReviewCount,
		&stats.Female.Average,
		&stats.Female.ReviewCount,
		&stats.Stars[0],
		&stats.Stars[1],
		&stats.Stars[2],
		&stats.Stars[3],
		&stats.Stars[4],
	)
	if err != nil {
		r.log.Error("Failed to compute rating stats", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, fmt.Errorf("rating stats of movie %d: %w", movieID, err)
	}

	return &stats, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie, genreIDs []int64) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE movies
			SET title = $2, plot = $3, poster_url = $4, release_date = $5, runtime = $6, updated_at = $7
			WHERE id = $1 AND deleted_at IS NULL
		`
		if _, err := tx.Exec(ctx, query,
			movie.ID,
			movie.Title,
			movie.Plot,
			movie.PosterURL,
			movie.ReleaseDate,
			movie.Runtime,
			movie.UpdatedAt,
		); err != nil {
			return fmt.Errorf("update movie: %w", err)
		}

		if genreIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movie.ID); err != nil {
			return fmt.Errorf("clear genres: %w", err)
		}
		for _, genreID := range genreIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				movie.ID, genreID,
			); err != nil {
				return fmt.Errorf("link genre %d: %w", genreID, err)
			}
		}
		return nil
	})

	if err != nil {
		r.log.Error("Failed to update movie", zap.Error(err), zap.Int64("movie_id", movie.ID))
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}
	return nil
}

func (r *movieRepository) Like(ctx context.Context, movieID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx, `
		INSERT INTO movie_likes (movie_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (movie_id, user_id) DO NOTHING
	`, movieID, userID)
	if err != nil {
		r.log.Error("Failed to like movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("like movie %d: %w", movieID, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *movieRepository) Unlike(ctx context.Context, movieID, userID int64) (bool, error) {
	result, err := r.db.Exec(ctx,
		`DELETE FROM movie_likes WHERE movie_id = $1 AND user_id = $2`,
		movieID, userID,
	)
	if err != nil {
		r.log.Error("Failed to unlike movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int64("user_id", userID),
		)
		return false, fmt.Errorf("unlike movie %d: %w", movieID, err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *movieRepository) CountLikes(ctx context.Context, movieID, callerID int64) (entity.MovieLikes, error) {
	query := `
		SELECT COUNT(*), COALESCE(BOOL_OR(user_id = $2), FALSE)
		FROM movie_likes
		WHERE movie_id = $1
	`

	var likes entity.MovieLikes
	if err := r.db.QueryRow(ctx, query, movieID, callerID).Scan(&likes.Count, &likes.LikedByCaller); err != nil {
		r.log.Error("Failed to count movie likes", zap.Error(err), zap.Int64("movie_id", movieID))
		return entity.MovieLikes{}, fmt.Errorf("count likes of movie %d: %w", movieID, err)
	}
	return likes, nil
}
