package usecase

import (
	"context"
	"fmt"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
)

// The live* helpers load a parent row and reject it when it is missing or tombstoned.
// Repository errors are returned wrapped and unclassified.

func liveMovie(ctx context.Context, movies repository.MovieRepository, id int64) (*entity.Movie, error) {
	movie, err := movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}
	if movie == nil {
		return nil, notFound("movie", id)
	}
	if movie.IsDeleted() {
		return nil, deleted("movie", id)
	}
	return movie, nil
}

func liveBoard(ctx context.Context, boards repository.BoardRepository, id int64) (*entity.Board, error) {
	board, err := boards.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find board %d: %w", id, err)
	}
	if board == nil {
		return nil, notFound("board", id)
	}
	if board.IsDeleted() {
		return nil, deleted("board", id)
	}
	return board, nil
}

func liveLineReview(ctx context.Context, reviews repository.LineReviewRepository, id int64) (*entity.LineReview, error) {
	review, err := reviews.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find line review %d: %w", id, err)
	}
	if review == nil {
		return nil, notFound("line review", id)
	}
	if review.IsDeleted() {
		return nil, deleted("line review", id)
	}
	return review, nil
}
