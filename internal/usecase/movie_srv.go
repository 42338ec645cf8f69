package usecase

import (
	"context"
	"fmt"
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/dto/request"
	"picky-feed/internal/dto/response"
	"picky-feed/internal/feed"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovieByID(ctx context.Context, movieID int64, caller feed.Caller) (*response.MovieDetailResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (*response.MovieResponse, error)
	LikeMovie(ctx context.Context, movieID, userID int64) error
	UnlikeMovie(ctx context.Context, movieID, userID int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID int64, caller feed.Caller) (*response.MovieDetailResponse, error) {
	movie, err := liveMovie(ctx, s.repo.Movie, movieID)
	if err != nil {
		return nil, err
	}

	genres, err := s.repo.Movie.FindGenres(ctx, movieID)
	if err != nil {
		s.log.Warn("Failed to get genres for movie",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
	}

	rating, err := s.repo.Movie.RatingStats(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("rating stats: %w", err)
	}

	callerID, _ := caller.ID()
	likes, err := s.repo.Movie.CountLikes(ctx, movieID, callerID)
	if err != nil {
		return nil, fmt.Errorf("movie likes: %w", err)
	}

	resp := response.MovieToDetailResponse(movie, genres, rating, likes)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Plot:        req.Plot,
		PosterURL:   req.PosterURL,
		ReleaseDate: releaseDate,
		Runtime:     req.Runtime,
	}

	if err := s.repo.Movie.Create(ctx, movie, req.GenreIDs); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	genres, err := s.repo.Movie.FindGenres(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to load genres of new movie", zap.Error(err), zap.Int64("movie_id", movie.ID))
	}

	s.log.Info("Movie created", zap.Int64("movie_id", movie.ID), zap.String("title", movie.Title))

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

// UpdateMovie replaces every editable field. Genres are replaced only when genre_ids is sent.
func (s *movieService) UpdateMovie(ctx context.Context, movieID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update movie validation failed", zap.Error(err), zap.Int64("movie_id", movieID))
		return nil, err
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	movie, err := liveMovie(ctx, s.repo.Movie, movieID)
	if err != nil {
		return nil, err
	}

	movie.Title = req.Title
	movie.Plot = req.Plot
	movie.PosterURL = req.PosterURL
	movie.ReleaseDate = releaseDate
	movie.Runtime = req.Runtime
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie, req.GenreIDs); err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}

	genres, err := s.repo.Movie.FindGenres(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to load genres of updated movie", zap.Error(err), zap.Int64("movie_id", movie.ID))
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", movie.ID))

	resp := response.MovieToResponse(movie, genres)
	return &resp, nil
}

// LikeMovie is idempotent; liking twice keeps one like.
func (s *movieService) LikeMovie(ctx context.Context, movieID, userID int64) error {
	if _, err := liveMovie(ctx, s.repo.Movie, movieID); err != nil {
		return err
	}

	liked, err := s.repo.Movie.Like(ctx, movieID, userID)
	if err != nil {
		return fmt.Errorf("like movie: %w", err)
	}
	if liked {
		s.log.Debug("Movie liked", zap.Int64("movie_id", movieID), zap.Int64("user_id", userID))
	}
	return nil
}

func (s *movieService) UnlikeMovie(ctx context.Context, movieID, userID int64) error {
	if _, err := liveMovie(ctx, s.repo.Movie, movieID); err != nil {
		return err
	}

	if _, err := s.repo.Movie.Unlike(ctx, movieID, userID); err != nil {
		return fmt.Errorf("unlike movie: %w", err)
	}
	return nil
}

func parseReleaseDate(raw string) (time.Time, error) {
	releaseDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, &ValidationError{Fields: map[string]string{"ReleaseDate": "Must match the layout 2006-01-02"}}
	}
	return releaseDate, nil
}
