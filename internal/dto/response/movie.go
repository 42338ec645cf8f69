package response

import (
	"math"
	"time"

	"picky-feed/internal/data/entity"
)

type MovieResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Plot        *string   `json:"plot,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	ReleaseDate string    `json:"release_date"`
	Runtime     int       `json:"runtime"`
	Genres      []string  `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
}

type MovieDetailResponse struct {
	MovieResponse
	AverageRating      float64              `json:"average_rating"`
	LineReviewCount    int64                `json:"line_review_count"`
	MaleRating         GenderRatingResponse `json:"male_rating"`
	FemaleRating       GenderRatingResponse `json:"female_rating"`
	RatingDistribution []StarCount          `json:"rating_distribution"`
	LikeCount          int64                `json:"like_count"`
	IsLiked            bool                 `json:"is_liked"`
}

type GenderRatingResponse struct {
	AverageRating   float64 `json:"average_rating"`
	LineReviewCount int64   `json:"line_review_count"`
}

// StarCount is one bar of the rating histogram.
type StarCount struct {
	Stars int   `json:"stars"`
	Count int64 `json:"count"`
}

func MovieToResponse(movie *entity.Movie, genres []string) MovieResponse {
	if genres == nil {
		genres = []string{}
	}
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Plot:        movie.Plot,
		PosterURL:   movie.PosterURL,
		ReleaseDate: movie.ReleaseDate.Format("2006-01-02"),
		Runtime:     movie.Runtime,
		Genres:      genres,
		CreatedAt:   movie.CreatedAt,
	}
}

func MovieToDetailResponse(movie *entity.Movie, genres []string, rating *entity.MovieRating, likes entity.MovieLikes) MovieDetailResponse {
	if rating == nil {
		rating = &entity.MovieRating{}
	}
	resp := MovieDetailResponse{
		MovieResponse:      MovieToResponse(movie, genres),
		RatingDistribution: make([]StarCount, 0, len(rating.Stars)),
		LikeCount:          likes.Count,
		IsLiked:            likes.LikedByCaller,
	}

	resp.AverageRating = roundRating(rating.Average)
	resp.LineReviewCount = rating.ReviewCount
	resp.MaleRating = GenderRatingResponse{AverageRating: roundRating(rating.Male.Average), LineReviewCount: rating.Male.ReviewCount}
	resp.FemaleRating = GenderRatingResponse{AverageRating: roundRating(rating.Female.Average), LineReviewCount: rating.Female.ReviewCount}
	for i, n := range rating.Stars {
		resp.RatingDistribution = append(resp.RatingDistribution, StarCount{Stars: i + 1, Count: n})
	}
	return resp
}

// roundRating keeps one decimal, as shown on the detail page.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
