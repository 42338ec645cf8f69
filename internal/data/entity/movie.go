package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Plot        *string   `db:"plot"`
	PosterURL   *string   `db:"poster_url"`
	ReleaseDate time.Time `db:"release_date"`
	Runtime     int       `db:"runtime"`
}

// GenderRating is the rating aggregate over reviewers of one gender.
type GenderRating struct {
	Average     float64
	ReviewCount int64
}

// MovieRating aggregates the live line reviews of a movie.
type MovieRating struct {
	Average     float64
	ReviewCount int64
	Male        GenderRating
	Female      GenderRating
	// Stars[i] counts reviews whose rating rounds up to i+1 stars.
	Stars [5]int64
}

// MovieLikes is the like count of a movie and whether the caller is among the likers.
type MovieLikes struct {
	Count         int64
	LikedByCaller bool
}
