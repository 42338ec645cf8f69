package entity

import "time"

type LineReview struct {
	Base
	UserID         int64   `db:"user_id"`
	MovieID        int64   `db:"movie_id"`
	WriterNickname string  `db:"writer_nickname"`
	Rating         float64 `db:"rating"` // (0, 5]
	Context        string  `db:"context"`
	IsSpoiler      bool    `db:"is_spoiler"`
}

type Preference string

const (
	PreferenceLike    Preference = "LIKE"
	PreferenceDislike Preference = "DISLIKE"
)

func (p Preference) Valid() bool {
	return p == PreferenceLike || p == PreferenceDislike
}

// LineReviewReaction is unique per (line_review_id, user_id).
type LineReviewReaction struct {
	ID           int64      `db:"id"`
	LineReviewID int64      `db:"line_review_id"`
	UserID       int64      `db:"user_id"`
	Preference   Preference `db:"preference"`
	CreatedAt    time.Time  `db:"created_at"`
}

// ReactionCounts is the live aggregate over a review's reactions.
type ReactionCounts struct {
	Likes    int64
	Dislikes int64
}
