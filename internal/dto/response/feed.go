package response

import (
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/feed"
)

type ReviewRow struct {
	ID             int64         `json:"id"`
	AuthorID       int64         `json:"author_id"`
	AuthorNickname string        `json:"author_nickname"`
	MovieID        int64         `json:"movie_id"`
	Rating         float64       `json:"rating"`
	Text           string        `json:"text"`
	IsSpoiler      bool          `json:"is_spoiler"`
	LikeCount      int64         `json:"like_count"`
	DislikeCount   int64         `json:"dislike_count"`
	CreatedAt      time.Time     `json:"created_at"`
	CallerIsAuthor bool          `json:"caller_is_author"`
	CallerReaction feed.Reaction `json:"caller_reaction"`
}

type BoardContent struct {
	URL       string                  `json:"url"`
	MediaType entity.BoardContentType `json:"media_type"`
}

type BoardRow struct {
	ID              int64          `json:"id"`
	AuthorID        int64          `json:"author_id"`
	AuthorNickname  string         `json:"author_nickname"`
	AuthorAvatarURL *string        `json:"author_avatar_url"`
	MovieID         int64          `json:"movie_id"`
	MovieTitle      string         `json:"movie_title"`
	Text            string         `json:"text"`
	IsSpoiler       bool           `json:"is_spoiler"`
	LikeCount       int64          `json:"like_count"`
	CommentCount    int64          `json:"comment_count"`
	Contents        []BoardContent `json:"contents"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	CallerHasLiked  bool           `json:"caller_has_liked"`
}

type CommentRow struct {
	ID             int64     `json:"id"`
	BoardID        int64     `json:"board_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorNickname string    `json:"author_nickname"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func ReviewToRow(lr entity.LineReview, counts entity.ReactionCounts, caller feed.Caller, mine feed.Reaction) ReviewRow {
	return ReviewRow{
		ID:             lr.ID,
		AuthorID:       lr.UserID,
		AuthorNickname: lr.WriterNickname,
		MovieID:        lr.MovieID,
		Rating:         lr.Rating,
		Text:           lr.Context,
		IsSpoiler:      lr.IsSpoiler,
		LikeCount:      counts.Likes,
		DislikeCount:   counts.Dislikes,
		CreatedAt:      lr.CreatedAt,
		CallerIsAuthor: caller.IsAuthor(lr.UserID),
		CallerReaction: mine,
	}
}

func BoardToRow(b entity.BoardFeedRow, counts entity.BoardCounts, contents []entity.BoardContent, liked bool) BoardRow {
	row := BoardRow{
		ID:              b.ID,
		AuthorID:        b.UserID,
		AuthorNickname:  b.WriterNickname,
		AuthorAvatarURL: b.WriterAvatarURL,
		MovieID:         b.MovieID,
		MovieTitle:      b.MovieTitle,
		Text:            b.Context,
		IsSpoiler:       b.IsSpoiler,
		LikeCount:       counts.Likes,
		CommentCount:    counts.Comments,
		Contents:        make([]BoardContent, len(contents)),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		CallerHasLiked:  liked,
	}
	for i, c := range contents {
		row.Contents[i] = BoardContent{URL: c.ContentURL, MediaType: c.ContentType}
	}
	return row
}

func CommentToRow(c entity.BoardComment) CommentRow {
	return CommentRow{
		ID:             c.ID,
		BoardID:        c.BoardID,
		AuthorID:       c.UserID,
		AuthorNickname: c.WriterName,
		Text:           c.Context,
		CreatedAt:      c.CreatedAt,
	}
}
