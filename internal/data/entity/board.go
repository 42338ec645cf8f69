package entity

type BoardContentType string

const (
	BoardContentImage BoardContentType = "IMAGE"
	BoardContentVideo BoardContentType = "VIDEO"
)

// MaxBoardContents is enforced when a board is created.
const MaxBoardContents = 5

type Board struct {
	Base
	UserID         int64  `db:"user_id"`
	MovieID        int64  `db:"movie_id"`
	WriterNickname string `db:"writer_nickname"`
	Context        string `db:"context"`
	IsSpoiler      bool   `db:"is_spoiler"`
	Contents       []BoardContent
}

type BoardContent struct {
	ID          int64            `db:"id"`
	BoardID     int64            `db:"board_id"`
	ContentURL  string           `db:"content_url"`
	ContentType BoardContentType `db:"content_type"`
}

// BoardFeedRow is a board joined with its writer and movie for display.
type BoardFeedRow struct {
	Board
	WriterAvatarURL *string
	MovieTitle      string
}

// BoardCounts is the live aggregate over a board's likes and comments.
type BoardCounts struct {
	Likes    int64
	Comments int64
}

type BoardComment struct {
	BaseSimple
	BoardID    int64  `db:"board_id"`
	UserID     int64  `db:"user_id"`
	WriterName string `db:"writer_name"`
	Context    string `db:"context"`
}
