package request

type BoardContentRequest struct {
	URL       string `json:"url" validate:"required,url"`
	MediaType string `json:"media_type" validate:"required,oneof=IMAGE VIDEO"`
}

// CreateBoardRequest does not cap Contents; the board service rejects more than five.
type CreateBoardRequest struct {
	MovieID   int64                 `json:"movie_id" validate:"required,gt=0"`
	Context   string                `json:"context" validate:"required,max=2000"`
	IsSpoiler bool                  `json:"is_spoiler"`
	Contents  []BoardContentRequest `json:"contents" validate:"dive"`
}

type UpdateBoardRequest struct {
	Context   string `json:"context" validate:"required,max=2000"`
	IsSpoiler bool   `json:"is_spoiler"`
}

type CreateCommentRequest struct {
	Context string `json:"context" validate:"required,max=500"`
}
