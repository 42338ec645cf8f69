package request

type CreateLineReviewRequest struct {
	MovieID   int64   `json:"movie_id" validate:"required,gt=0"`
	Rating    float64 `json:"rating" validate:"gt=0,lte=5"`
	Context   string  `json:"context" validate:"required,max=500"`
	IsSpoiler bool    `json:"is_spoiler"`
}

type UpdateLineReviewRequest struct {
	Context   string `json:"context" validate:"required,max=500"`
	IsSpoiler bool   `json:"is_spoiler"`
}

type ReactionRequest struct {
	Preference string `json:"preference" validate:"required,oneof=LIKE DISLIKE"`
}
