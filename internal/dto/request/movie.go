package request

type MovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Plot        *string `json:"plot,omitempty"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	Runtime     int     `json:"runtime" validate:"required,min=1,max=999"`
	GenreIDs    []int64 `json:"genre_ids,omitempty" validate:"dive,gt=0"`
}
