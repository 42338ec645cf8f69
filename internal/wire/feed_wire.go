package wire

import (
	"picky-feed/internal/adaptor"
	"picky-feed/internal/data/repository"
	"picky-feed/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireFeed mounts the list endpoints. They are public; a valid session only personalises
// the caller fields of each row.
func wireFeed(
	r chi.Router,
	feedHandler *adaptor.FeedHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSession(repo.Session, log))

		r.Get("/api/movies/{id}/line-reviews", feedHandler.ListReviewsByMovie)
		r.Get("/api/users/{id}/line-reviews", feedHandler.ListReviewsByUser)
		r.Get("/api/movies/{id}/boards", feedHandler.ListBoardsByMovie)
		r.Get("/api/boards", feedHandler.ListBoards)
		r.Get("/api/boards/{id}/comments", feedHandler.ListBoardComments)
	})
}
