package wire

import (
	"picky-feed/internal/adaptor"
	"picky-feed/internal/data/repository"
	"picky-feed/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireLineReview(
	r chi.Router,
	lineReviewHandler *adaptor.LineReviewHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/line-reviews", lineReviewHandler.CreateLineReview)
		r.Put("/api/line-reviews/{id}", lineReviewHandler.UpdateLineReview)
		r.Delete("/api/line-reviews/{id}", lineReviewHandler.DeleteLineReview)
		r.Put("/api/line-reviews/{id}/reaction", lineReviewHandler.React)
		r.Delete("/api/line-reviews/{id}/reaction", lineReviewHandler.Unreact)
	})
}
