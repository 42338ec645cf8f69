package wire

import (
	"picky-feed/internal/adaptor"
	"picky-feed/internal/data/repository"
	"picky-feed/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalSession(repo.Session, log))

		r.Get("/api/movies/{id}", movieHandler.GetMovieByID)
	})

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Put("/api/movies/{id}/like", movieHandler.LikeMovie)
		r.Delete("/api/movies/{id}/like", movieHandler.UnlikeMovie)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", movieHandler.CreateMovie)
		r.Put("/{id}", movieHandler.UpdateMovie)
	})
}
