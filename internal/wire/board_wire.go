package wire

import (
	"picky-feed/internal/adaptor"
	"picky-feed/internal/data/repository"
	"picky-feed/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBoard(
	r chi.Router,
	boardHandler *adaptor.BoardHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		r.Post("/api/boards", boardHandler.CreateBoard)
		r.Put("/api/boards/{id}", boardHandler.UpdateBoard)
		r.Delete("/api/boards/{id}", boardHandler.DeleteBoard)
		r.Put("/api/boards/{id}/like", boardHandler.LikeBoard)
		r.Delete("/api/boards/{id}/like", boardHandler.UnlikeBoard)

		r.Post("/api/boards/{id}/comments", boardHandler.CreateComment)
		r.Delete("/api/comments/{id}", boardHandler.DeleteComment)
	})
}
