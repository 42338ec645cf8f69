package adaptor

import (
	"errors"
	"net/http"

	"picky-feed/internal/feed"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Movie      *MovieHandler
	Feed       *FeedHandler
	LineReview *LineReviewHandler
	Board      *BoardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, log),
		User:       NewUserHandler(service.User, log),
		Movie:      NewMovieHandler(service.Movie, log),
		Feed:       NewFeedHandler(service.Feed, log),
		LineReview: NewLineReviewHandler(service.LineReview, log),
		Board:      NewBoardHandler(service.Board, log),
	}
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Client errors are logged at Warn, everything else at Error.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validation *usecase.ValidationError

	switch {
	case errors.As(err, &validation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validation.Fields)

	case errors.Is(err, feed.ErrInvalidCursor),
		errors.Is(err, feed.ErrUnsupportedSortType),
		errors.Is(err, usecase.ErrInvalidInput):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid email or password")

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - not the author", zap.Error(err))
		utils.ResponseForbidden(w, "Only the author can do this")

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrDeleted):
		log.Warn(operation+" failed - deleted", zap.Error(err))
		utils.ResponseGone(w, err.Error())

	case errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// pathID reads a positive int64 URL parameter and writes a 400 when it is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := utils.ParseID(chi.URLParam(r, name))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid "+name, nil)
		return 0, false
	}
	return id, true
}

func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
	}
	return userID, ok
}
