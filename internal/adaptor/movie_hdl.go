package adaptor

import (
	"encoding/json"
	"net/http"

	"picky-feed/internal/dto/request"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovieByID handles GET /api/movies/{id}. A session only fills is_liked.
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), movieID, callerOf(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovie handles POST /api/admin/movies (admin only)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// UpdateMovie handles PUT /api/admin/movies/{id} (admin only)
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), movieID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// LikeMovie handles PUT /api/movies/{id}/like (protected)
func (h *MovieHandler) LikeMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.LikeMovie(r.Context(), movieID, userID); err != nil {
		handleServiceError(w, h.log, err, "like movie")
		return
	}

	utils.ResponseSuccess(w, "Movie liked", nil)
}

// UnlikeMovie handles DELETE /api/movies/{id}/like (protected)
func (h *MovieHandler) UnlikeMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.UnlikeMovie(r.Context(), movieID, userID); err != nil {
		handleServiceError(w, h.log, err, "unlike movie")
		return
	}

	utils.ResponseSuccess(w, "Movie unliked", nil)
}
