package adaptor

import (
	"encoding/json"
	"net/http"

	"picky-feed/internal/dto/request"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

type LineReviewHandler struct {
	service usecase.LineReviewService
	log     *zap.Logger
}

func NewLineReviewHandler(service usecase.LineReviewService, log *zap.Logger) *LineReviewHandler {
	return &LineReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "line_review")),
	}
}

// CreateLineReview handles POST /api/line-reviews (protected)
func (h *LineReviewHandler) CreateLineReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateLineReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateLineReview(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create line review")
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateLineReview handles PUT /api/line-reviews/{id} (protected, author only)
func (h *LineReviewHandler) UpdateLineReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateLineReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateLineReview(r.Context(), reviewID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update line review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteLineReview handles DELETE /api/line-reviews/{id} (protected, author only)
func (h *LineReviewHandler) DeleteLineReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteLineReview(r.Context(), reviewID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete line review")
		return
	}

	utils.ResponseSuccess(w, "Line review deleted", nil)
}

// React handles PUT /api/line-reviews/{id}/reaction (protected)
func (h *LineReviewHandler) React(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.ReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.React(r.Context(), reviewID, userID, &req); err != nil {
		handleServiceError(w, h.log, err, "react to line review")
		return
	}

	utils.ResponseSuccess(w, "Reaction saved", nil)
}

// Unreact handles DELETE /api/line-reviews/{id}/reaction (protected)
func (h *LineReviewHandler) Unreact(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	reviewID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Unreact(r.Context(), reviewID, userID); err != nil {
		handleServiceError(w, h.log, err, "remove line review reaction")
		return
	}

	utils.ResponseSuccess(w, "Reaction removed", nil)
}
