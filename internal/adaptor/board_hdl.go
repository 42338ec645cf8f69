package adaptor

import (
	"encoding/json"
	"net/http"

	"picky-feed/internal/dto/request"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

type BoardHandler struct {
	service usecase.BoardService
	log     *zap.Logger
}

func NewBoardHandler(service usecase.BoardService, log *zap.Logger) *BoardHandler {
	return &BoardHandler{
		service: service,
		log:     log.With(zap.String("handler", "board")),
	}
}

// CreateBoard handles POST /api/boards (protected)
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	board, err := h.service.CreateBoard(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create board")
		return
	}

	utils.ResponseCreated(w, "success", board)
}

// UpdateBoard handles PUT /api/boards/{id} (protected, author only)
func (h *BoardHandler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	board, err := h.service.UpdateBoard(r.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update board")
		return
	}

	utils.ResponseSuccess(w, "success", board)
}

// DeleteBoard handles DELETE /api/boards/{id} (protected, author only)
func (h *BoardHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteBoard(r.Context(), boardID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete board")
		return
	}

	utils.ResponseSuccess(w, "Board deleted", nil)
}

// LikeBoard handles PUT /api/boards/{id}/like (protected)
func (h *BoardHandler) LikeBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.LikeBoard(r.Context(), boardID, userID); err != nil {
		handleServiceError(w, h.log, err, "like board")
		return
	}

	utils.ResponseSuccess(w, "Board liked", nil)
}

// UnlikeBoard handles DELETE /api/boards/{id}/like (protected)
func (h *BoardHandler) UnlikeBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.UnlikeBoard(r.Context(), boardID, userID); err != nil {
		handleServiceError(w, h.log, err, "unlike board")
		return
	}

	utils.ResponseSuccess(w, "Board unliked", nil)
}

// CreateComment handles POST /api/boards/{id}/comments (protected)
func (h *BoardHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), boardID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "success", comment)
}

// DeleteComment handles DELETE /api/comments/{id} (protected, author only)
func (h *BoardHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	commentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID, userID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseSuccess(w, "Comment deleted", nil)
}
