package adaptor

import (
	"fmt"
	"net/http"

	"picky-feed/internal/dto/request"
	"picky-feed/internal/feed"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"

	"go.uber.org/zap"
)

type FeedHandler struct {
	service usecase.FeedService
	log     *zap.Logger
}

func NewFeedHandler(service usecase.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{
		service: service,
		log:     log.With(zap.String("handler", "feed")),
	}
}

// ListReviewsByMovie handles GET /api/movies/{id}/line-reviews?sort=LATEST|LIKES
func (h *FeedHandler) ListReviewsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, err := parseFeedRequest(r)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews by movie")
		return
	}

	page, err := h.service.ListReviewsByMovie(r.Context(), movieID, callerOf(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews by movie")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListReviewsByUser handles GET /api/users/{id}/line-reviews
func (h *FeedHandler) ListReviewsByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, err := parseFeedRequest(r)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews by user")
		return
	}

	page, err := h.service.ListReviewsByUser(r.Context(), userID, callerOf(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list reviews by user")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListBoardsByMovie handles GET /api/movies/{id}/boards
func (h *FeedHandler) ListBoardsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, err := parseFeedRequest(r)
	if err != nil {
		handleServiceError(w, h.log, err, "list boards by movie")
		return
	}

	page, err := h.service.ListBoardsByMovie(r.Context(), movieID, callerOf(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list boards by movie")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListBoards handles GET /api/boards
func (h *FeedHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	req, err := parseFeedRequest(r)
	if err != nil {
		handleServiceError(w, h.log, err, "list boards")
		return
	}

	page, err := h.service.ListBoards(r.Context(), callerOf(r), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list boards")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListBoardComments handles GET /api/boards/{id}/comments
func (h *FeedHandler) ListBoardComments(w http.ResponseWriter, r *http.Request) {
	boardID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	req, err := parseFeedRequest(r)
	if err != nil {
		handleServiceError(w, h.log, err, "list board comments")
		return
	}

	page, err := h.service.ListBoardComments(r.Context(), boardID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "list board comments")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// parseFeedRequest reads sort, last_id, last_created_at and size. Malformed cursor
// parameters are reported as invalid cursors.
func parseFeedRequest(r *http.Request) (request.FeedRequest, error) {
	query := r.URL.Query()

	lastID, err := utils.ParseOptionalInt64(query.Get("last_id"))
	if err != nil {
		return request.FeedRequest{}, fmt.Errorf("%w: %w", feed.ErrInvalidCursor, err)
	}

	lastCreatedAt, err := utils.ParseOptionalTime(query.Get("last_created_at"))
	if err != nil {
		return request.FeedRequest{}, fmt.Errorf("%w: %w", feed.ErrInvalidCursor, err)
	}

	return request.FeedRequest{
		Sort:          query.Get("sort"),
		LastID:        lastID,
		LastCreatedAt: lastCreatedAt,
		Size:          utils.ParseInt(query.Get("size"), 0),
	}, nil
}

// callerOf is anonymous unless a session middleware put a user id in the context.
func callerOf(r *http.Request) feed.Caller {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return feed.Anonymous()
	}
	return feed.UserCaller(userID)
}
