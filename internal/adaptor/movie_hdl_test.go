package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"picky-feed/internal/dto/request"
	"picky-feed/internal/dto/response"
	"picky-feed/internal/feed"
	"picky-feed/internal/usecase"
	"picky-feed/pkg/utils"
)

type stubMovies struct {
	usecase.MovieService
	err     error
	caller  feed.Caller
	movieID int64
	userID  int64
	seen    *request.MovieRequest
}

func (s *stubMovies) GetMovieByID(_ context.Context, movieID int64, caller feed.Caller) (*response.MovieDetailResponse, error) {
	s.movieID, s.caller = movieID, caller
	if s.err != nil {
		return nil, s.err
	}
	return &response.MovieDetailResponse{MovieResponse: response.MovieResponse{ID: movieID}}, nil
}

func (s *stubMovies) UpdateMovie(_ context.Context, movieID int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	s.movieID, s.seen = movieID, req
	if s.err != nil {
		return nil, s.err
	}
	return &response.MovieResponse{ID: movieID, Title: req.Title}, nil
}

func (s *stubMovies) LikeMovie(_ context.Context, movieID, userID int64) error {
	s.movieID, s.userID = movieID, userID
	return s.err
}

func movieRouter(svc usecase.MovieService, userID int64) http.Handler {
	h := NewMovieHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID > 0 {
				r = r.WithContext(utils.SetUserContext(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/api/movies/{id}", h.GetMovieByID)
	r.Put("/api/movies/{id}/like", h.LikeMovie)
	r.Put("/api/admin/movies/{id}", h.UpdateMovie)
	return r
}

func TestGetMovieByIDHandler_Caller(t *testing.T) {
	t.Parallel()

	svc := &stubMovies{}
	rec := httptest.NewRecorder()
	movieRouter(svc, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.movieID)
	assert.Equal(t, feed.Anonymous(), svc.caller)

	svc = &stubMovies{}
	rec = httptest.NewRecorder()
	movieRouter(svc, 7).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/movies/3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feed.UserCaller(7), svc.caller)
}

func TestLikeMovieHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		userID int64
		path   string
		err    error
		want   int
	}{
		{name: "liked", userID: 7, path: "/api/movies/3/like", want: http.StatusOK},
		{name: "anonymous", path: "/api/movies/3/like", want: http.StatusUnauthorized},
		{name: "bad id", userID: 7, path: "/api/movies/zero/like", want: http.StatusBadRequest},
		{name: "deleted movie", userID: 7, path: "/api/movies/3/like", err: fmt.Errorf("movie 3: %w", usecase.ErrDeleted), want: http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &stubMovies{err: tt.err}
			rec := httptest.NewRecorder()
			movieRouter(svc, tt.userID).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, int64(3), svc.movieID)
				assert.Equal(t, int64(7), svc.userID)
			}
		})
	}
}

func TestUpdateMovieHandler(t *testing.T) {
	t.Parallel()

	body := `{"title": "Tokyo Godfathers", "release_date": "2003-11-08", "runtime": 92}`

	svc := &stubMovies{}
	rec := httptest.NewRecorder()
	movieRouter(svc, 1).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/movies/5", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.movieID)
	assert.Equal(t, "Tokyo Godfathers", svc.seen.Title)
	assert.Nil(t, svc.seen.GenreIDs)

	svc = &stubMovies{}
	rec = httptest.NewRecorder()
	movieRouter(svc, 1).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/movies/5", strings.NewReader(`{"title":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.seen)

	svc = &stubMovies{err: fmt.Errorf("movie 5: %w", usecase.ErrNotFound)}
	rec = httptest.NewRecorder()
	movieRouter(svc, 1).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/admin/movies/5", strings.NewReader(body)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
