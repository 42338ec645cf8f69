package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"picky-feed/internal/data/entity"
	"picky-feed/internal/data/repository"
	"picky-feed/internal/feed"
	"picky-feed/internal/notify"
)

var errBoom = errors.New("connection reset by peer")

type pair struct{ subject, user int64 }

// fakeStore is an in-memory stand-in for the Postgres repositories. It applies the
// keyset rules itself and counts every call so tests can assert on query shapes.
type fakeStore struct {
	mu sync.Mutex

	nextID     int64
	users      map[int64]*entity.User
	movies     map[int64]*entity.Movie
	reviews    map[int64]*entity.LineReview
	reactions  map[pair]entity.Preference
	boards     map[int64]*entity.Board
	boardLikes map[pair]bool
	movieLikes map[pair]bool
	comments   map[int64]*entity.BoardComment
	sessions   map[string]*entity.Session

	calls  map[string]int
	failOn map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:     100,
		users:      map[int64]*entity.User{},
		movies:     map[int64]*entity.Movie{},
		reviews:    map[int64]*entity.LineReview{},
		reactions:  map[pair]entity.Preference{},
		boards:     map[int64]*entity.Board{},
		boardLikes: map[pair]bool{},
		movieLikes: map[pair]bool{},
		comments:   map[int64]*entity.BoardComment{},
		sessions:   map[string]*entity.Session{},
		calls:      map[string]int{},
		failOn:     map[string]bool{},
	}
}

func (s *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		User:         fakeUsers{s},
		Session:      fakeSessions{s},
		Movie:        fakeMovies{s},
		LineReview:   fakeReviews{s},
		Board:        fakeBoards{s},
		BoardComment: fakeComments{s},
	}
}

// enter locks the store, records the call and reports an injected failure.
func (s *fakeStore) enter(name string) error {
	s.mu.Lock()
	s.calls[name]++
	if s.failOn[name] {
		return fmt.Errorf("%s: %w", name, errBoom)
	}
	return nil
}

func (s *fakeStore) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *fakeStore) resetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = map[string]int{}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

// ---- seeding helpers (not counted) ----

func (s *fakeStore) addUser(nickname string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.users[id] = &entity.User{Base: entity.Base{ID: id}, Nickname: nickname, Role: entity.RoleUser}
	return id
}

func (s *fakeStore) addUserWithGender(nickname string, g entity.Gender) int64 {
	id := s.addUser(nickname)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id].Gender = g
	return id
}

func (s *fakeStore) addMovie(title string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.movies[id] = &entity.Movie{Base: entity.Base{ID: id}, Title: title}
	return id
}

func (s *fakeStore) addReview(movieID, userID int64, at time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.reviews[id] = &entity.LineReview{
		Base:    entity.Base{ID: id, CreatedAt: at, UpdatedAt: at},
		UserID:  userID,
		MovieID: movieID,
		Rating:  4,
		Context: fmt.Sprintf("review %d", id),
	}
	return id
}

func (s *fakeStore) addBoard(movieID, userID int64, at time.Time, urls ...string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	b := &entity.Board{
		Base:    entity.Base{ID: id, CreatedAt: at, UpdatedAt: at},
		UserID:  userID,
		MovieID: movieID,
		Context: fmt.Sprintf("board %d", id),
	}
	for _, u := range urls {
		b.Contents = append(b.Contents, entity.BoardContent{ID: s.id(), BoardID: id, ContentURL: u, ContentType: entity.BoardContentImage})
	}
	s.boards[id] = b
	return id
}

func (s *fakeStore) addComment(boardID, userID int64, at time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.id()
	s.comments[id] = &entity.BoardComment{
		BaseSimple: entity.BaseSimple{ID: id, CreatedAt: at},
		BoardID:    boardID,
		UserID:     userID,
		Context:    fmt.Sprintf("comment %d", id),
	}
	return id
}

func (s *fakeStore) react(reviewID, userID int64, p entity.Preference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions[pair{reviewID, userID}] = p
}

func (s *fakeStore) likeBoard(boardID, userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardLikes[pair{boardID, userID}] = true
}

func (s *fakeStore) tombstone(deletedAt *time.Time) *time.Time {
	if deletedAt != nil {
		return deletedAt
	}
	now := time.Now()
	return &now
}

func (s *fakeStore) deleteReview(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[id].DeletedAt = s.tombstone(nil)
}

func (s *fakeStore) deleteBoard(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[id].DeletedAt = s.tombstone(nil)
}

func (s *fakeStore) deleteMovie(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[id].DeletedAt = s.tombstone(nil)
}

// reviewLikes must be called with the lock held.
func (s *fakeStore) reviewLikes(id int64) int64 {
	var n int64
	for k, p := range s.reactions {
		if k.subject == id && p == entity.PreferenceLike {
			n++
		}
	}
	return n
}

// keysetPage sorts rows, keeps those past the cursor and applies the limit.
func keysetPage[T any](rows []T, q feed.Query, id func(T) int64, at func(T) time.Time, likes func(int64) int64) []T {
	less := func(a, b T) bool {
		if q.Sort == feed.SortLikes {
			la, lb := likes(id(a)), likes(id(b))
			if la != lb {
				return la > lb
			}
			return id(a) > id(b)
		}
		if !at(a).Equal(at(b)) {
			return at(a).After(at(b))
		}
		return id(a) > id(b)
	}
	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })

	c := q.Cursor
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		switch q.Sort {
		case feed.SortLikes:
			if c.LastID != nil {
				anchor, mine := likes(*c.LastID), likes(id(r))
				if !(mine < anchor || (mine == anchor && id(r) < *c.LastID)) {
					continue
				}
			}
		default:
			if c.LastID != nil && c.LastCreatedAt != nil {
				t := at(r)
				if !(t.Before(*c.LastCreatedAt) || (t.Equal(*c.LastCreatedAt) && id(r) < *c.LastID)) {
					continue
				}
			}
		}
		out = append(out, r)
		if len(out) == q.Limit {
			break
		}
	}
	return out
}

// ---- users ----

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Create(_ context.Context, user *entity.User) error {
	if err := f.s.enter("User.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = f.s.id()
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f fakeUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if err := f.s.enter("User.FindByID"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := f.s.enter("User.FindByEmail"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ---- sessions ----

type fakeSessions struct{ s *fakeStore }

func (f fakeSessions) Create(_ context.Context, session *entity.Session) error {
	if err := f.s.enter("Session.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	cp := *session
	f.s.sessions[session.Token.String()] = &cp
	return nil
}

func (f fakeSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	if err := f.s.enter("Session.FindValidSession"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil || time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (f fakeSessions) Revoke(_ context.Context, token string) error {
	if err := f.s.enter("Session.Revoke"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	sess, ok := f.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrSessionNotFound
	}
	revoked := time.Now()
	sess.RevokedAt = &revoked
	return nil
}

// ---- movies ----

type fakeMovies struct{ s *fakeStore }

func (f fakeMovies) Create(_ context.Context, movie *entity.Movie, _ []int64) error {
	if err := f.s.enter("Movie.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	movie.ID = f.s.id()
	cp := *movie
	f.s.movies[movie.ID] = &cp
	return nil
}

func (f fakeMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	if err := f.s.enter("Movie.FindByID"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	m, ok := f.s.movies[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f fakeMovies) FindGenres(_ context.Context, _ int64) ([]string, error) {
	if err := f.s.enter("Movie.FindGenres"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	return []string{"Drama"}, nil
}

func (f fakeMovies) Update(_ context.Context, movie *entity.Movie, _ []int64) error {
	if err := f.s.enter("Movie.Update"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	m, ok := f.s.movies[movie.ID]
	if !ok || m.IsDeleted() {
		return nil
	}
	cp := *movie
	f.s.movies[movie.ID] = &cp
	return nil
}

func (f fakeMovies) RatingStats(_ context.Context, movieID int64) (*entity.MovieRating, error) {
	if err := f.s.enter("Movie.RatingStats"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()

	var stats entity.MovieRating
	var sum, male, female float64
	for _, r := range f.s.reviews {
		if r.MovieID != movieID || r.IsDeleted() {
			continue
		}
		sum += r.Rating
		stats.ReviewCount++
		stats.Stars[int(math.Ceil(r.Rating))-1]++
		if u, ok := f.s.users[r.UserID]; ok {
			switch u.Gender {
			case entity.GenderMale:
				male += r.Rating
				stats.Male.ReviewCount++
			case entity.GenderFemale:
				female += r.Rating
				stats.Female.ReviewCount++
			}
		}
	}
	if stats.ReviewCount > 0 {
		stats.Average = sum / float64(stats.ReviewCount)
	}
	if stats.Male.ReviewCount > 0 {
		stats.Male.Average = male / float64(stats.Male.ReviewCount)
	}
	if stats.Female.ReviewCount > 0 {
		stats.Female.Average = female / float64(stats.Female.ReviewCount)
	}
	return &stats, nil
}

func (f fakeMovies) Like(_ context.Context, movieID, userID int64) (bool, error) {
	if err := f.s.enter("Movie.Like"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{movieID, userID}
	if f.s.movieLikes[k] {
		return false, nil
	}
	f.s.movieLikes[k] = true
	return true, nil
}

func (f fakeMovies) Unlike(_ context.Context, movieID, userID int64) (bool, error) {
	if err := f.s.enter("Movie.Unlike"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{movieID, userID}
	ok := f.s.movieLikes[k]
	delete(f.s.movieLikes, k)
	return ok, nil
}

func (f fakeMovies) CountLikes(_ context.Context, movieID, callerID int64) (entity.MovieLikes, error) {
	if err := f.s.enter("Movie.CountLikes"); err != nil {
		f.s.mu.Unlock()
		return entity.MovieLikes{}, err
	}
	defer f.s.mu.Unlock()
	var likes entity.MovieLikes
	for k := range f.s.movieLikes {
		if k.subject == movieID {
			likes.Count++
			if k.user == callerID {
				likes.LikedByCaller = true
			}
		}
	}
	return likes, nil
}

// ---- line reviews ----

type fakeReviews struct{ s *fakeStore }

func (f fakeReviews) withWriter(lr entity.LineReview) entity.LineReview {
	if u, ok := f.s.users[lr.UserID]; ok {
		lr.WriterNickname = u.Nickname
	}
	return lr
}

func (f fakeReviews) Create(_ context.Context, review *entity.LineReview) error {
	if err := f.s.enter("LineReview.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	for _, r := range f.s.reviews {
		if r.MovieID == review.MovieID && r.UserID == review.UserID && !r.IsDeleted() {
			return fmt.Errorf("line review: %w", repository.ErrDuplicate)
		}
	}
	review.ID = f.s.id()
	cp := *review
	f.s.reviews[review.ID] = &cp
	return nil
}

func (f fakeReviews) FindByID(_ context.Context, id int64) (*entity.LineReview, error) {
	if err := f.s.enter("LineReview.FindByID"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	r, ok := f.s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := f.withWriter(*r)
	return &cp, nil
}

func (f fakeReviews) Update(_ context.Context, review *entity.LineReview) error {
	if err := f.s.enter("LineReview.Update"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	r := f.s.reviews[review.ID]
	r.Context, r.IsSpoiler, r.UpdatedAt = review.Context, review.IsSpoiler, review.UpdatedAt
	return nil
}

func (f fakeReviews) SoftDelete(_ context.Context, id int64) error {
	if err := f.s.enter("LineReview.SoftDelete"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	f.s.reviews[id].DeletedAt = f.s.tombstone(f.s.reviews[id].DeletedAt)
	return nil
}

func (f fakeReviews) FindFeedByMovie(_ context.Context, movieID int64, q feed.Query) ([]entity.LineReview, error) {
	if err := f.s.enter("LineReview.FindFeedByMovie"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	return f.feed(func(r *entity.LineReview) bool { return r.MovieID == movieID }, q), nil
}

func (f fakeReviews) FindFeedByUser(_ context.Context, userID int64, q feed.Query) ([]entity.LineReview, error) {
	if err := f.s.enter("LineReview.FindFeedByUser"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	return f.feed(func(r *entity.LineReview) bool { return r.UserID == userID }, q), nil
}

func (f fakeReviews) feed(match func(*entity.LineReview) bool, q feed.Query) []entity.LineReview {
	var rows []entity.LineReview
	for _, r := range f.s.reviews {
		if match(r) && !r.IsDeleted() {
			rows = append(rows, f.withWriter(*r))
		}
	}
	return keysetPage(rows, q,
		func(r entity.LineReview) int64 { return r.ID },
		func(r entity.LineReview) time.Time { return r.CreatedAt },
		f.s.reviewLikes,
	)
}

func (f fakeReviews) CountReactions(_ context.Context, ids []int64) (map[int64]entity.ReactionCounts, error) {
	if err := f.s.enter("LineReview.CountReactions"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	out := map[int64]entity.ReactionCounts{}
	for _, id := range ids {
		var c entity.ReactionCounts
		for k, p := range f.s.reactions {
			if k.subject != id {
				continue
			}
			if p == entity.PreferenceLike {
				c.Likes++
			} else {
				c.Dislikes++
			}
		}
		if c != (entity.ReactionCounts{}) {
			out[id] = c
		}
	}
	return out, nil
}

func (f fakeReviews) FindCallerReactions(_ context.Context, ids []int64, userID int64) (map[int64]entity.Preference, error) {
	if err := f.s.enter("LineReview.FindCallerReactions"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	out := map[int64]entity.Preference{}
	for _, id := range ids {
		if p, ok := f.s.reactions[pair{id, userID}]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f fakeReviews) UpsertReaction(_ context.Context, reaction *entity.LineReviewReaction) (bool, error) {
	if err := f.s.enter("LineReview.UpsertReaction"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{reaction.LineReviewID, reaction.UserID}
	if f.s.reactions[k] == reaction.Preference {
		return false, nil
	}
	f.s.reactions[k] = reaction.Preference
	return true, nil
}

func (f fakeReviews) DeleteReaction(_ context.Context, reviewID, userID int64) (bool, error) {
	if err := f.s.enter("LineReview.DeleteReaction"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{reviewID, userID}
	_, ok := f.s.reactions[k]
	delete(f.s.reactions, k)
	return ok, nil
}

// ---- boards ----

type fakeBoards struct{ s *fakeStore }

func (f fakeBoards) Create(_ context.Context, board *entity.Board) error {
	if err := f.s.enter("Board.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	board.ID = f.s.id()
	for i := range board.Contents {
		board.Contents[i].ID = f.s.id()
		board.Contents[i].BoardID = board.ID
	}
	cp := *board
	cp.Contents = append([]entity.BoardContent(nil), board.Contents...)
	f.s.boards[board.ID] = &cp
	return nil
}

func (f fakeBoards) FindByID(_ context.Context, id int64) (*entity.Board, error) {
	if err := f.s.enter("Board.FindByID"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	b, ok := f.s.boards[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	cp.Contents = nil
	return &cp, nil
}

func (f fakeBoards) Update(_ context.Context, board *entity.Board) error {
	if err := f.s.enter("Board.Update"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	b := f.s.boards[board.ID]
	b.Context, b.IsSpoiler, b.UpdatedAt = board.Context, board.IsSpoiler, board.UpdatedAt
	return nil
}

func (f fakeBoards) SoftDelete(_ context.Context, id int64) error {
	if err := f.s.enter("Board.SoftDelete"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	f.s.boards[id].DeletedAt = f.s.tombstone(f.s.boards[id].DeletedAt)
	return nil
}

func (f fakeBoards) FindFeed(_ context.Context, movieID *int64, q feed.Query) ([]entity.BoardFeedRow, error) {
	if err := f.s.enter("Board.FindFeed"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	var rows []entity.BoardFeedRow
	for _, b := range f.s.boards {
		if b.IsDeleted() || (movieID != nil && b.MovieID != *movieID) {
			continue
		}
		row := entity.BoardFeedRow{Board: *b}
		row.Contents = nil
		if u, ok := f.s.users[b.UserID]; ok {
			row.WriterNickname = u.Nickname
			row.WriterAvatarURL = u.AvatarURL
		}
		if m, ok := f.s.movies[b.MovieID]; ok {
			row.MovieTitle = m.Title
		}
		rows = append(rows, row)
	}
	return keysetPage(rows, q,
		func(b entity.BoardFeedRow) int64 { return b.ID },
		func(b entity.BoardFeedRow) time.Time { return b.CreatedAt },
		nil,
	), nil
}

func (f fakeBoards) FindContents(_ context.Context, ids []int64) (map[int64][]entity.BoardContent, error) {
	if err := f.s.enter("Board.FindContents"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	out := map[int64][]entity.BoardContent{}
	for _, id := range ids {
		if b, ok := f.s.boards[id]; ok && len(b.Contents) > 0 {
			out[id] = append([]entity.BoardContent(nil), b.Contents...)
		}
	}
	return out, nil
}

func (f fakeBoards) CountSignals(_ context.Context, ids []int64) (map[int64]entity.BoardCounts, error) {
	if err := f.s.enter("Board.CountSignals"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	out := map[int64]entity.BoardCounts{}
	for _, id := range ids {
		var c entity.BoardCounts
		for k := range f.s.boardLikes {
			if k.subject == id {
				c.Likes++
			}
		}
		for _, cm := range f.s.comments {
			if cm.BoardID == id {
				c.Comments++
			}
		}
		out[id] = c
	}
	return out, nil
}

func (f fakeBoards) FindLikedBy(_ context.Context, ids []int64, userID int64) (map[int64]bool, error) {
	if err := f.s.enter("Board.FindLikedBy"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	out := map[int64]bool{}
	for _, id := range ids {
		if f.s.boardLikes[pair{id, userID}] {
			out[id] = true
		}
	}
	return out, nil
}

func (f fakeBoards) Like(_ context.Context, boardID, userID int64) (bool, error) {
	if err := f.s.enter("Board.Like"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{boardID, userID}
	if f.s.boardLikes[k] {
		return false, nil
	}
	f.s.boardLikes[k] = true
	return true, nil
}

func (f fakeBoards) Unlike(_ context.Context, boardID, userID int64) (bool, error) {
	if err := f.s.enter("Board.Unlike"); err != nil {
		f.s.mu.Unlock()
		return false, err
	}
	defer f.s.mu.Unlock()
	k := pair{boardID, userID}
	ok := f.s.boardLikes[k]
	delete(f.s.boardLikes, k)
	return ok, nil
}

// ---- board comments ----

type fakeComments struct{ s *fakeStore }

func (f fakeComments) withWriter(c entity.BoardComment) entity.BoardComment {
	if u, ok := f.s.users[c.UserID]; ok {
		c.WriterName = u.Nickname
	}
	return c
}

func (f fakeComments) Create(_ context.Context, comment *entity.BoardComment) error {
	if err := f.s.enter("BoardComment.Create"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	comment.ID = f.s.id()
	cp := *comment
	f.s.comments[comment.ID] = &cp
	return nil
}

func (f fakeComments) FindByID(_ context.Context, id int64) (*entity.BoardComment, error) {
	if err := f.s.enter("BoardComment.FindByID"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	c, ok := f.s.comments[id]
	if !ok {
		return nil, nil
	}
	cp := f.withWriter(*c)
	return &cp, nil
}

func (f fakeComments) Delete(_ context.Context, id int64) error {
	if err := f.s.enter("BoardComment.Delete"); err != nil {
		f.s.mu.Unlock()
		return err
	}
	defer f.s.mu.Unlock()
	delete(f.s.comments, id)
	return nil
}

func (f fakeComments) FindFeedByBoard(_ context.Context, boardID int64, q feed.Query) ([]entity.BoardComment, error) {
	if err := f.s.enter("BoardComment.FindFeedByBoard"); err != nil {
		f.s.mu.Unlock()
		return nil, err
	}
	defer f.s.mu.Unlock()
	var rows []entity.BoardComment
	for _, c := range f.s.comments {
		if c.BoardID == boardID {
			rows = append(rows, f.withWriter(*c))
		}
	}
	return keysetPage(rows, q,
		func(c entity.BoardComment) int64 { return c.ID },
		func(c entity.BoardComment) time.Time { return c.CreatedAt },
		nil,
	), nil
}

// ---- notifier ----

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) published() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}
