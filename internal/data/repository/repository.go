package repository

import (
	"errors"
	"strings"

	"picky-feed/internal/feed"
	"picky-feed/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

type Repository struct {
	User         UserRepository
	Session      SessionRepository
	Movie        MovieRepository
	LineReview   LineReviewRepository
	Board        BoardRepository
	BoardComment BoardCommentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, log),
		Session:      NewSessionRepository(db, log),
		Movie:        NewMovieRepository(db, log),
		LineReview:   NewLineReviewRepository(db, log),
		Board:        NewBoardRepository(db, log),
		BoardComment: NewBoardCommentRepository(db, log),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// pageQuery appends the keyset predicate, ordering and lookahead limit to base, which must
// already end in a WHERE clause.
func pageQuery(base string, q feed.Query, cols feed.Columns, args *feed.Args) (string, error) {
	ks, err := feed.BuildKeyset(q.Sort, q.Cursor, cols, args)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(base)
	if ks.Where != "" {
		sb.WriteString(" AND ")
		sb.WriteString(ks.Where)
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(ks.OrderBy)
	sb.WriteString(" LIMIT ")
	sb.WriteString(args.Add(q.Limit))
	return sb.String(), nil
}
