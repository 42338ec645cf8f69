package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"picky-feed/internal/data/entity"
)

func TestUserCreate_StoresGender(t *testing.T) {
	t.Parallel()

	mock := newMockDB(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(wholeSQL(`
		INSERT INTO users (nickname, email, password, avatar_url, role, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`)).
		WithArgs("chiyoko", "chiyoko@example.com", "hash", (*string)(nil), entity.RoleUser, entity.GenderFemale, lastSeenAt, lastSeenAt).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(41)))

	user := &entity.User{
		Base:         entity.Base{CreatedAt: lastSeenAt, UpdatedAt: lastSeenAt},
		Nickname:     "chiyoko",
		Email:        "chiyoko@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleUser,
		Gender:       entity.GenderFemale,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(41), user.ID)
}

func TestUserCreate_Duplicate(t *testing.T) {
	t.Parallel()

	mock := newMockDB(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.User{Nickname: "satoshi", Email: "satoshi@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserFindByEmail(t *testing.T) {
	t.Parallel()

	mock := newMockDB(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(wholeSQL(`
		SELECT id, nickname, email, password, avatar_url, role, gender, created_at, updated_at, deleted_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`)).
		WithArgs("satoshi@example.com").
		WillReturnRows(mock.NewRows([]string{
			"id", "nickname", "email", "password", "avatar_url", "role", "gender", "created_at", "updated_at", "deleted_at",
		}).AddRow(int64(40), "satoshi", "satoshi@example.com", "hash", (*string)(nil), entity.RoleUser, entity.GenderMale,
			lastSeenAt, lastSeenAt, (*time.Time)(nil)))

	user, err := repo.FindByEmail(context.Background(), "satoshi@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.GenderMale, user.Gender)
	assert.False(t, user.IsDeleted())
}
