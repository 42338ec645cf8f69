package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetProfile(t *testing.T) {
	store := newFakeStore()
	svc := NewUserService(store.repo().User, zap.NewNop())
	id := store.addUser("kon")

	profile, err := svc.GetProfile(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "kon", profile.Nickname)

	_, err = svc.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	store.mu.Lock()
	store.users[id].DeletedAt = &t1
	store.mu.Unlock()
	_, err = svc.GetProfile(context.Background(), id)
	assert.ErrorIs(t, err, ErrDeleted)
}
