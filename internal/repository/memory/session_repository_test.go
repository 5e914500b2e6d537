package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository_SaveFindDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	session := &entity.Session{ID: "abc", CreatedAt: time.Now(), ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)

	require.NoError(t, repo.Delete(ctx, "abc"))
	_, err = repo.FindByID(ctx, "abc")
	assert.ErrorIs(t, err, contract.ErrSessionNotFound)
}

func TestSessionRepository_Expired(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(time.Hour)

	require.NoError(t, repo.Save(ctx, &entity.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))

	_, err := repo.FindByID(ctx, "old")
	assert.ErrorIs(t, err, contract.ErrSessionNotFound)
}
