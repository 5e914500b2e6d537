package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server; set REDIS_TEST_URL to enable.
func TestSessionRepository_Redis(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	repo := NewSessionRepository(client, time.Minute)
	id := uuid.NewString()

	require.NoError(t, repo.Save(ctx, &entity.Session{ID: id, UserAgent: "test", ExpiresAt: time.Now().Add(time.Minute)}))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "test", got.UserAgent)

	require.NoError(t, repo.Delete(ctx, id))
	_, err = repo.FindByID(ctx, id)
	assert.ErrorIs(t, err, contract.ErrSessionNotFound)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "not-a-url://")
	assert.Error(t, err)
}
