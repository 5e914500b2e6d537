// Package redis stores sessions in Redis so that logins survive restarts and
// are shared between instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "indice:session:"

type SessionRepository struct {
	client     *goredis.Client
	defaultTTL time.Duration
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(client *goredis.Client, defaultTTL time.Duration) *SessionRepository {
	return &SessionRepository{client: client, defaultTTL: defaultTTL}
}

// NewClient parses a redis:// URL and verifies the server answers.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := r.defaultTTL
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
	}
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, keyPrefix+session.ID, payload, ttl).Err()
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	payload, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, contract.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}
