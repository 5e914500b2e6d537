package memory

import (
	"context"
	"time"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// expired items are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := cache.DefaultExpiration
	if !session.ExpiresAt.IsZero() {
		ttl = time.Until(session.ExpiresAt)
	}
	r.cache.Set(session.ID, session, ttl)
	return nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	if x, found := r.cache.Get(id); found {
		session := x.(*entity.Session)
		if session.Expired(time.Now()) {
			return nil, contract.ErrSessionNotFound
		}
		return session, nil
	}
	return nil, contract.ErrSessionNotFound
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}
