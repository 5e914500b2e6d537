package contract

import (
	"context"
	"errors"

	"github.com/cristiansanchez/indice/internal/entity"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	// FindByID returns ErrSessionNotFound for unknown or expired sessions.
	FindByID(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
