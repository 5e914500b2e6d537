package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/repository/contract"
	"github.com/cristiansanchez/indice/pkg/events"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// Authenticate validates a session token and returns the stored session.
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

type AuthConfig struct {
	// Password is plain text or a bcrypt hash ("$2...").
	Password string
	Secret   string
	TTL      time.Duration
}

type authService struct {
	sessions  contract.SessionRepository
	publisher events.Publisher
	logger    logger.ILogger
	cfg       AuthConfig
	now       func() time.Time
}

func NewAuthService(sessions contract.SessionRepository, publisher events.Publisher, logger logger.ILogger, cfg AuthConfig) IAuthService {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &authService{
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	if s.cfg.Password == "" {
		s.logger.Error("AUTH", "Login attempted without APP_PASSWORD configured", nil)
		return nil, ErrPasswordNotConfigured
	}

	if !s.checkPassword(req.Password) {
		s.logger.Warn("AUTH", "Invalid password", map[string]interface{}{"ip": ipAddress})
		s.publisher.Publish(ctx, events.New(events.TypeLoginFailed, map[string]interface{}{"ip": ipAddress}))
		return nil, ErrInvalidPassword
	}

	now := s.now()
	session := &entity.Session{
		ID:        uuid.New().String(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
	}

	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   "indice",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.secret())
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("AUTH", "Failed to store session", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Info("AUTH", "Login successful", map[string]interface{}{"ip": ipAddress, "session_id": session.ID})
	s.publisher.Publish(ctx, events.New(events.TypeLoginSucceeded, map[string]interface{}{
		"ip":         ipAddress,
		"session_id": session.ID,
	}))

	return &dto.LoginResponse{Token: signedToken, ExpiresAt: session.ExpiresAt}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		// nothing to revoke
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if s.cfg.Password == "" {
		return nil, ErrPasswordNotConfigured
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.FindByID(ctx, claims.ID)
	if errors.Is(err, contract.ErrSessionNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *authService) parse(token string) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret(), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

func (s *authService) checkPassword(candidate string) bool {
	if strings.HasPrefix(s.cfg.Password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(candidate)) == 1
}

// secret falls back to a key derived from the password, so rotating the
// password also invalidates every issued token.
func (s *authService) secret() []byte {
	if s.cfg.Secret != "" {
		return []byte(s.cfg.Secret)
	}
	sum := sha256.Sum256([]byte("indice-session:" + s.cfg.Password))
	return []byte(hex.EncodeToString(sum[:]))
}
