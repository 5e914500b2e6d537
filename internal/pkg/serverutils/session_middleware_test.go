package serverutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/pkg/logger"
	"github.com/cristiansanchez/indice/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth struct {
	token string
	err   error
}

func (a staticAuth) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	if a.err != nil {
		return nil, a.err
	}
	if token != a.token {
		return nil, service.ErrInvalidSession
	}
	return &entity.Session{ID: "s1"}, nil
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func newProtectedApp(auth Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNop())})
	app.Get("/private", SessionMiddleware(auth, "indice_session"), func(ctx *fiber.Ctx) error {
		session := ctx.Locals(LocalsSession).(*entity.Session)
		return ctx.SendString(session.ID)
	})
	return app
}

func TestSessionMiddleware(t *testing.T) {
	app := newProtectedApp(staticAuth{token: "good"})

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantHeader string
	}{
		{"no session api", func(r *http.Request) {}, 401, ""},
		{"no session browser", func(r *http.Request) { r.Header.Set("Accept", "text/html,application/xhtml+xml") }, 303, "/login?next=%2Fprivate"},
		{"bad cookie", func(r *http.Request) { r.Header.Set("Cookie", "indice_session=bad") }, 401, ""},
		{"good cookie", func(r *http.Request) { r.Header.Set("Cookie", "indice_session=good") }, 200, ""},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, 200, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			tt.setup(req)

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantHeader != "" {
				assert.Equal(t, tt.wantHeader, resp.Header.Get("Location"))
			}
		})
	}
}

func TestSessionMiddleware_ConfigurationError(t *testing.T) {
	app := newProtectedApp(staticAuth{err: service.ErrPasswordNotConfigured})

	resp, err := app.Test(httptest.NewRequest("GET", "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
