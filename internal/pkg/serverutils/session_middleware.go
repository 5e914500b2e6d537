package serverutils

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/cristiansanchez/indice/internal/entity"
	"github.com/cristiansanchez/indice/internal/service"
	"github.com/gofiber/fiber/v2"
)

// LocalsSession is the ctx.Locals key of the authenticated *entity.Session.
const LocalsSession = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// SessionToken reads the session token from the cookie, falling back to an
// Authorization bearer header.
func SessionToken(ctx *fiber.Ctx, cookieName string) string {
	if token := ctx.Cookies(cookieName); token != "" {
		return token
	}
	authHeader := ctx.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// SessionMiddleware rejects requests without a live session. Browser
// navigations are redirected to the login page, API calls get 401.
func SessionMiddleware(auth Authenticator, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		session, err := auth.Authenticate(ctx.UserContext(), SessionToken(ctx, cookieName))
		if err != nil {
			if !errors.Is(err, service.ErrInvalidSession) {
				return err
			}
			if wantsHTML(ctx) {
				return ctx.Redirect("/login?next="+url.QueryEscape(ctx.OriginalURL()), fiber.StatusSeeOther)
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Authentication required"))
		}

		ctx.Locals(LocalsSession, session)
		return ctx.Next()
	}
}

func SetSessionCookie(ctx *fiber.Ctx, name, token string, expires time.Time, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(ctx *fiber.Ctx, name string, secure bool) {
	ctx.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func wantsHTML(ctx *fiber.Ctx) bool {
	return strings.Contains(ctx.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
