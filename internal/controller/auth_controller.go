package controller

import (
	"github.com/cristiansanchez/indice/internal/dto"
	"github.com/cristiansanchez/indice/internal/pkg/serverutils"
	"github.com/cristiansanchez/indice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Session(ctx *fiber.Ctx) error
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type authController struct {
	service service.IAuthService
	cookie  CookieConfig
}

func NewAuthController(service service.IAuthService, cookie CookieConfig) IAuthController {
	return &authController{service: service, cookie: cookie}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/session", c.Session)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	serverutils.SetSessionCookie(ctx, c.cookie.Name, res.Token, res.ExpiresAt, c.cookie.Secure)
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	token := serverutils.SessionToken(ctx, c.cookie.Name)
	if err := c.service.Logout(ctx.UserContext(), token); err != nil {
		return err
	}

	serverutils.ClearSessionCookie(ctx, c.cookie.Name, c.cookie.Secure)
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out", nil))
}

func (c *authController) Session(ctx *fiber.Ctx) error {
	session, err := c.service.Authenticate(ctx.UserContext(), serverutils.SessionToken(ctx, c.cookie.Name))
	if err != nil {
		return ctx.JSON(serverutils.SuccessResponse("Session checked", dto.SessionResponse{Authenticated: false}))
	}
	return ctx.JSON(serverutils.SuccessResponse("Session checked", dto.SessionResponse{
		Authenticated: true,
		ExpiresAt:     &session.ExpiresAt,
	}))
}
