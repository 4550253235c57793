// Package auth issues and refreshes the tokens of the menu administrator.
package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"creme-menu/internal/config"
	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/httpx/mw"
	"creme-menu/internal/logx"
)

var authLogger = logx.GetScope("auth")

// adminPrincipal is the only account known to the service.
func adminPrincipal(cfg *config.Config) Principal {
	return Principal{Subject: "user:" + cfg.Admin.Username, Roles: []string{mw.RoleSuperuser}}
}

func issue(c *fiber.Ctx, cfg *config.Config, p Principal) error {
	access, err := SignAccess(cfg, p)
	if err != nil {
		return kit.InternalError("sign access failed", err.Error())
	}
	refresh, err := SignRefresh(cfg, p)
	if err != nil {
		return kit.InternalError("sign refresh failed", err.Error())
	}
	SetRefreshCookie(c, refresh, cfg.JWT.RefreshDays)
	return kit.OK(c, TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: cfg.JWT.AccessMin * 60})
}

// LoginHandler authenticates the administrator and returns JWTs.
//
//	@Summary      Login (password)
//	@Description  Authenticate by username/password and issue tokens
//	@Tags         auth
//	@Accept       json
//	@Produce      json
//	@Param        body  body   auth.LoginRequest  true  "login"
//	@Success      200   {object}  auth.TokenResponse
//	@Failure      400   {object}  map[string]interface{}
//	@Failure      401   {object}  map[string]interface{}
//	@Failure      429   {object}  map[string]interface{}
//	@Header       429   {string}  Retry-After  "Seconds to wait"
//	@Router       /api/v1/auth/login [post]
func LoginHandler(cfgFn func() *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := kit.BindJSON(c, &req); err != nil {
			return err
		}
		cfg := cfgFn()
		userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.Admin.Username)) == 1
		if cfg.Admin.PasswordHash == "" || !VerifyPassword(req.Password, cfg.Admin.PasswordHash) || !userOK {
			authLogger.Info("login rejected", zap.String("username", req.Username), zap.String("ip", c.IP()))
			return fiber.ErrUnauthorized
		}
		return issue(c, cfg, adminPrincipal(cfg))
	}
}

// RefreshHandler issues a new access token using refresh cookie.
//
//	@Summary      Refresh Access Token
//	@Description  Mint new access token from refresh cookie
//	@Tags         auth
//	@Produce      json
//	@Success      200   {object}  auth.TokenResponse
//	@Failure      401   {object}  map[string]interface{}
//	@Router       /api/v1/auth/refresh [post]
func RefreshHandler(cfgFn func() *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rt := c.Cookies(refreshCookie)
		if rt == "" {
			return fiber.ErrUnauthorized
		}
		cfg := cfgFn()
		claims, err := ParseAndValidate(cfg, rt)
		if err != nil {
			return fiber.ErrUnauthorized
		}
		p := adminPrincipal(cfg)
		if claims.Subject != p.Subject {
			return fiber.ErrUnauthorized
		}
		access, err := SignAccess(cfg, p)
		if err != nil {
			return kit.InternalError("sign access failed", err.Error())
		}
		return kit.OK(c, TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: cfg.JWT.AccessMin * 60})
	}
}

// LogoutHandler clears refresh cookie
//
//	@Summary      Logout (clear refresh)
//	@Description  Clear refresh cookie; access tokens expire naturally
//	@Tags         auth
//	@Success      204   {string}  string  "no content"
//	@Router       /api/v1/auth/logout [post]
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ClearRefreshCookie(c)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// MeHandler returns auth context if present.
//
//	@Summary      Who am I
//	@Description  Return current auth context
//	@Tags         auth
//	@Produce      json
//	@Security     BearerAuth
//	@Success      200   {object}  auth.MeResponse
//	@Failure      401   {object}  map[string]interface{}
//	@Router       /api/v1/auth/me [get]
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := mw.Auth(c)
		if ac == nil {
			return fiber.ErrUnauthorized
		}
		return kit.OK(c, MeResponse{Subject: ac.Subject, Roles: ac.Roles, Perms: ac.Perms, Superuser: ac.IsSuperuser()})
	}
}
