// Package mw contains HTTP middleware including authentication and rate limiting.
package mw

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RoleSuperuser grants every permission.
const RoleSuperuser = "superuser"

// AuthContext holds authentication details extracted from JWT.
// It is the menu.User menus are rendered for.
type AuthContext struct {
	Subject string // user:<name>
	Kind    string // user
	Roles   []string
	Perms   []string
}

func (a *AuthContext) IsSuperuser() bool {
	return a != nil && slices.Contains(a.Roles, RoleSuperuser)
}

func (a *AuthContext) HasPerm(perm string) bool {
	if a == nil {
		return false
	}
	return a.IsSuperuser() || slices.Contains(a.Perms, perm)
}

// Auth returns the auth context of the request, if any.
func Auth(c *fiber.Ctx) *AuthContext {
	ac, _ := c.Locals("auth").(*AuthContext)
	return ac
}

// TokenParser turns a bearer token into an auth context.
type TokenParser func(token string) (*AuthContext, error)

// JWTMiddlewareDynamic attaches auth context parsed by the given token parser.
func JWTMiddlewareDynamic(parse TokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get("Authorization")
		if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return c.Next()
		}
		token := strings.TrimSpace(authz[len("Bearer "):])
		ac, err := parse(token)
		if err == nil && ac != nil && ac.Subject != "" {
			c.Locals("auth", ac)
		}
		return c.Next()
	}
}

// RequireUser enforces authenticated user (kind=user)
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := Auth(c)
		if ac == nil || ac.Kind != "user" || ac.Subject == "" {
			return fiber.ErrUnauthorized
		}
		return c.Next()
	}
}

// RequireRoles enforces that the authenticated context has at least one of
// the roles. Superusers always pass.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := Auth(c)
		if ac == nil || ac.Kind == "" {
			return fiber.ErrUnauthorized
		}
		if len(roles) == 0 || ac.IsSuperuser() {
			return c.Next()
		}
		for _, need := range roles {
			if slices.Contains(ac.Roles, need) {
				return c.Next()
			}
		}
		return fiber.ErrForbidden
	}
}
