// Package httpx wires the HTTP API of the menu service.
package httpx

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"creme-menu/internal/config"
	"creme-menu/internal/esx"
	"creme-menu/internal/httpx/admin"
	"creme-menu/internal/httpx/auth"
	"creme-menu/internal/httpx/menus"
	"creme-menu/internal/httpx/mw"
	"creme-menu/internal/menu"
	"creme-menu/internal/menuconfig"
	"creme-menu/internal/metric"
)

// RoleMenuAdmin may edit the menu configuration.
const RoleMenuAdmin = "menu_admin"

// Providers are the dependencies of the routes. Only Config, Service and
// Forms are mandatory.
type Providers struct {
	Config  func() *config.Config
	Service *menuconfig.Service
	Forms   *menu.CreationForms
	Limiter redis.Scripter
	Recent  menus.RecentStore
	Trash   menu.TrashCounter
	ES      *esx.Client
	Metrics *metric.Metrics
}

func (p Providers) search() admin.SearchFunc {
	if p.ES == nil {
		return nil
	}
	return func(ctx context.Context, q string, size int) ([]esx.EntryDoc, error) {
		return esx.SearchEntries(ctx, p.ES, p.Config().ES.EntriesIndex, q, size)
	}
}

// Register mounts every route on app.
func Register(app *fiber.App, p Providers) {
	app.Get("/health", HealthHandler)
	if p.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(p.Metrics.Handler()))
	}
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	cfg := p.Config()
	api := app.Group("/api/v1",
		mw.JWTMiddlewareDynamic(auth.Parser(p.Config)),
		mw.RateLimitDefault(p.Limiter, cfg.RateLimit.WindowSec, cfg.RateLimit.Max),
	)

	a := api.Group("/auth")
	a.Post("/login", auth.LoginHandler(p.Config))
	a.Post("/refresh", auth.RefreshHandler(p.Config))
	a.Post("/logout", auth.LogoutHandler())
	a.Get("/me", mw.RequireUser(), auth.MeHandler())

	md := menus.Deps{Source: p.Service, Forms: p.Forms, Recent: p.Recent, Trash: p.Trash, Metrics: p.Metrics}
	m := api.Group("/menu", mw.RequireUser())
	m.Get("/", menus.MenuHandler(md))
	m.Get("/creation-grid", menus.CreationGridHandler(md))
	m.Post("/recent", menus.RecentHandler(md))

	ad := admin.Deps{Service: p.Service, Search: p.search()}
	adm := api.Group("/admin/menu", mw.RequireRoles(RoleMenuAdmin))
	adm.Get("/", admin.TreeHandler(ad))
	adm.Get("/choices", admin.ChoicesHandler(ad))
	adm.Get("/entries/search", admin.SearchEntriesHandler(ad))
	adm.Get("/containers/:id/choices", admin.EditChoicesHandler(ad))
	adm.Post("/containers", admin.CreateContainerHandler(ad))
	adm.Post("/special-containers", admin.CreateSpecialHandler(ad))
	adm.Put("/containers/:id", admin.UpdateContainerHandler(ad))
	adm.Delete("/containers/:id", admin.DeleteContainerHandler(ad))
}
