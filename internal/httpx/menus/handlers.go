// Package menus serves the rendered main menu and its companions.
package menus

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/httpx/mw"
	"creme-menu/internal/logx"
	"creme-menu/internal/menu"
	"creme-menu/internal/metric"
)

var menusLogger = logx.GetScope("menus")

// Source builds the menu from the current configuration.
type Source interface {
	Menu(ctx context.Context) (*menu.Menu, error)
}

// RecentStore keeps the recently visited entities per user.
type RecentStore interface {
	Push(ctx context.Context, userID string, e menu.RecentEntity) error
	List(ctx context.Context, userID string) ([]menu.RecentEntity, error)
}

// Deps are the collaborators of the menu handlers. Recent, Trash and
// Metrics are optional.
type Deps struct {
	Source  Source
	Forms   *menu.CreationForms
	Recent  RecentStore
	Trash   menu.TrashCounter
	Icons   menu.IconResolver
	Metrics *metric.Metrics
}

// MenuResponse is the rendered menu.
// swagger:model MenuResponse
type MenuResponse struct {
	HTML string `json:"html"`
	Dump string `json:"dump,omitempty"`
}

// RecentRequest records a visited entity.
// swagger:model RecentRequest
type RecentRequest struct {
	Name string `json:"name" validate:"notblank,max=200" example:"Acme Corp"`
	URL  string `json:"url" validate:"required,startswith=/" example:"/persons/organisation/42"`
}

// prefetched is what a render needs besides the menu itself.
type prefetched struct {
	menu   *menu.Menu
	trash  int
	recent []menu.RecentEntity
}

func (d Deps) prefetch(ctx context.Context, userID string) (prefetched, error) {
	var out prefetched
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := d.Source.Menu(gctx)
		out.menu = m
		return err
	})
	if d.Trash != nil {
		g.Go(func() error {
			n, err := d.Trash.CountDeleted(gctx)
			if err != nil {
				menusLogger.Warn("count trash", zap.Error(err))
				return nil
			}
			out.trash = n
			return nil
		})
	}
	if d.Recent != nil {
		g.Go(func() error {
			recent, err := d.Recent.List(gctx, userID)
			if err != nil {
				menusLogger.Warn("list recent entities", zap.String("user", userID), zap.Error(err))
				return nil
			}
			out.recent = recent
			return nil
		})
	}
	return out, g.Wait()
}

func (d Deps) observe(start time.Time, outcome string) {
	if d.Metrics == nil {
		return
	}
	d.Metrics.MenuRenders.Increment(outcome)
	d.Metrics.RenderTime.Since(start, outcome)
}

// MenuHandler renders the main menu for the current user.
//
//	@Summary      Main menu
//	@Description  Render the configured main menu as HTML for the current user. Superusers may ask for the debug dump.
//	@Tags         menu
//	@Produce      json
//	@Security     BearerAuth
//	@Param        debug  query  bool  false  "include the debug dump"
//	@Success      200  {object}  menus.MenuResponse
//	@Failure      401  {object}  map[string]interface{}
//	@Failure      500  {object}  map[string]interface{}
//	@Router       /api/v1/menu [get]
func MenuHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ac := mw.Auth(c)
		if ac == nil {
			return fiber.ErrUnauthorized
		}
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()

		pre, err := d.prefetch(ctx, ac.Subject)
		if err != nil {
			d.observe(start, "error")
			return kit.FromError(err)
		}
		html, err := pre.menu.Render(&menu.Context{
			Ctx:    ctx,
			User:   ac,
			Recent: menu.StaticRecent(pre.recent),
			Trash:  menu.StaticTrash(pre.trash),
			Icons:  d.Icons,
		})
		if err != nil {
			d.observe(start, "error")
			menusLogger.Error("render menu", zap.String("user", ac.Subject), zap.Error(err))
			return kit.FromError(err)
		}
		d.observe(start, "ok")

		resp := MenuResponse{HTML: html}
		if c.QueryBool("debug") && ac.IsSuperuser() {
			resp.Dump = pre.menu.String()
		}
		return kit.OK(c, resp)
	}
}

// CreationGridHandler returns the grid of creation links for the current user.
//
//	@Summary      Creation grid
//	@Description  Groups of creation links laid out on a grid of at most 3 columns
//	@Tags         menu
//	@Produce      json
//	@Security     BearerAuth
//	@Success      200  {array}   []menu.GridCell
//	@Failure      401  {object}  map[string]interface{}
//	@Router       /api/v1/menu/creation-grid [get]
func CreationGridHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := mw.Auth(c)
		if ac == nil {
			return fiber.ErrUnauthorized
		}
		return kit.OK(c, d.Forms.AsGrid(ac))
	}
}

// RecentHandler records an entity visited by the current user.
//
//	@Summary      Record a visit
//	@Description  Push an entity to the recently visited list of the current user
//	@Tags         menu
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        body  body  menus.RecentRequest  true  "visited entity"
//	@Success      204  {string}  string  "no content"
//	@Failure      400  {object}  map[string]interface{}
//	@Failure      401  {object}  map[string]interface{}
//	@Failure      503  {object}  map[string]interface{}
//	@Router       /api/v1/menu/recent [post]
func RecentHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac := mw.Auth(c)
		if ac == nil {
			return fiber.ErrUnauthorized
		}
		if d.Recent == nil {
			return kit.NewAPIError(fiber.StatusServiceUnavailable, "E_UNAVAILABLE", "recent entities are disabled", nil)
		}
		var req RecentRequest
		if err := kit.BindJSON(c, &req); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()
		if err := d.Recent.Push(ctx, ac.Subject, menu.RecentEntity{Name: req.Name, URL: req.URL}); err != nil {
			return kit.InternalError("record visit failed", err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
