// Package admin exposes the menu configuration editor.
package admin

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"creme-menu/internal/esx"
	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/logx"
	"creme-menu/internal/menuconfig"
)

var adminLogger = logx.GetScope("admin")

// SearchFunc searches entry classes in an external index.
type SearchFunc func(ctx context.Context, query string, size int) ([]esx.EntryDoc, error)

// Deps are the collaborators of the admin handlers. Search is optional; the
// registry is scanned when it is missing or fails.
type Deps struct {
	Service *menuconfig.Service
	Search  SearchFunc
}

// ContainerRequest creates or edits a container.
// swagger:model ContainerRequest
type ContainerRequest struct {
	Name    string   `json:"name" validate:"notblank,max=200" example:"Directory"`
	Entries []string `json:"entries" validate:"required,min=1,dive,required" example:"persons-contacts"`
}

// SpecialContainerRequest adds a special root entry.
// swagger:model SpecialContainerRequest
type SpecialContainerRequest struct {
	EntryID string `json:"entry_id" validate:"required" example:"creme_core-recent_entities"`
}

func timeout(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 3*time.Second)
}

func containerID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, kit.BadRequest("invalid container id", c.Params("id"))
	}
	return id, nil
}

// TreeHandler returns the configuration as a tree.
//
//	@Summary      Menu configuration
//	@Description  Root records with their children and resolved labels
//	@Tags         admin
//	@Produce      json
//	@Security     BearerAuth
//	@Success      200  {array}   menuconfig.Node
//	@Failure      401  {object}  map[string]interface{}
//	@Failure      403  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu [get]
func TreeHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := timeout(c)
		defer cancel()
		tree, err := d.Service.Tree(ctx)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.OK(c, tree)
	}
}

// ChoicesHandler lists the entries a new container can hold, and the
// special entries which can be added at the root.
//
//	@Summary      Entry choices
//	@Tags         admin
//	@Produce      json
//	@Security     BearerAuth
//	@Success      200  {object}  map[string][]menuconfig.Choice
//	@Failure      401  {object}  map[string]interface{}
//	@Failure      403  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/choices [get]
func ChoicesHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := timeout(c)
		defer cancel()
		entries, err := d.Service.ContainerChoices(ctx)
		if err != nil {
			return kit.FromError(err)
		}
		special, err := d.Service.SpecialChoices(ctx)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.OK(c, fiber.Map{"entries": entries, "special": special})
	}
}

// EditChoicesHandler lists the entries an existing container can hold.
//
//	@Summary      Container entry choices
//	@Tags         admin
//	@Produce      json
//	@Security     BearerAuth
//	@Param        id   path      int  true  "container id"
//	@Success      200  {array}   menuconfig.Choice
//	@Failure      404  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/containers/{id}/choices [get]
func EditChoicesHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := containerID(c)
		if err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		choices, err := d.Service.EditChoices(ctx, id)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.OK(c, choices)
	}
}

// CreateContainerHandler adds a container at the end of the menu.
//
//	@Summary      Add container
//	@Tags         admin
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        body  body  admin.ContainerRequest  true  "container"
//	@Success      201  {object}  entry.Record
//	@Failure      400  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/containers [post]
func CreateContainerHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ContainerRequest
		if err := kit.BindJSON(c, &req); err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		rec, err := d.Service.AddContainer(ctx, req.Name, req.Entries)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.Created(c, rec)
	}
}

// CreateSpecialHandler adds a special level-0 entry at the end of the menu.
//
//	@Summary      Add special entry
//	@Tags         admin
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        body  body  admin.SpecialContainerRequest  true  "special entry"
//	@Success      201  {object}  entry.Record
//	@Failure      400  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/special-containers [post]
func CreateSpecialHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SpecialContainerRequest
		if err := kit.BindJSON(c, &req); err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		rec, err := d.Service.AddSpecialContainer(ctx, req.EntryID)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.Created(c, rec)
	}
}

// UpdateContainerHandler renames a container and replaces its entries.
//
//	@Summary      Edit container
//	@Tags         admin
//	@Accept       json
//	@Produce      json
//	@Security     BearerAuth
//	@Param        id    path  int                     true  "container id"
//	@Param        body  body  admin.ContainerRequest  true  "container"
//	@Success      200  {object}  entry.Record
//	@Failure      400  {object}  map[string]interface{}
//	@Failure      404  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/containers/{id} [put]
func UpdateContainerHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := containerID(c)
		if err != nil {
			return err
		}
		var req ContainerRequest
		if err := kit.BindJSON(c, &req); err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		rec, err := d.Service.EditContainer(ctx, id, req.Name, req.Entries)
		if err != nil {
			return kit.FromError(err)
		}
		return kit.OK(c, rec)
	}
}

// DeleteContainerHandler deletes a root entry and its children.
//
//	@Summary      Delete root entry
//	@Tags         admin
//	@Security     BearerAuth
//	@Param        id   path  int  true  "record id"
//	@Success      204  {string}  string  "no content"
//	@Failure      404  {object}  map[string]interface{}
//	@Failure      409  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/containers/{id} [delete]
func DeleteContainerHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := containerID(c)
		if err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		if err := d.Service.DeleteContainer(ctx, id); err != nil {
			return kit.FromError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// SearchEntriesHandler finds entry classes by label or id.
//
//	@Summary      Search entries
//	@Tags         admin
//	@Produce      json
//	@Security     BearerAuth
//	@Param        q      query  string  true   "search text"
//	@Param        limit  query  int     false  "max results (default 20, max 100)"
//	@Success      200  {array}   esx.EntryDoc
//	@Failure      400  {object}  map[string]interface{}
//	@Router       /api/v1/admin/menu/entries/search [get]
func SearchEntriesHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return kit.BadRequest("q required", nil)
		}
		limit, err := kit.Limit(c, 20, 100)
		if err != nil {
			return err
		}
		ctx, cancel := timeout(c)
		defer cancel()
		if d.Search != nil {
			docs, err := d.Search(ctx, q, limit)
			if err == nil {
				return kit.OK(c, docs)
			}
			adminLogger.Warn("entry search failed, scanning registry", zap.String("q", q), zap.Error(err))
		}
		return kit.OK(c, scanRegistry(d, q, limit))
	}
}

func scanRegistry(d Deps, q string, limit int) []esx.EntryDoc {
	needle := strings.ToLower(q)
	docs := lo.Filter(esx.EntryDocs(d.Service.Registry().Classes()), func(doc esx.EntryDoc, _ int) bool {
		return strings.Contains(strings.ToLower(doc.Label), needle) || strings.Contains(doc.ID, needle)
	})
	return docs[:min(len(docs), limit)]
}
