package resources

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/constraints"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

type Handlers struct {
	Resources []*handlers.ResourceHandler
}

// NewHandlers builds one handler per definition; Definitions() when none are given.
func NewHandlers(repo repository.Repository, defs ...*models.Definition) *Handlers {
	if len(defs) == 0 {
		defs = Definitions()
	}
	h := &Handlers{}
	for _, def := range defs {
		h.Resources = append(h.Resources, handlers.NewResourceHandler(services.NewService(repo, def)))
	}
	return h
}

// Mount registers the five CRUD endpoints of h under router.
// Ids of the wrong length on uuid keyed resources are answered as not found.
func Mount(router fiber.Router, h *handlers.ResourceHandler) {
	def := h.Definition()
	base := "/" + def.Path
	key := def.KeyColumn()
	item := base + "/:" + key

	router.Get(base, h.List)
	router.Post(base, h.Create)

	guard := func(c *fiber.Ctx) error { return c.Next() }
	if c, ok := def.Table.Column(key); ok && c.Type == qb.TypeID {
		guard = constraints.RequireLength(key, qb.IDLength, errors.HandleNotFound)
	}
	router.Get(item, guard, h.Get)
	router.Patch(item, guard, h.Update)
	router.Delete(item, guard, h.Delete)
}

// RegisterRoutes wires the generic resource endpoints under /v1.
// Authentication is applied to /v1 by the server.
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	group := app.Group("/v1")
	for _, h := range handlers.Resources {
		Mount(group, h)
	}
}
