// Package public serves the portfolio contact form.
package public

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/ratelimit"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

// ContactUsPath is the public form endpoint below /v1
const ContactUsPath = "/portfolio/contact-us"

// ContactUs is public/contact-us, keyed by its serial id
func ContactUs() *models.Definition {
	return &models.Definition{
		Path:      "public/contact-us",
		Table:     catalog.ContactUs,
		Key:       "id",
		Label:     "name",
		List:      qb.Select(catalog.ContactUs, qb.TableColumns(catalog.ContactUs)...),
		Validator: validation.ForTable(catalog.ContactUs),
	}
}

type Handlers struct {
	ContactUs *handlers.ResourceHandler
}

func NewHandlers(repo repository.Repository) *Handlers {
	return &Handlers{ContactUs: handlers.NewResourceHandler(services.NewService(repo, ContactUs()))}
}

// RegisterRoutes wires the public form and the authenticated inbox.
func RegisterRoutes(app *fiber.App, h *Handlers, cfg *platformconfig.Config, storage fiber.Storage) {
	group := app.Group("/v1")

	group.Post(ContactUsPath,
		ratelimit.NewFromConfig(ratelimit.EndpointContactUs, cfg.RateLimits, storage),
		h.ContactUs.Create,
	)
	resources.Mount(group, h.ContactUs)
}
