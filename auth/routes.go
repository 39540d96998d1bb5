package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/auth/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/auth/services"
	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/ratelimit"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// AuthHandlers holds all the handlers this router needs.
type AuthHandlers struct {
	AuthHandler *handlers.AuthHandler
	Resources   *resources.Handlers
}

// NewAuthHandlers wires the auth service and the auth user resource from cfg
func NewAuthHandlers(repo repository.Repository, cfg *platformconfig.Config) *AuthHandlers {
	hasher := services.NewPasswordHasher(cfg.Security.SaltRounds, cfg.Security.PasswordMinScore)
	svc := services.NewAuthService(repo, hasher, services.TokenConfig{
		Secret: cfg.JWT.PrivateKey,
		TTL:    cfg.JWT.TTL,
	})
	return &AuthHandlers{
		AuthHandler: handlers.NewAuthHandler(svc),
		Resources:   resources.NewHandlers(repo, AuthUser(hasher)),
	}
}

// RegisterRoutes is the single entry point for setting up auth routes.
// Signin is public and rate limited; storage nil keeps counters in memory.
func RegisterRoutes(app *fiber.App, h *AuthHandlers, cfg *platformconfig.Config, storage fiber.Storage) {
	group := app.Group("/v1")

	signinLimiter := ratelimit.NewFromConfig(ratelimit.EndpointSignin, cfg.RateLimits, storage)
	group.Post("/signin", signinLimiter, h.AuthHandler.Signin)
	group.Post("/hr/user/login", signinLimiter, h.AuthHandler.Signin)

	group.Get("/hr/users/can-access/:uuid", h.AuthHandler.GetCanAccess)
	group.Patch("/hr/users/can-access/:uuid", h.AuthHandler.PatchCanAccess)
	group.Patch("/hr/users/status/:uuid", h.AuthHandler.PatchStatus)
	group.Patch("/hr/users/password/:uuid", h.AuthHandler.PatchPassword)

	resources.RegisterRoutes(app, h.Resources)
}
