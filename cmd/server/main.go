package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rashikbuksh/Synaptech-Backend/auth"
	"github.com/rashikbuksh/Synaptech-Backend/internal/cache"
	dbi "github.com/rashikbuksh/Synaptech-Backend/internal/database/interfaces"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/authjwt"
	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/requestid"
	"github.com/rashikbuksh/Synaptech-Backend/internal/pkg/log"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
	"github.com/rashikbuksh/Synaptech-Backend/jobs"
	"github.com/rashikbuksh/Synaptech-Backend/migrations"
	"github.com/rashikbuksh/Synaptech-Backend/options"
	"github.com/rashikbuksh/Synaptech-Backend/public"
	"github.com/rashikbuksh/Synaptech-Backend/reports"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// publicRoutes are served without an access token
var publicRoutes = []authjwt.PublicRoute{
	{Method: fiber.MethodPost, Prefix: "/v1/signin"},
	{Method: fiber.MethodPost, Prefix: "/v1/hr/user/login"},
	{Method: fiber.MethodPost, Prefix: "/v1" + public.ContactUsPath},
	{Method: fiber.MethodGet, Prefix: "/v1/other/"},
}

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load platform config: %v\n", err)
		os.Exit(1)
	}
	log.SetLevel(log.ParseLevel(cfg.Server.LogLevel))

	ctx := context.Background()
	pg := cfg.Database.Postgres
	pgClient, err := postgres.NewClient(ctx, &dbi.PostgreSQLConfig{
		DSN:                pg.DSN,
		Host:               pg.Host,
		Port:               pg.Port,
		Username:           pg.Username,
		Password:           pg.Password,
		Database:           pg.Database,
		SSLMode:            pg.SSLMode,
		ConnectTimeout:     10,
		MaxOpenConnections: pg.MaxOpenConns,
		MaxIdleConnections: pg.MaxIdleConns,
		MaxLifetime:        int(pg.ConnMaxLifetime.Seconds()),
	})
	if err != nil {
		log.Error("Failed to create postgres client: %v", err)
		os.Exit(1)
	}
	defer pgClient.Close()

	if cfg.Database.AutoMigrate {
		if err := migrations.Apply(ctx, pgClient.DB()); err != nil {
			log.Error("Failed to apply migrations: %v", err)
			os.Exit(1)
		}
		log.Info("Schema migrations applied")
	}

	storage, err := cache.NewStorage(cfg.Cache)
	if err != nil {
		log.Error("Failed to create rate limit storage: %v", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.ErrorWithContext(c.UserContext(), "[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))
	app.Use("/v1", authjwt.New(authjwt.Config{
		Secret:       cfg.JWT.PrivateKey,
		PublicRoutes: publicRoutes,
	}))

	repo := repository.NewPostgresRepository(pgClient)

	resources.RegisterRoutes(app, resources.NewHandlers(repo))
	jobs.RegisterRoutes(app, jobs.NewHandlers(repo))
	reports.RegisterRoutes(app, reports.NewHandlers(repo))
	auth.RegisterRoutes(app, auth.NewAuthHandlers(repo, cfg), cfg, storage)
	options.RegisterRoutes(app, options.NewHandlers(repo))
	public.RegisterRoutes(app, public.NewHandlers(repo), cfg, storage)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("Starting Synaptech API Server on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
