// Package ratelimit limits requests to the public write endpoints per client IP
package ratelimit

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/rashikbuksh/Synaptech-Backend/internal/pkg/log"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
)

// EndpointLimits defines rate limiting configuration for specific endpoints
type EndpointLimits struct {
	// Signin attempts: 5 per 15 minutes per IP
	SigninMaxRequests    int
	SigninWindowDuration time.Duration

	// Contact form submissions: 10 per hour per IP
	ContactUsMaxRequests    int
	ContactUsWindowDuration time.Duration
}

// DefaultEndpointLimits returns the default limits
func DefaultEndpointLimits() EndpointLimits {
	return EndpointLimits{
		SigninMaxRequests:    5,
		SigninWindowDuration: 15 * time.Minute,

		ContactUsMaxRequests:    10,
		ContactUsWindowDuration: 1 * time.Hour,
	}
}

// EndpointType represents the public endpoints that are rate limited
type EndpointType int

const (
	EndpointSignin EndpointType = iota
	EndpointContactUs
)

// Config holds the configuration for rate limiting middleware
type Config struct {
	// Endpoint type to determine which limits to apply
	EndpointType EndpointType

	// Custom limits (optional - uses defaults if not provided)
	Limits *EndpointLimits

	// Storage keeps the counters; nil means in-process memory
	Storage fiber.Storage

	// Next defines a function to skip this middleware when returned true
	Next func(c *fiber.Ctx) bool

	// Custom key generator (optional - uses default IP-based if not provided)
	KeyGenerator func(c *fiber.Ctx) string

	// LimitReached defines the response when rate limit is exceeded
	LimitReached func(c *fiber.Ctx) error
}

// configDefault sets default configuration values
func configDefault(config Config) Config {
	if config.Limits == nil {
		limits := DefaultEndpointLimits()
		config.Limits = &limits
	}

	// Rate limit by IP + endpoint path
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	if config.LimitReached == nil {
		config.LimitReached = func(c *fiber.Ctx) error {
			endpointName := getEndpointName(config.EndpointType)
			windowDuration := getWindowDuration(config.EndpointType, config.Limits)

			log.Warn("[RateLimit] Rate limit exceeded for %s from IP: %s", endpointName, c.IP())

			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s attempts. Please try again later.", endpointName),
				"retryAfter": int(windowDuration.Seconds()),
			})
		}
	}

	return config
}

// getEndpointName returns human-readable endpoint name for logging
func getEndpointName(endpointType EndpointType) string {
	switch endpointType {
	case EndpointSignin:
		return "signin"
	case EndpointContactUs:
		return "contact"
	default:
		return "unknown"
	}
}

func getMaxRequests(endpointType EndpointType, limits *EndpointLimits) int {
	switch endpointType {
	case EndpointSignin:
		return limits.SigninMaxRequests
	case EndpointContactUs:
		return limits.ContactUsMaxRequests
	default:
		return 5
	}
}

func getWindowDuration(endpointType EndpointType, limits *EndpointLimits) time.Duration {
	switch endpointType {
	case EndpointSignin:
		return limits.SigninWindowDuration
	case EndpointContactUs:
		return limits.ContactUsWindowDuration
	default:
		return 15 * time.Minute
	}
}

// New creates a new rate limiting middleware handler
func New(config Config) fiber.Handler {
	cfg := configDefault(config)

	return limiter.New(limiter.Config{
		Max:          getMaxRequests(cfg.EndpointType, cfg.Limits),
		Expiration:   getWindowDuration(cfg.EndpointType, cfg.Limits),
		KeyGenerator: cfg.KeyGenerator,
		LimitReached: cfg.LimitReached,
		Next:         cfg.Next,
		Storage:      cfg.Storage,
	})
}

// NewSigninLimiter creates a rate limiter for the signin endpoints
func NewSigninLimiter(customLimits *EndpointLimits, storage fiber.Storage) fiber.Handler {
	return New(Config{
		EndpointType: EndpointSignin,
		Limits:       customLimits,
		Storage:      storage,
	})
}

// NewContactUsLimiter creates a rate limiter for the public contact form
func NewContactUsLimiter(customLimits *EndpointLimits, storage fiber.Storage) fiber.Handler {
	return New(Config{
		EndpointType: EndpointContactUs,
		Limits:       customLimits,
		Storage:      storage,
	})
}

// LimitsFromConfig converts the configured limits
func LimitsFromConfig(cfg platformconfig.RateLimitsConfig) *EndpointLimits {
	return &EndpointLimits{
		SigninMaxRequests:       cfg.Signin.Max,
		SigninWindowDuration:    cfg.Signin.Duration,
		ContactUsMaxRequests:    cfg.ContactUs.Max,
		ContactUsWindowDuration: cfg.ContactUs.Duration,
	}
}

// NewFromConfig builds the limiter of endpoint; a disabled limit lets every request through
func NewFromConfig(endpoint EndpointType, cfg platformconfig.RateLimitsConfig, storage fiber.Storage) fiber.Handler {
	enabled := cfg.Signin.Enabled
	if endpoint == EndpointContactUs {
		enabled = cfg.ContactUs.Enabled
	}
	var next func(c *fiber.Ctx) bool
	if !enabled {
		next = func(*fiber.Ctx) bool { return true }
	}
	return New(Config{
		EndpointType: endpoint,
		Limits:       LimitsFromConfig(cfg),
		Storage:      storage,
		Next:         next,
	})
}
