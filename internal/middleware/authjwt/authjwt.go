package authjwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rashikbuksh/Synaptech-Backend/internal/types"
)

// Claims is the access token payload
type Claims struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// PublicRoute is a method and path prefix that skips authentication
type PublicRoute struct {
	Method string
	Prefix string
}

// Config defines the config for the JWT middleware.
type Config struct {
	// Secret signs and verifies HS256 tokens
	Secret string
	// PublicRoutes are served without a token
	PublicRoutes []PublicRoute
	// The context key to store the UserContext.
	UserCtxName string
}

// Issue signs an access token for the user valid for ttl from now
func Issue(secret, uuid, username string, ttl time.Duration, now time.Time) (string, Claims, error) {
	claims := Claims{
		UUID:     uuid,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return token, claims, nil
}

// ValidateToken verifies an HS256 token and returns its claims.
// It does not write to any response.
func ValidateToken(tokenString, secret string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Claims{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.UUID == "" {
		return Claims{}, errors.New("missing uuid in token")
	}
	return claims, nil
}

// IsPublic reports whether method and path match one of the public routes
func IsPublic(routes []PublicRoute, method, path string) bool {
	for _, r := range routes {
		if r.Method == method && strings.HasPrefix(path, r.Prefix) {
			return true
		}
	}
	return false
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	if cfg.UserCtxName == "" {
		cfg.UserCtxName = types.UserCtxName
	}

	return func(c *fiber.Ctx) error {
		if IsPublic(cfg.PublicRoutes, c.Method(), c.Path()) {
			return c.Next()
		}

		var tokenString string

		// Authorization header first, then the access_token cookie
		authHeader := c.Get(types.HeaderAuthorization)
		if strings.HasPrefix(authHeader, types.BearerPrefix) {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeader, types.BearerPrefix))
		}
		if tokenString == "" {
			tokenString = c.Cookies(types.AccessTokenCookie)
		}

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid JWT",
			})
		}

		claims, err := ValidateToken(tokenString, cfg.Secret)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token has expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"code":    "UNAUTHORIZED",
				"message": message,
			})
		}

		c.Locals(cfg.UserCtxName, types.UserContext{UUID: claims.UUID, Username: claims.Username})
		return c.Next()
	}
}

// User returns the authenticated caller, if any
func User(c *fiber.Ctx) (types.UserContext, bool) {
	u, ok := c.Locals(types.UserCtxName).(types.UserContext)
	return u, ok
}
