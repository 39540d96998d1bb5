package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, built once at start and passed to handlers
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	JWT        JWTConfig        `json:"jwt"`
	Security   SecurityConfig   `json:"security"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           int      `json:"port"`
	ServerURL      string   `json:"serverUrl"`
	ProductionURL  string   `json:"productionUrl"`
	AllowedOrigins []string `json:"allowedOrigins"`
	LogLevel       string   `json:"logLevel"`
	Debug          bool     `json:"debug"`
	BodyLimit      int      `json:"bodyLimit"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres    PostgreSQLConfig `json:"postgres"`
	AutoMigrate bool             `json:"autoMigrate"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	DSN             string        `json:"dsn"`
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
}

// JWTConfig holds JWT-related configuration. Tokens are HS256 signed with PrivateKey.
type JWTConfig struct {
	PrivateKey string        `json:"privateKey"`
	TTL        time.Duration `json:"ttl"`
}

// SecurityConfig holds password hashing configuration
type SecurityConfig struct {
	// SaltRounds is the bcrypt cost
	SaltRounds int `json:"saltRounds"`
	// PasswordMinScore is the minimum zxcvbn score (0-4); 0 disables the check
	PasswordMinScore int `json:"passwordMinScore"`
}

// CacheConfig selects where rate limit counters live
type CacheConfig struct {
	Backend string      `json:"backend"`
	Prefix  string      `json:"prefix"`
	Redis   RedisConfig `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string        `json:"address"`
	Password     string        `json:"password"`
	Database     int           `json:"database"`
	PoolSize     int           `json:"poolSize"`
	MinIdleConns int           `json:"minIdleConns"`
	DialTimeout  time.Duration `json:"dialTimeout"`
}

// RateLimitConfig holds rate limiting configuration for a specific endpoint
type RateLimitConfig struct {
	Enabled  bool          `json:"enabled"`
	Max      int           `json:"max"`
	Duration time.Duration `json:"duration"`
}

// RateLimitsConfig holds rate limiting configuration for all endpoints
type RateLimitsConfig struct {
	Signin    RateLimitConfig `json:"signin"`
	ContactUs RateLimitConfig `json:"contactUs"`
}

// LoadFromEnv loads configuration from the environment.
// Precedence: explicit environment variables, then the .env file, then defaults.
func LoadFromEnv() (*Config, error) {
	// godotenv never overrides variables that are already set
	envPaths := []string{".env", "../.env", "../../.env"}

	var loadErr error
	for _, envPath := range envPaths {
		loadErr = godotenv.Load(envPath)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		fmt.Println("INFO: .env file not found, using environment variables and defaults.")
	}

	return load(func(key string) (string, bool) {
		v := os.Getenv(key)
		return v, v != ""
	})
}

// LoadFromMap loads configuration from an in-memory map.
// Tests use it to exercise configuration without touching the process environment.
func LoadFromMap(envMap map[string]string) (*Config, error) {
	return load(func(key string) (string, bool) {
		v, ok := envMap[key]
		return v, ok
	})
}

type lookupFunc func(key string) (string, bool)

func load(lookup lookupFunc) (*Config, error) {
	e := env{lookup: lookup}

	config := &Config{
		Server: ServerConfig{
			Port:           e.int("PORT", 9999),
			ServerURL:      e.str("SERVER_URL", "http://localhost:3005"),
			ProductionURL:  e.str("PRODUCTION_URL", ""),
			AllowedOrigins: e.list("ALLOWED_ORIGINS", nil),
			LogLevel:       e.str("LOG_LEVEL", "info"),
			Debug:          e.bool("DEBUG", false),
			BodyLimit:      e.int("BODY_LIMIT", 4*1024*1024),
		},
		Database: DatabaseConfig{
			AutoMigrate: e.bool("AUTO_MIGRATE", false),
			Postgres: PostgreSQLConfig{
				DSN:             e.str("DATABASE_URL", ""),
				Host:            e.str("POSTGRES_HOST", "localhost"),
				Port:            e.int("POSTGRES_PORT", 5432),
				Username:        e.str("POSTGRES_USERNAME", ""),
				Password:        e.str("POSTGRES_PASSWORD", ""),
				Database:        e.str("POSTGRES_DATABASE", "synaptech"),
				SSLMode:         e.str("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    e.int("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    e.int("POSTGRES_MAX_IDLE_CONNS", 25),
				ConnMaxLifetime: time.Duration(e.int("POSTGRES_CONN_MAX_LIFETIME", 300)) * time.Second,
			},
		},
		JWT: JWTConfig{
			PrivateKey: e.str("PRIVATE_KEY", ""),
			TTL:        e.duration("JWT_TTL", 24*time.Hour),
		},
		Security: SecurityConfig{
			SaltRounds:       e.int("SALT", 10),
			PasswordMinScore: e.int("PASSWORD_MIN_SCORE", 0),
		},
		Cache: CacheConfig{
			Backend: e.str("RATE_LIMIT_STORE", "memory"),
			Prefix:  e.str("CACHE_PREFIX", "synaptech:"),
			Redis: RedisConfig{
				Address:      e.str("REDIS_ADDRESS", "localhost:6379"),
				Password:     e.str("REDIS_PASSWORD", ""),
				Database:     e.int("REDIS_DATABASE", 0),
				PoolSize:     e.int("REDIS_POOL_SIZE", 10),
				MinIdleConns: e.int("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			},
		},
		RateLimits: RateLimitsConfig{
			Signin: RateLimitConfig{
				Enabled:  e.bool("RATE_LIMIT_SIGNIN_ENABLED", true),
				Max:      e.int("RATE_LIMIT_SIGNIN_MAX", 5),
				Duration: e.duration("RATE_LIMIT_SIGNIN_DURATION", 15*time.Minute),
			},
			ContactUs: RateLimitConfig{
				Enabled:  e.bool("RATE_LIMIT_CONTACT_US_ENABLED", true),
				Max:      e.int("RATE_LIMIT_CONTACT_US_MAX", 10),
				Duration: e.duration("RATE_LIMIT_CONTACT_US_DURATION", 1*time.Hour),
			},
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for required fields
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.JWT.PrivateKey) == "" {
		errors = append(errors, "PRIVATE_KEY is required")
	}
	if c.Security.SaltRounds < 4 || c.Security.SaltRounds > 31 {
		errors = append(errors, "SALT must be between 4 and 31")
	}
	if c.Security.PasswordMinScore < 0 || c.Security.PasswordMinScore > 4 {
		errors = append(errors, "PASSWORD_MIN_SCORE must be between 0 and 4")
	}

	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, c.Cache.Backend) {
		errors = append(errors, fmt.Sprintf("RATE_LIMIT_STORE must be one of: %s", strings.Join(validBackends, ", ")))
	}

	validLevels := []string{"fatal", "error", "warn", "info", "debug", "trace", "silent"}
	if !contains(validLevels, c.Server.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLevels, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// Origins returns the CORS origins: ALLOWED_ORIGINS when set, else the server and production URLs
func (c *Config) Origins() string {
	origins := c.Server.AllowedOrigins
	if len(origins) == 0 {
		for _, o := range []string{c.Server.ServerURL, c.Server.ProductionURL} {
			if o != "" {
				origins = append(origins, o)
			}
		}
	}
	return strings.Join(origins, ",")
}

// env reads typed values through a lookup, falling back to defaults on absence or parse errors
type env struct {
	lookup lookupFunc
}

func (e env) str(key, defaultValue string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return defaultValue
}

func (e env) int(key string, defaultValue int) int {
	if v, ok := e.lookup(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func (e env) bool(key string, defaultValue bool) bool {
	if v, ok := e.lookup(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func (e env) duration(key string, defaultValue time.Duration) time.Duration {
	if v, ok := e.lookup(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func (e env) list(key string, defaultValue []string) []string {
	v, ok := e.lookup(key)
	if !ok {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
