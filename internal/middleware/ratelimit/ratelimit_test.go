package ratelimit

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
)

func newApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(handler)
	app.Post("/v1/signin", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func post(t *testing.T, app *fiber.App) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/v1/signin", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRateLimit_Signin_SuccessWithinLimits(t *testing.T) {
	app := newApp(NewSigninLimiter(nil, nil))

	for i := 0; i < 5; i++ {
		status, _ := post(t, app)
		assert.Equal(t, 200, status)
	}
}

func TestRateLimit_Signin_RejectsExcessiveRequests(t *testing.T) {
	app := newApp(NewSigninLimiter(nil, nil))

	for i := 0; i < 5; i++ {
		status, _ := post(t, app)
		require.Equal(t, 200, status)
	}

	status, body := post(t, app)
	assert.Equal(t, 429, status)
	assert.Contains(t, body, "RATE_LIMIT_EXCEEDED")
	assert.Contains(t, body, "signin")
	assert.Contains(t, body, "retryAfter")
}

func TestRateLimit_CustomLimits_AppliedCorrectly(t *testing.T) {
	app := newApp(NewContactUsLimiter(&EndpointLimits{
		ContactUsMaxRequests:    2,
		ContactUsWindowDuration: time.Minute,
	}, nil))

	for i := 0; i < 2; i++ {
		status, _ := post(t, app)
		require.Equal(t, 200, status)
	}

	status, body := post(t, app)
	assert.Equal(t, 429, status)
	assert.Contains(t, body, "contact")
}

func TestRateLimit_DefaultConfiguration(t *testing.T) {
	defaults := DefaultEndpointLimits()

	assert.Equal(t, 5, defaults.SigninMaxRequests)
	assert.Equal(t, 15*time.Minute, defaults.SigninWindowDuration)
	assert.Equal(t, 10, defaults.ContactUsMaxRequests)
	assert.Equal(t, time.Hour, defaults.ContactUsWindowDuration)
}

// recordingStorage is a map backed fiber.Storage that counts writes
type recordingStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func (s *recordingStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *recordingStorage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = map[string][]byte{}
	}
	s.data[key] = append([]byte(nil), val...)
	s.writes++
	return nil
}

func (s *recordingStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *recordingStorage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string][]byte{}
	return nil
}

func (s *recordingStorage) Close() error { return nil }

func TestRateLimit_UsesProvidedStorage(t *testing.T) {
	store := &recordingStorage{}
	app := newApp(NewSigninLimiter(nil, store))

	status, _ := post(t, app)
	assert.Equal(t, 200, status)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Greater(t, store.writes, 0)
	assert.NotEmpty(t, store.data)
}

func TestRateLimit_FromConfig(t *testing.T) {
	limits := platformconfig.RateLimitsConfig{
		Signin:    platformconfig.RateLimitConfig{Enabled: true, Max: 1, Duration: time.Minute},
		ContactUs: platformconfig.RateLimitConfig{Enabled: false, Max: 1, Duration: time.Minute},
	}

	t.Run("enabled limit applies the configured max", func(t *testing.T) {
		app := newApp(NewFromConfig(EndpointSignin, limits, nil))

		status, _ := post(t, app)
		require.Equal(t, 200, status)
		status, _ = post(t, app)
		assert.Equal(t, 429, status)
	})

	t.Run("disabled limit never rejects", func(t *testing.T) {
		app := newApp(NewFromConfig(EndpointContactUs, limits, nil))

		for i := 0; i < 3; i++ {
			status, _ := post(t, app)
			assert.Equal(t, 200, status)
		}
	})
}
