package public

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
	"github.com/rashikbuksh/Synaptech-Backend/internal/testutil"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

func setup(t *testing.T, env map[string]string) (*testutil.HTTPHelper, *services.MockRepository) {
	env["PRIVATE_KEY"] = testutil.TestSecret
	cfg, err := platformconfig.LoadFromMap(env)
	require.NoError(t, err)

	mockRepo := new(services.MockRepository)
	app := fiber.New()
	RegisterRoutes(app, NewHandlers(mockRepo), cfg, nil)
	return testutil.NewHTTPHelper(t, app), mockRepo
}

func message() map[string]interface{} {
	return map[string]interface{}{
		"name":       "Jane",
		"email":      "jane@example.com",
		"message":    "Hello",
		"created_at": "2024-05-01 10:00:00",
	}
}

func TestContactUs(t *testing.T) {
	t.Run("form submission", func(t *testing.T) {
		helper, mockRepo := setup(t, map[string]string{})
		mockRepo.On("Insert", mock.Anything, catalog.ContactUs, message(), "name").Return("Jane", nil).Once()

		payload := message()
		payload["id"] = 99
		resp := helper.NewRequest(http.MethodPost, "/v1/portfolio/contact-us", payload).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var toast models.Toast
		testutil.DecodeJSON(t, resp, &toast)
		assert.Equal(t, "Jane created", toast.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("form is rate limited", func(t *testing.T) {
		helper, mockRepo := setup(t, map[string]string{"RATE_LIMIT_CONTACT_US_MAX": "1"})
		mockRepo.On("Insert", mock.Anything, catalog.ContactUs, mock.Anything, "name").Return("Jane", nil).Once()

		resp := helper.NewRequest(http.MethodPost, "/v1/portfolio/contact-us", message()).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = helper.NewRequest(http.MethodPost, "/v1/portfolio/contact-us", message()).Send()
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("inbox is keyed by id", func(t *testing.T) {
		helper, mockRepo := setup(t, map[string]string{})
		mockRepo.On("Delete", mock.Anything, catalog.ContactUs, "id", 7, "name").Return("Jane", true, nil).Once()

		resp := helper.NewRequest(http.MethodDelete, "/v1/public/contact-us/7", nil).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = helper.NewRequest(http.MethodDelete, "/v1/public/contact-us/seven", nil).Send()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
