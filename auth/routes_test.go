package auth

import (
	"net/http"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authErrors "github.com/rashikbuksh/Synaptech-Backend/auth/errors"
	authModels "github.com/rashikbuksh/Synaptech-Backend/auth/models"
	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	platformconfig "github.com/rashikbuksh/Synaptech-Backend/internal/platform/config"
	"github.com/rashikbuksh/Synaptech-Backend/internal/testutil"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

const (
	authUUID = "aaaaaaaaaaaaaaaaaaaaa"
	userUUID = "uuuuuuuuuuuuuuuuuuuuu"
)

func testConfig(t *testing.T) *platformconfig.Config {
	cfg, err := platformconfig.LoadFromMap(map[string]string{
		"PRIVATE_KEY":               testutil.TestSecret,
		"SALT":                      "4",
		"RATE_LIMIT_SIGNIN_ENABLED": "false",
	})
	require.NoError(t, err)
	return cfg
}

func setup(t *testing.T) (*testutil.HTTPHelper, *services.MockRepository) {
	mockRepo := new(services.MockRepository)
	cfg := testConfig(t)
	app := fiber.New()
	RegisterRoutes(app, NewAuthHandlers(mockRepo, cfg), cfg, nil)
	return testutil.NewHTTPHelper(t, app), mockRepo
}

func signinRow(t *testing.T, status bool) postgres.Row {
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	return postgres.Row{
		"uuid":      authUUID,
		"user_uuid": userUUID,
		"email":     "admin@synaptech.test",
		"pass":      string(hash),
		"status":    status,
		"name":      "Admin",
	}
}

func TestSigninRoutes(t *testing.T) {
	body := map[string]interface{}{"email": "admin@synaptech.test", "pass": "1234"}

	t.Run("signin and its alias", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("SelectOne", mock.Anything, mock.Anything).Return(signinRow(t, true), nil).Twice()

		for _, path := range []string{"/v1/signin", "/v1/hr/user/login"} {
			resp := helper.NewRequest(http.MethodPost, path, body).Send()
			require.Equal(t, http.StatusOK, resp.StatusCode, path)

			var out authModels.SigninResponse
			testutil.DecodeJSON(t, resp, &out)
			assert.NotEmpty(t, out.Token)
			assert.Equal(t, userUUID, out.User.UUID)
		}
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("SelectOne", mock.Anything, mock.Anything).Return(nil, nil).Once()

		resp := helper.NewRequest(http.MethodPost, "/v1/signin", body).Send()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty body is a validation error", func(t *testing.T) {
		helper, mockRepo := setup(t)

		resp := helper.NewRequest(http.MethodPost, "/v1/signin", map[string]interface{}{}).Send()
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var body resourceErrors.ValidationBody
		testutil.DecodeJSON(t, resp, &body)
		require.Len(t, body.Error.Issues, 1)
		assert.Equal(t, "invalid_updates", body.Error.Issues[0].Code)
		mockRepo.AssertNotCalled(t, "SelectOne", mock.Anything, mock.Anything)
	})

	t.Run("blank credentials are not found", func(t *testing.T) {
		helper, mockRepo := setup(t)

		resp := helper.NewRequest(http.MethodPost, "/v1/signin", map[string]interface{}{"email": "", "pass": ""}).Send()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockRepo.AssertNotCalled(t, "SelectOne", mock.Anything, mock.Anything)
	})

	t.Run("disabled account", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("SelectOne", mock.Anything, mock.Anything).Return(signinRow(t, false), nil).Once()

		resp := helper.NewRequest(http.MethodPost, "/v1/signin", body).Send()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var msg authErrors.MessageResponse
		testutil.DecodeJSON(t, resp, &msg)
		assert.Equal(t, "Account is disabled", msg.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("SelectOne", mock.Anything, mock.Anything).Return(signinRow(t, true), nil).Once()

		resp := helper.NewRequest(http.MethodPost, "/v1/signin", map[string]interface{}{"email": "admin@synaptech.test", "pass": "x"}).Send()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var msg authErrors.MessageResponse
		testutil.DecodeJSON(t, resp, &msg)
		assert.Equal(t, "Invalid password", msg.Message)
	})
}

func TestAuthUserRoutes(t *testing.T) {
	t.Run("list never projects the password", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("Select", mock.Anything, mock.MatchedBy(func(q sq.Sqlizer) bool {
			return !strings.Contains(services.SQL(q), "auth_user.pass")
		})).Return([]postgres.Row{{"uuid": authUUID}}, nil).Once()

		resp := helper.NewRequest(http.MethodGet, "/v1/hr/auth-user", nil).Send()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("create hashes the password and echoes the user", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("Insert", mock.Anything, catalog.AuthUser, mock.MatchedBy(func(v map[string]interface{}) bool {
			pass, _ := v["pass"].(string)
			return bcrypt.CompareHashAndPassword([]byte(pass), []byte("1234")) == nil
		}), "user_uuid").Return(userUUID, nil).Once()

		resp := helper.NewRequest(http.MethodPost, "/v1/hr/auth-user", map[string]interface{}{
			"uuid":       authUUID,
			"user_uuid":  userUUID,
			"pass":       "1234",
			"status":     true,
			"created_at": "2024-05-01 10:00:00",
		}).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var toast models.Toast
		testutil.DecodeJSON(t, resp, &toast)
		assert.Equal(t, userUUID+" created", toast.Message)
	})

	t.Run("can access", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("SelectOne", mock.Anything, mock.Anything).Return(postgres.Row{"can_access": "x"}, nil).Once()

		resp := helper.NewRequest(http.MethodGet, "/v1/hr/users/can-access/"+authUUID, nil).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out map[string]interface{}
		testutil.DecodeJSON(t, resp, &out)
		assert.Equal(t, "x", out["can_access"])
	})

	t.Run("status", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("Update", mock.Anything, catalog.AuthUser, "uuid", authUUID, map[string]interface{}{"status": true}, "uuid").
			Return(authUUID, true, nil).Once()

		resp := helper.NewRequest(http.MethodPatch, "/v1/hr/users/status/"+authUUID, map[string]interface{}{"status": true}).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var toast models.Toast
		testutil.DecodeJSON(t, resp, &toast)
		assert.Equal(t, authUUID+" updated", toast.Message)
	})

	t.Run("password of missing auth user", func(t *testing.T) {
		helper, mockRepo := setup(t)
		mockRepo.On("Update", mock.Anything, catalog.AuthUser, "uuid", authUUID, mock.Anything, "user_uuid").
			Return("", false, nil).Once()

		resp := helper.NewRequest(http.MethodPatch, "/v1/hr/users/password/"+authUUID, map[string]interface{}{"pass": "n3w"}).Send()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
