package options

import (
	"net/http"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	"github.com/rashikbuksh/Synaptech-Backend/internal/testutil"
	optionServices "github.com/rashikbuksh/Synaptech-Backend/options/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

func TestOptionQueries(t *testing.T) {
	seen := map[string]bool{}
	for _, o := range optionServices.Options() {
		require.False(t, seen[o.Path], o.Path)
		seen[o.Path] = true

		s, args, err := o.Query.ToSql()
		require.NoError(t, err, o.Path)
		assert.Empty(t, args)
		assert.Contains(t, s, " AS value", o.Path)
		assert.Contains(t, s, " AS label", o.Path)
	}
	assert.Len(t, seen, 10)
}

func TestValueLabelRoutes(t *testing.T) {
	mockRepo := new(services.MockRepository)
	app := fiber.New()
	RegisterRoutes(app, NewHandlers(mockRepo))
	helper := testutil.NewHTTPHelper(t, app)

	t.Run("users label joins name and email", func(t *testing.T) {
		mockRepo.On("Select", mock.Anything, mock.MatchedBy(func(q sq.Sqlizer) bool {
			s := services.SQL(q)
			return strings.Contains(s, "users.name || '-' || users.email AS label") && strings.Contains(s, "FROM hr.users")
		})).Return([]postgres.Row{{"value": "u1", "label": "Admin-admin@synaptech.test"}}, nil).Once()

		resp := helper.NewRequest(http.MethodGet, "/v1/other/hr/users/value/label", nil).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rows []map[string]interface{}
		testutil.DecodeJSON(t, resp, &rows)
		assert.Equal(t, "Admin-admin@synaptech.test", rows[0]["label"])
	})

	t.Run("users with access come from auth users", func(t *testing.T) {
		mockRepo.On("Select", mock.Anything, mock.MatchedBy(func(q sq.Sqlizer) bool {
			s := services.SQL(q)
			return strings.Contains(s, "FROM hr.auth_user LEFT JOIN hr.users") && strings.Contains(s, "auth_user.can_access")
		})).Return([]postgres.Row{{"value": "u1", "label": "Admin-admin@synaptech.test", "can_access": "lib,hr"}}, nil).Once()

		resp := helper.NewRequest(http.MethodGet, "/v1/other/hr/users-can-access/value/label", nil).Send()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var rows []map[string]interface{}
		testutil.DecodeJSON(t, resp, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "lib,hr", rows[0]["can_access"])
	})

	t.Run("unknown source", func(t *testing.T) {
		resp := helper.NewRequest(http.MethodGet, "/v1/other/lib/expense/value/label", nil).Send()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
