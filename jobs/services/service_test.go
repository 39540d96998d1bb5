package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	resourceServices "github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

const jobUUID = "jjjjjjjjjjjjjjjjjjjjj"

func TestListByJob(t *testing.T) {
	ctx := context.Background()
	base := qb.Select(catalog.Payment, catalog.Payment.Col("uuid"))

	t.Run("filters by job and orders by index", func(t *testing.T) {
		mockRepo := new(resourceServices.MockRepository)
		mockRepo.On("Select", ctx, mock.MatchedBy(func(q sq.Sqlizer) bool {
			s, args, err := q.ToSql()
			return err == nil &&
				strings.Contains(s, "WHERE payment.job_uuid = $1") &&
				strings.HasSuffix(s, "ORDER BY payment.index ASC, payment.created_at ASC") &&
				len(args) == 1 && args[0] == jobUUID
		})).Return([]postgres.Row{{"uuid": "p1"}, {"uuid": "p2"}}, nil).Once()

		rows, err := NewPaymentService(mockRepo, base).ListByJob(ctx, jobUUID)

		require.NoError(t, err)
		assert.Len(t, rows, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wraps database errors", func(t *testing.T) {
		mockRepo := new(resourceServices.MockRepository)
		dbErr := errors.New("connection reset")
		mockRepo.On("Select", ctx, mock.Anything).Return(nil, dbErr).Once()

		_, err := NewPaymentService(mockRepo, base).ListByJob(ctx, jobUUID)

		require.ErrorIs(t, err, dbErr)
	})
}
