package services

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/mock"

	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// MockRepository is a test double for the resource repository.
// WithTransaction runs the callback with the context it was given.
type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) Select(ctx context.Context, q sq.Sqlizer) ([]postgres.Row, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]postgres.Row), args.Error(1)
}

func (m *MockRepository) SelectOne(ctx context.Context, q sq.Sqlizer) (postgres.Row, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(postgres.Row), args.Error(1)
}

func (m *MockRepository) Insert(ctx context.Context, t *qb.Table, values map[string]interface{}, returning string) (string, error) {
	args := m.Called(ctx, t, values, returning)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) InsertMany(ctx context.Context, t *qb.Table, rows []map[string]interface{}) (int64, error) {
	args := m.Called(ctx, t, rows)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, values map[string]interface{}, returning string) (string, bool, error) {
	args := m.Called(ctx, t, keyColumn, key, values, returning)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) Delete(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, returning string) (string, bool, error) {
	args := m.Called(ctx, t, keyColumn, key, returning)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// SQL renders q for assertions inside mock.MatchedBy
func SQL(q sq.Sqlizer) string {
	s, _, err := q.ToSql()
	if err != nil {
		return ""
	}
	return s
}
