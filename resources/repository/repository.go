package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
)

// Repository defines data access shared by every resource.
type Repository interface {
	// Select runs a read query; no rows is an empty slice.
	Select(ctx context.Context, q sq.Sqlizer) ([]postgres.Row, error)

	// SelectOne returns the first row, or nil when there is none.
	SelectOne(ctx context.Context, q sq.Sqlizer) (postgres.Row, error)

	// Insert writes one row and returns the value of the returning column.
	Insert(ctx context.Context, t *qb.Table, values map[string]interface{}, returning string) (string, error)

	// InsertMany writes several rows in one statement and returns how many were written.
	// Columns missing from a row take their database default.
	InsertMany(ctx context.Context, t *qb.Table, rows []map[string]interface{}) (int64, error)

	// Update writes values to the row whose key column equals key; found is false when no row matched.
	Update(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, values map[string]interface{}, returning string) (label string, found bool, err error)

	// Delete removes the row whose key column equals key; found is false when no row matched.
	Delete(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, returning string) (label string, found bool, err error)

	// WithTransaction runs fn with a transaction carried by its context.
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
