package repository

import (
	"context"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
)

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a repository over the shared client.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) Select(ctx context.Context, q sq.Sqlizer) ([]postgres.Row, error) {
	rows, err := r.client.Rows(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return rows, nil
}

func (r *postgresRepository) SelectOne(ctx context.Context, q sq.Sqlizer) (postgres.Row, error) {
	row, err := r.client.Row(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select one: %w", err)
	}
	return row, nil
}

func (r *postgresRepository) Insert(ctx context.Context, t *qb.Table, values map[string]interface{}, returning string) (string, error) {
	stmt := InsertStatement(t, values, returning)

	row, err := r.client.Row(ctx, stmt)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", t.From(), err)
	}
	if row == nil {
		return "", fmt.Errorf("insert %s: no row returned", t.From())
	}
	return row.String(returning), nil
}

func (r *postgresRepository) InsertMany(ctx context.Context, t *qb.Table, rows []map[string]interface{}) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	n, err := r.client.Exec(ctx, InsertManyStatement(t, rows))
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.From(), err)
	}
	return n, nil
}

func (r *postgresRepository) Update(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, values map[string]interface{}, returning string) (string, bool, error) {
	stmt := qb.Builder().
		Update(t.From()).
		SetMap(values).
		Where(sq.Eq{keyColumn: key}).
		Suffix("RETURNING " + returning)

	row, err := r.client.Row(ctx, stmt)
	if err != nil {
		return "", false, fmt.Errorf("update %s: %w", t.From(), err)
	}
	if row == nil {
		return "", false, nil
	}
	return row.String(returning), true, nil
}

func (r *postgresRepository) Delete(ctx context.Context, t *qb.Table, keyColumn string, key interface{}, returning string) (string, bool, error) {
	stmt := qb.Builder().
		Delete(t.From()).
		Where(sq.Eq{keyColumn: key}).
		Suffix("RETURNING " + returning)

	row, err := r.client.Row(ctx, stmt)
	if err != nil {
		return "", false, fmt.Errorf("delete %s: %w", t.From(), err)
	}
	if row == nil {
		return "", false, nil
	}
	return row.String(returning), true, nil
}

func (r *postgresRepository) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return r.client.WithTransaction(ctx, fn)
}

// InsertStatement builds a single row insert returning one column
func InsertStatement(t *qb.Table, values map[string]interface{}, returning string) sq.InsertBuilder {
	return qb.Builder().
		Insert(t.From()).
		SetMap(values).
		Suffix("RETURNING " + returning)
}

// InsertManyStatement builds a multi row insert over the union of the rows' columns.
// A column a row does not carry is written as DEFAULT.
func InsertManyStatement(t *qb.Table, rows []map[string]interface{}) sq.InsertBuilder {
	seen := map[string]struct{}{}
	var columns []string
	for _, row := range rows {
		for c := range row {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				columns = append(columns, c)
			}
		}
	}
	sort.Strings(columns)

	stmt := qb.Builder().Insert(t.From()).Columns(columns...)
	for _, row := range rows {
		vals := make([]interface{}, len(columns))
		for i, c := range columns {
			v, ok := row[c]
			if !ok {
				vals[i] = sq.Expr("DEFAULT")
				continue
			}
			vals[i] = v
		}
		stmt = stmt.Values(vals...)
	}
	return stmt
}
