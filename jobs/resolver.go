package jobs

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// reference is a job entry column that accepts either an id or a name
type reference struct {
	column string
	table  *qb.Table
}

var entryReferences = []reference{
	{column: "product_uuid", table: catalog.Product},
	{column: "vendor_uuid", table: catalog.Vendor},
}

// NameResolver turns product and vendor names on a job entry into ids,
// creating the product or vendor when no row carries that name.
type NameResolver struct {
	repo  repository.Repository
	newID func() (string, error)
	now   func() time.Time
}

func NewNameResolver(repo repository.Repository) *NameResolver {
	return &NameResolver{
		repo:  repo,
		newID: func() (string, error) { return gonanoid.New() },
		now:   time.Now,
	}
}

// Resolve rewrites values in place. It must run inside the write transaction.
func (r *NameResolver) Resolve(ctx context.Context, values map[string]interface{}) error {
	for _, ref := range entryReferences {
		value, ok := values[ref.column].(string)
		if !ok || value == "" {
			continue
		}
		id, err := r.resolve(ctx, ref.table, value, values)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", ref.column, err)
		}
		values[ref.column] = id
	}
	return nil
}

func (r *NameResolver) resolve(ctx context.Context, t *qb.Table, value string, entry map[string]interface{}) (string, error) {
	if len(value) == qb.IDLength {
		row, err := r.repo.SelectOne(ctx, qb.Select(t, t.Col("uuid")).Where(sq.Eq{t.Col("uuid"): value}))
		if err != nil {
			return "", err
		}
		if row != nil {
			return value, nil
		}
	}

	row, err := r.repo.SelectOne(ctx, qb.Select(t, t.Col("uuid")).Where(sq.Eq{t.Col("name"): value}))
	if err != nil {
		return "", err
	}
	if row != nil {
		return row.String("uuid"), nil
	}

	id, err := r.newID()
	if err != nil {
		return "", err
	}
	_, err = r.repo.Insert(ctx, t, r.newRow(id, value, entry), "uuid")
	if err != nil {
		return "", err
	}
	return id, nil
}

// newRow stamps the created row with the entry's author and time
func (r *NameResolver) newRow(id, name string, entry map[string]interface{}) map[string]interface{} {
	row := map[string]interface{}{
		"uuid":       id,
		"name":       name,
		"created_at": firstOf(entry, "created_at", "updated_at"),
	}
	if row["created_at"] == nil {
		row["created_at"] = r.now().Format(postgres.TimestampLayout)
	}
	if by := firstOf(entry, "created_by", "updated_by"); by != nil {
		row["created_by"] = by
	}
	return row
}

func firstOf(values map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := values[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
