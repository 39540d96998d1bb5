package jobs

import (
	"context"
	"encoding/json"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/testutil"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

type detailSerial struct {
	Serial string `json:"serial"`
	Index  int    `json:"index"`
}

type detailEntry struct {
	UUID          string         `json:"uuid"`
	Index         int            `json:"index"`
	Quantity      float64        `json:"quantity"`
	ProductSerial []detailSerial `json:"product_serial"`
}

type detailPayment struct {
	Index  int     `json:"index"`
	Amount float64 `json:"amount"`
}

func loadDetail(t *testing.T, repo repository.Repository, jobUUID string) postgres.Row {
	t.Helper()
	q := qb.Shape(Job().List, JobDetail()...).Where(sq.Eq{catalog.Job.Col("uuid"): jobUUID})
	row, err := repo.SelectOne(context.Background(), q)
	require.NoError(t, err)
	require.NotNil(t, row)
	return row
}

func decodeCollection(t *testing.T, row postgres.Row, name string, v interface{}) {
	t.Helper()
	raw, ok := row[name].(json.RawMessage)
	require.True(t, ok, "%s is %T", name, row[name])
	require.NoError(t, json.Unmarshal(raw, v))
}

func TestJobDetail_EmptyJob(t *testing.T) {
	client := testutil.Postgres(t)
	fx := testutil.Seed(t, client)
	repo := repository.NewPostgresRepository(client)

	row := loadDetail(t, repo, fx.JobUUID)

	assert.JSONEq(t, `[]`, string(row["job_entry"].(json.RawMessage)))
	assert.JSONEq(t, `[]`, string(row["payment"].(json.RawMessage)))
	assert.Equal(t, 0.0, row["total_paid"])
	assert.Equal(t, 0.0, row["total_expense"])
	assert.Equal(t, "", row["payment_methods"])
}

func TestJobDetail_ChildrenOrderedByIndex(t *testing.T) {
	client := testutil.Postgres(t)
	fx := testutil.Seed(t, client)
	repo := repository.NewPostgresRepository(client)
	ctx := context.Background()

	insert := func(t *testing.T, table *qb.Table, values map[string]interface{}) string {
		t.Helper()
		id := testutil.NewID(t)
		values["uuid"] = id
		values["created_at"] = testutil.Now()
		_, err := repo.Insert(ctx, table, values, "uuid")
		require.NoError(t, err)
		return id
	}

	// inserted in reverse so row order alone cannot satisfy the assertions
	second := insert(t, catalog.JobEntry, map[string]interface{}{"job_uuid": fx.JobUUID, "index": 2, "quantity": 3})
	first := insert(t, catalog.JobEntry, map[string]interface{}{"job_uuid": fx.JobUUID, "index": 1, "quantity": 1})
	insert(t, catalog.ProductSerial, map[string]interface{}{"job_entry_uuid": first, "index": 2, "serial": "SN-2"})
	insert(t, catalog.ProductSerial, map[string]interface{}{"job_entry_uuid": first, "index": 1, "serial": "SN-1"})
	insert(t, catalog.Payment, map[string]interface{}{"job_uuid": fx.JobUUID, "index": 2, "amount": 40, "method": "mfs"})
	insert(t, catalog.Payment, map[string]interface{}{"job_uuid": fx.JobUUID, "index": 1, "amount": 60, "method": "cash"})

	row := loadDetail(t, repo, fx.JobUUID)

	var entries []detailEntry
	decodeCollection(t, row, "job_entry", &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].UUID)
	assert.Equal(t, second, entries[1].UUID)
	assert.Equal(t, []int{1, 2}, []int{entries[0].Index, entries[1].Index})
	assert.Equal(t, 3.0, entries[1].Quantity)
	assert.Equal(t, []detailSerial{{Serial: "SN-1", Index: 1}, {Serial: "SN-2", Index: 2}}, entries[0].ProductSerial)
	assert.NotNil(t, entries[1].ProductSerial)
	assert.Empty(t, entries[1].ProductSerial)

	var payments []detailPayment
	decodeCollection(t, row, "payment", &payments)
	assert.Equal(t, []detailPayment{{Index: 1, Amount: 60}, {Index: 2, Amount: 40}}, payments)
	assert.Equal(t, 100.0, row["total_paid"])
	assert.Equal(t, 0.0, row["total_expense"])
	assert.Equal(t, "cash"+PaymentMethodSeparator+"mfs", row["payment_methods"])
}
