package services

import (
	"context"
	"fmt"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// ReportService runs the job reports. Both reports return ErrNotFound when empty.
type ReportService interface {
	// ProfitSummary returns one row per job with revenue, cost and expenses.
	ProfitSummary(ctx context.Context, params qb.Params) ([]postgres.Row, error)

	// ProductDatabase returns one row per job, entry and serial.
	ProductDatabase(ctx context.Context, params qb.Params) ([]postgres.Row, error)
}

type reportService struct {
	repo repository.Repository
}

func NewReportService(repo repository.Repository) ReportService {
	return &reportService{repo: repo}
}

func joinOn(left *qb.Table, leftCol string, right *qb.Table, rightCol string) string {
	return fmt.Sprintf("%s = %s", left.Col(leftCol), right.Col(rightCol))
}

// ProfitSummaryQuery projects each job with its totals
func ProfitSummaryQuery() qb.Query {
	q := qb.Select(catalog.Job,
		catalog.Job.Col("uuid"),
		catalog.JobID()+" AS job_id",
		catalog.Job.Col("work_order"),
		catalog.Job.Col("client_uuid"),
		"client.name AS client_name",
		catalog.Job.Col("created_by"),
		catalog.CreatedByName,
		catalog.Job.Col("created_at"),
		catalog.Job.Col("updated_at"),
		catalog.Job.Col("remarks"),
	).LeftJoin(catalog.Client, joinOn(catalog.Job, "client_uuid", catalog.Client, "uuid"))

	return qb.Shape(catalog.JoinCreator(q, catalog.Job),
		qb.Sum("total_sell_revenue", catalog.JobEntry, "selling_unit_price", "job_uuid"),
		qb.Sum("total_purchased_cost", catalog.JobEntry, "buying_unit_price", "job_uuid"),
		qb.Sum("operational_expenses", catalog.Expense, "amount", "job_uuid"),
	)
}

// ProductDatabaseQuery flattens jobs into entry and serial rows
func ProductDatabaseQuery() qb.Query {
	return qb.Select(catalog.Job,
		catalog.Job.Col("uuid"),
		catalog.JobID()+" AS job_id",
		catalog.Job.Col("client_uuid"),
		"client.name AS client_name",
		"job_entry.uuid AS job_entry_uuid",
		catalog.JobEntry.Col("product_uuid"),
		"product.name AS product_name",
		"product_serial.serial AS serial_number",
		qb.DecimalExpr(catalog.JobEntry, "buying_unit_price")+" AS purchase_unit_price",
		qb.DecimalToFloat(catalog.JobEntry, "selling_unit_price"),
		catalog.JobEntry.Col("warranty_days"),
		"job_entry.purchased_at AS date_of_purchase",
		"(job_entry.purchased_at + INTERVAL '1 day' * job_entry.warranty_days) AS expiry_date",
		catalog.JobEntry.Col("vendor_uuid"),
		"vendor.name AS vendor_name",
	).
		LeftJoin(catalog.Client, joinOn(catalog.Job, "client_uuid", catalog.Client, "uuid")).
		LeftJoin(catalog.JobEntry, joinOn(catalog.Job, "uuid", catalog.JobEntry, "job_uuid")).
		LeftJoin(catalog.Product, joinOn(catalog.JobEntry, "product_uuid", catalog.Product, "uuid")).
		LeftJoin(catalog.ProductSerial, joinOn(catalog.JobEntry, "uuid", catalog.ProductSerial, "job_entry_uuid")).
		LeftJoin(catalog.Vendor, joinOn(catalog.JobEntry, "vendor_uuid", catalog.Vendor, "uuid"))
}

func (s *reportService) ProfitSummary(ctx context.Context, params qb.Params) ([]postgres.Row, error) {
	return s.run(ctx, "profit summary", ProfitSummaryQuery(), params, []string{"name"})
}

func (s *reportService) ProductDatabase(ctx context.Context, params qb.Params) ([]postgres.Row, error) {
	q := ProductDatabaseQuery()
	if params.Sort == "" {
		q = q.OrderBy(catalog.Product.Col("name") + " ASC")
	}
	return s.run(ctx, "product database", q, params, []string{"name", "serial"})
}

func (s *reportService) run(ctx context.Context, name string, q qb.Query, params qb.Params, search []string) ([]postgres.Row, error) {
	q, err := qb.Compose(q, params, qb.Options{AdditionalSearchFields: search})
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, resourceErrors.ErrNotFound
	}
	return rows, nil
}
