package jobs

import (
	"fmt"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// PaymentMethodSeparator joins the distinct payment methods of a job
const PaymentMethodSeparator = ", "

// nameOf looks up the name of the row t.uuid = child.column
func nameOf(t *qb.Table, child *qb.Table, column string) string {
	return fmt.Sprintf("(SELECT %s FROM %s WHERE %s = %s)", t.Col("name"), t.From(), t.Col("uuid"), child.Col(column))
}

func serialCollection() qb.Collection {
	return qb.NestedCollection("product_serial", catalog.ProductSerial, "job_entry_uuid",
		qb.Plains("uuid", "job_entry_uuid", "index", "serial"), "")
}

func entryCollection() qb.Collection {
	fields := append(qb.Plains("uuid", "job_uuid", "product_uuid"),
		qb.Raw("product_name", nameOf(catalog.Product, catalog.JobEntry, "product_uuid")),
		qb.Plain("vendor_uuid"),
		qb.Raw("vendor_name", nameOf(catalog.Vendor, catalog.JobEntry, "vendor_uuid")),
		qb.Float("quantity"),
		qb.Float("buying_unit_price"),
		qb.Float("selling_unit_price"),
	)
	fields = append(fields, qb.Plains("warranty_days", "purchased_at", "is_serial_needed", "index",
		"created_by", "created_at", "updated_at", "remarks")...)
	return qb.NestedCollection("job_entry", catalog.JobEntry, "job_uuid", fields, "", serialCollection())
}

func paymentCollection() qb.Collection {
	fields := append(qb.Plains("uuid", "index", "job_uuid", "paid_at", "method"), qb.Float("amount"))
	fields = append(fields, qb.Plains("created_at", "remarks")...)
	return qb.NestedCollection("payment", catalog.Payment, "job_uuid", fields, "")
}

// JobDetail is the aggregate projected on a single job
func JobDetail() []qb.Projection {
	return []qb.Projection{
		entryCollection(),
		paymentCollection(),
		qb.Sum("total_paid", catalog.Payment, "amount", "job_uuid"),
		qb.DistinctConcat("payment_methods", catalog.Payment, "method", "job_uuid", PaymentMethodSeparator),
		qb.Sum("total_expense", catalog.Expense, "amount", "job_uuid"),
	}
}

// Job is lib/job with its display id, client and creator
func Job() *models.Definition {
	list := resources.WithCreator(catalog.Job,
		catalog.JobID()+" AS job_id",
		"client.name AS client_name",
	).LeftJoin(catalog.Client, resources.On(catalog.Job, "client_uuid", catalog.Client, "uuid"))

	return &models.Definition{
		Path:         "lib/job",
		Table:        catalog.Job,
		Label:        "uuid",
		List:         list,
		Detail:       JobDetail(),
		SearchFields: []string{"name"},
		Validator:    validation.ForTable(catalog.Job),
	}
}

// JobEntry is lib/job-entry. Product and vendor may be given by name.
func JobEntry(resolver *NameResolver) *models.Definition {
	list := resources.WithCreator(catalog.JobEntry,
		catalog.Job.Col("work_order"),
		"product.name AS product_name",
		"vendor.name AS vendor_name",
	).
		LeftJoin(catalog.Job, resources.On(catalog.JobEntry, "job_uuid", catalog.Job, "uuid")).
		LeftJoin(catalog.Product, resources.On(catalog.JobEntry, "product_uuid", catalog.Product, "uuid")).
		LeftJoin(catalog.Vendor, resources.On(catalog.JobEntry, "vendor_uuid", catalog.Vendor, "uuid"))

	return &models.Definition{
		Path:         "lib/job-entry",
		Table:        catalog.JobEntry,
		Label:        "uuid",
		List:         list,
		Detail:       []qb.Projection{serialCollection()},
		SearchFields: []string{"work_order", "name"},
		Validator:    validation.ForTable(catalog.JobEntry, qb.Text("product_uuid"), qb.Text("vendor_uuid")),
		BeforeCreate: resolver.Resolve,
		BeforeUpdate: resolver.Resolve,
	}
}

// ProductSerial is lib/product-serial; POST also accepts an array of serials
func ProductSerial() *models.Definition {
	return &models.Definition{
		Path:       "lib/product-serial",
		Table:      catalog.ProductSerial,
		Label:      "uuid",
		List:       resources.WithCreator(catalog.ProductSerial),
		Validator:  validation.ForTable(catalog.ProductSerial),
		BulkCreate: true,
	}
}

// Payment is lib/payment
func Payment() *models.Definition {
	return &models.Definition{
		Path:      "lib/payment",
		Table:     catalog.Payment,
		Label:     "uuid",
		List:      paymentList(),
		Validator: validation.ForTable(catalog.Payment),
	}
}

func paymentList() qb.Query {
	return resources.WithCreator(catalog.Payment,
		catalog.JobID()+" AS job_id",
		catalog.Job.Col("work_order"),
	).LeftJoin(catalog.Job, resources.On(catalog.Payment, "job_uuid", catalog.Job, "uuid"))
}

// Definitions lists the resources served by this package
func Definitions(repo repository.Repository) []*models.Definition {
	return []*models.Definition{
		Job(),
		JobEntry(NewNameResolver(repo)),
		ProductSerial(),
		Payment(),
	}
}
