// Package catalog declares every table of the hr, lib and public schemas.
package catalog

import (
	"fmt"
	"sort"

	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
)

var (
	Department = qb.NewTable("hr", "department",
		qb.ID("uuid").NotNull(),
		qb.Text("name").NotNull(),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Designation = qb.NewTable("hr", "designation",
		qb.ID("uuid").NotNull(),
		qb.Text("name").NotNull(),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Users = qb.NewTable("hr", "users",
		qb.ID("uuid").NotNull(),
		qb.Text("name").NotNull(),
		qb.ID("department_uuid").NotNull(),
		qb.ID("designation_uuid").NotNull(),
		qb.Text("email").NotNull(),
		qb.Text("phone"),
		qb.Text("office"),
		qb.Text("image"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	AuthUser = qb.NewTable("hr", "auth_user",
		qb.ID("uuid").NotNull(),
		qb.ID("user_uuid").NotNull(),
		qb.Text("pass").NotNull(),
		qb.Text("can_access"),
		qb.Boolean("status"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Loan = qb.NewTable("lib", "loan",
		qb.ID("uuid").NotNull(),
		qb.Text("lender_name"),
		qb.Enum("type", "friend", "business", "family"),
		qb.Decimal("amount").NotNull(),
		qb.Timestamp("taken_at"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
		qb.Boolean("is_completed"),
	)

	LoanPaid = qb.NewTable("lib", "loan_paid",
		qb.ID("uuid").NotNull(),
		qb.ID("loan_uuid"),
		qb.Integer("index"),
		qb.Enum("type", "cash", "mfs", "cheque"),
		qb.Decimal("amount").NotNull(),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Client = qb.NewTable("lib", "client",
		qb.ID("uuid").NotNull(),
		qb.Serial("id"),
		qb.Text("name").NotNull(),
		qb.Text("contact_name"),
		qb.Text("contact_number"),
		qb.Text("email"),
		qb.Text("address"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Job = qb.NewTable("lib", "job",
		qb.ID("uuid").NotNull(),
		qb.Serial("id"),
		qb.Text("work_order").NotNull(),
		qb.ID("client_uuid").NotNull(),
		qb.ID("created_by").NotNull(),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
		qb.Timestamp("to_date"),
		qb.Text("subject"),
	)

	ProductCategory = qb.NewTable("lib", "product_category",
		qb.ID("uuid").NotNull(),
		qb.Text("name"),
		qb.Text("short_name"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Product = qb.NewTable("lib", "product",
		qb.ID("uuid").NotNull(),
		qb.Text("name"),
		qb.ID("product_category_uuid"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Vendor = qb.NewTable("lib", "vendor",
		qb.ID("uuid").NotNull(),
		qb.Serial("id"),
		qb.Text("name").NotNull(),
		qb.Text("phone"),
		qb.Text("address"),
		qb.Text("purpose"),
		qb.Timestamp("starting_date"),
		qb.Timestamp("ending_date"),
		qb.Text("product_type"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Payment = qb.NewTable("lib", "payment",
		qb.ID("uuid").NotNull(),
		qb.Integer("index"),
		qb.ID("job_uuid"),
		qb.Timestamp("paid_at"),
		qb.Enum("method", "cash", "mfs", "cheque"),
		qb.Decimal("amount").NotNull(),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	Expense = qb.NewTable("lib", "expense",
		qb.ID("uuid").NotNull(),
		qb.ID("job_uuid"),
		qb.Timestamp("expense_at"),
		qb.Text("type"),
		qb.Decimal("amount").NotNull(),
		qb.Text("reason"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	JobEntry = qb.NewTable("lib", "job_entry",
		qb.ID("uuid").NotNull(),
		qb.ID("job_uuid"),
		qb.ID("product_uuid"),
		qb.ID("vendor_uuid"),
		qb.Decimal("quantity").NotNull(),
		qb.Decimal("buying_unit_price").NotNull(),
		qb.Decimal("selling_unit_price").NotNull(),
		qb.Integer("warranty_days"),
		qb.Timestamp("purchased_at"),
		qb.Boolean("is_serial_needed"),
		qb.ID("created_by"),
		qb.ID("updated_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
		qb.Integer("index"),
	)

	ProductSerial = qb.NewTable("lib", "product_serial",
		qb.ID("uuid").NotNull(),
		qb.ID("job_entry_uuid"),
		qb.Integer("index"),
		qb.Text("serial"),
		qb.ID("created_by"),
		qb.Timestamp("created_at").NotNull(),
		qb.Timestamp("updated_at"),
		qb.Text("remarks"),
	)

	ContactUs = qb.NewTable("public", "contact_us",
		qb.Serial("id"),
		qb.Text("name").NotNull(),
		qb.Text("email"),
		qb.Text("phone"),
		qb.Text("message"),
		qb.Text("url"),
		qb.Timestamp("created_at").NotNull(),
	)
)

// Registry indexes tables by their qualified name
type Registry struct {
	tables map[string]*qb.Table
}

var registry = NewRegistry(
	Department, Designation, Users, AuthUser,
	Loan, LoanPaid, Client, Job, ProductCategory, Product, Vendor,
	Payment, Expense, JobEntry, ProductSerial,
	ContactUs,
)

// NewRegistry builds a registry. It panics when two tables share a qualified name.
func NewRegistry(tables ...*qb.Table) *Registry {
	r := &Registry{tables: make(map[string]*qb.Table, len(tables))}
	for _, t := range tables {
		if _, dup := r.tables[t.From()]; dup {
			panic(fmt.Sprintf("catalog: duplicate table %s", t.From()))
		}
		r.tables[t.From()] = t
	}
	return r
}

// Default returns the registry of every declared table
func Default() *Registry {
	return registry
}

// Lookup finds a table by qualified name, e.g. "lib.job"
func (r *Registry) Lookup(qualified string) (*qb.Table, bool) {
	t, ok := r.tables[qualified]
	return t, ok
}

// All returns the tables sorted by qualified name
func (r *Registry) All() []*qb.Table {
	out := make([]*qb.Table, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From() < out[j].From() })
	return out
}

// JobID renders the display id of a job, J<YY>-<id>
func JobID() string {
	return fmt.Sprintf("CONCAT('J', TO_CHAR(%s::timestamp, 'YY'), '-', %s)", Job.Col("created_at"), Job.Col("id"))
}

// CreatedByName is the projection of the creator's name; the query must join Users on created_by
const CreatedByName = "users.name AS created_by_name"

// JoinCreator attaches hr.users on t.created_by
func JoinCreator(q qb.Query, t *qb.Table) qb.Query {
	return q.LeftJoin(Users, fmt.Sprintf("%s = %s", t.Col("created_by"), Users.Col("uuid")))
}
