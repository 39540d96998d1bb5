package resources

import (
	"fmt"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
)

func on(left *qb.Table, leftCol string, right *qb.Table, rightCol string) string {
	return fmt.Sprintf("%s = %s", left.Col(leftCol), right.Col(rightCol))
}

// withCreator projects every column of t plus the creator's name
func withCreator(t *qb.Table, extra ...string) qb.Query {
	cols := append(qb.TableColumns(t), catalog.CreatedByName)
	return catalog.JoinCreator(qb.Select(t, append(cols, extra...)...), t)
}

// Department is hr/department
func Department() *models.Definition {
	return &models.Definition{
		Path:      "hr/department",
		Table:     catalog.Department,
		Label:     "name",
		List:      qb.Select(catalog.Department, qb.TableColumns(catalog.Department)...),
		Validator: validation.ForTable(catalog.Department),
	}
}

// Designation is hr/designation
func Designation() *models.Definition {
	return &models.Definition{
		Path:      "hr/designation",
		Table:     catalog.Designation,
		Label:     "name",
		List:      qb.Select(catalog.Designation, qb.TableColumns(catalog.Designation)...),
		Validator: validation.ForTable(catalog.Designation),
	}
}

// Users is hr/users with department, designation and login state
func Users() *models.Definition {
	cols := append(qb.TableColumns(catalog.Users),
		"department.name AS department_name",
		"designation.name AS designation_name",
		catalog.AuthUser.Col("status"),
		catalog.AuthUser.Col("can_access"),
	)
	list := qb.Select(catalog.Users, cols...).
		LeftJoin(catalog.Department, on(catalog.Users, "department_uuid", catalog.Department, "uuid")).
		LeftJoin(catalog.Designation, on(catalog.Users, "designation_uuid", catalog.Designation, "uuid")).
		LeftJoin(catalog.AuthUser, on(catalog.Users, "uuid", catalog.AuthUser, "user_uuid"))

	return &models.Definition{
		Path:         "hr/users",
		Table:        catalog.Users,
		Label:        "name",
		List:         list,
		SearchFields: []string{"name"},
		Validator:    validation.ForTable(catalog.Users),
	}
}

// Loan is lib/loan
func Loan() *models.Definition {
	return &models.Definition{
		Path:      "lib/loan",
		Table:     catalog.Loan,
		Label:     "lender_name",
		List:      withCreator(catalog.Loan),
		Validator: validation.ForTable(catalog.Loan),
	}
}

// LoanPaid is lib/loan-paid with the repaid loan's lender
func LoanPaid() *models.Definition {
	list := withCreator(catalog.LoanPaid,
		catalog.Loan.Col("lender_name"),
		"loan.type AS loan_type",
		qb.DecimalExpr(catalog.Loan, "amount")+" AS loan_amount",
	).LeftJoin(catalog.Loan, on(catalog.LoanPaid, "loan_uuid", catalog.Loan, "uuid"))

	return &models.Definition{
		Path:         "lib/loan-paid",
		Table:        catalog.LoanPaid,
		Label:        "uuid",
		List:         list,
		SearchFields: []string{"lender_name"},
		Validator:    validation.ForTable(catalog.LoanPaid),
	}
}

// Client is lib/client
func Client() *models.Definition {
	return &models.Definition{
		Path:      "lib/client",
		Table:     catalog.Client,
		Label:     "name",
		List:      withCreator(catalog.Client),
		Validator: validation.ForTable(catalog.Client),
	}
}

// ProductCategory is lib/product-category
func ProductCategory() *models.Definition {
	return &models.Definition{
		Path:      "lib/product-category",
		Table:     catalog.ProductCategory,
		Label:     "name",
		List:      withCreator(catalog.ProductCategory),
		Validator: validation.ForTable(catalog.ProductCategory),
	}
}

// Product is lib/product with its category name
func Product() *models.Definition {
	list := withCreator(catalog.Product, "product_category.name AS product_category_name").
		LeftJoin(catalog.ProductCategory, on(catalog.Product, "product_category_uuid", catalog.ProductCategory, "uuid"))

	return &models.Definition{
		Path:         "lib/product",
		Table:        catalog.Product,
		Label:        "name",
		List:         list,
		SearchFields: []string{"name"},
		Validator:    validation.ForTable(catalog.Product),
	}
}

// Vendor is lib/vendor
func Vendor() *models.Definition {
	return &models.Definition{
		Path:      "lib/vendor",
		Table:     catalog.Vendor,
		Label:     "name",
		List:      withCreator(catalog.Vendor),
		Validator: validation.ForTable(catalog.Vendor),
	}
}

// Expense is lib/expense with its job's display id and work order
func Expense() *models.Definition {
	list := withCreator(catalog.Expense,
		catalog.JobID()+" AS job_id",
		catalog.Job.Col("work_order"),
	).LeftJoin(catalog.Job, on(catalog.Expense, "job_uuid", catalog.Job, "uuid"))

	return &models.Definition{
		Path:         "lib/expense",
		Table:        catalog.Expense,
		Label:        "uuid",
		List:         list,
		SearchFields: []string{"work_order"},
		Validator:    validation.ForTable(catalog.Expense),
	}
}

// Definitions lists the resources served by this package
func Definitions() []*models.Definition {
	return []*models.Definition{
		Department(),
		Designation(),
		Users(),
		Loan(),
		LoanPaid(),
		Client(),
		ProductCategory(),
		Product(),
		Vendor(),
		Expense(),
	}
}

// On renders a join condition left.leftCol = right.rightCol
func On(left *qb.Table, leftCol string, right *qb.Table, rightCol string) string {
	return on(left, leftCol, right, rightCol)
}

// WithCreator projects every column of t plus created_by_name and any extra columns
func WithCreator(t *qb.Table, extra ...string) qb.Query {
	return withCreator(t, extra...)
}
