package services

import (
	"context"
	"fmt"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// Option is one value/label dropdown source
type Option struct {
	// Path is the route below /v1/other, e.g. "lib/client"
	Path  string
	Query qb.Query
}

// valueLabel projects t.uuid as value and expr as label, ordered by label
func valueLabel(t *qb.Table, label string) qb.Query {
	return qb.Select(t, t.Col("uuid")+" AS value", label+" AS label").OrderBy("label ASC")
}

// Options lists every dropdown source
func Options() []Option {
	usersLabel := fmt.Sprintf("%s || '-' || %s", catalog.Users.Col("name"), catalog.Users.Col("email"))

	return []Option{
		{Path: "lib/client", Query: valueLabel(catalog.Client,
			fmt.Sprintf("%s || COALESCE(' (' || %s || ')', '')", catalog.Client.Col("name"), catalog.Client.Col("contact_name")))},
		{Path: "lib/vendor", Query: valueLabel(catalog.Vendor, catalog.Vendor.Col("name"))},
		{Path: "lib/product-category", Query: valueLabel(catalog.ProductCategory, catalog.ProductCategory.Col("name"))},
		{Path: "lib/product", Query: valueLabel(catalog.Product, catalog.Product.Col("name"))},
		{Path: "lib/job", Query: valueLabel(catalog.Job, catalog.Job.Col("work_order"))},
		{Path: "lib/loan", Query: valueLabel(catalog.Loan, catalog.Loan.Col("lender_name"))},
		{Path: "hr/department", Query: valueLabel(catalog.Department, catalog.Department.Col("name"))},
		{Path: "hr/designation", Query: valueLabel(catalog.Designation, catalog.Designation.Col("name"))},
		{Path: "hr/users", Query: valueLabel(catalog.Users, usersLabel)},
		{Path: "hr/users-can-access", Query: qb.Select(catalog.AuthUser,
			catalog.Users.Col("uuid")+" AS value", usersLabel+" AS label", catalog.AuthUser.Col("can_access")).
			LeftJoin(catalog.Users, fmt.Sprintf("%s = %s", catalog.Users.Col("uuid"), catalog.AuthUser.Col("user_uuid"))).
			OrderBy("label ASC")},
	}
}

// OptionService reads value/label pairs
type OptionService interface {
	ValueLabel(ctx context.Context, option Option) ([]postgres.Row, error)
}

type optionService struct {
	repo repository.Repository
}

func NewOptionService(repo repository.Repository) OptionService {
	return &optionService{repo: repo}
}

func (s *optionService) ValueLabel(ctx context.Context, option Option) ([]postgres.Row, error) {
	rows, err := s.repo.Select(ctx, option.Query)
	if err != nil {
		return nil, fmt.Errorf("options %s: %w", option.Path, err)
	}
	return rows, nil
}
