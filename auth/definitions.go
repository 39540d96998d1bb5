package auth

import (
	"context"

	"github.com/rashikbuksh/Synaptech-Backend/auth/services"
	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
)

// AuthUser is hr/auth-user. Passwords are hashed on write and never projected.
func AuthUser(hasher *services.PasswordHasher) *models.Definition {
	cols := append(qb.TableColumns(catalog.AuthUser, "pass"),
		catalog.Users.Col("name"),
		"department.name AS department_name",
		"designation.name AS designation_name",
		catalog.Users.Col("image"),
		catalog.Users.Col("email"),
		catalog.Users.Col("phone"),
		catalog.Users.Col("office"),
	)
	list := qb.Select(catalog.AuthUser, cols...).
		LeftJoin(catalog.Users, resources.On(catalog.AuthUser, "user_uuid", catalog.Users, "uuid")).
		LeftJoin(catalog.Department, resources.On(catalog.Users, "department_uuid", catalog.Department, "uuid")).
		LeftJoin(catalog.Designation, resources.On(catalog.Users, "designation_uuid", catalog.Designation, "uuid"))

	hash := func(ctx context.Context, values map[string]interface{}) error {
		return hasher.HashField(values)
	}

	return &models.Definition{
		Path:         "hr/auth-user",
		Table:        catalog.AuthUser,
		Label:        "uuid",
		CreateLabel:  "user_uuid",
		List:         list,
		SearchFields: []string{"name", "email"},
		Validator:    validation.ForTable(catalog.AuthUser),
		BeforeCreate: hash,
		BeforeUpdate: hash,
	}
}
