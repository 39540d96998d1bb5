package services

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	authErrors "github.com/rashikbuksh/Synaptech-Backend/auth/errors"
	"github.com/rashikbuksh/Synaptech-Backend/auth/models"
	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/middleware/authjwt"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// TokenConfig signs access tokens
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type authService struct {
	repo      repository.Repository
	hasher    *PasswordHasher
	token     TokenConfig
	validator *validation.Validator
	now       func() time.Time
}

func NewAuthService(repo repository.Repository, hasher *PasswordHasher, token TokenConfig) AuthService {
	return &authService{
		repo:      repo,
		hasher:    hasher,
		token:     token,
		validator: validation.ForTable(catalog.AuthUser),
		now:       time.Now,
	}
}

func joinOn(left *qb.Table, leftCol string, right *qb.Table, rightCol string) string {
	return fmt.Sprintf("%s = %s", left.Col(leftCol), right.Col(rightCol))
}

// SigninQuery finds the auth user by the email of its user
func SigninQuery(email string) qb.Query {
	return qb.Select(catalog.AuthUser,
		catalog.AuthUser.Col("uuid"),
		catalog.AuthUser.Col("user_uuid"),
		catalog.Users.Col("email"),
		catalog.AuthUser.Col("pass"),
		catalog.AuthUser.Col("can_access"),
		catalog.AuthUser.Col("status"),
		catalog.Users.Col("name"),
		"department.name AS department_name",
		"designation.name AS designation_name",
	).
		LeftJoin(catalog.Users, joinOn(catalog.AuthUser, "user_uuid", catalog.Users, "uuid")).
		LeftJoin(catalog.Department, joinOn(catalog.Users, "department_uuid", catalog.Department, "uuid")).
		LeftJoin(catalog.Designation, joinOn(catalog.Users, "designation_uuid", catalog.Designation, "uuid")).
		Where(sq.Eq{catalog.Users.Col("email"): email})
}

func (s *authService) Signin(ctx context.Context, req models.SigninRequest) (*models.SigninResponse, error) {
	row, err := s.repo.SelectOne(ctx, SigninQuery(req.Email))
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}
	if row == nil {
		return nil, resourceErrors.ErrNotFound
	}
	if !row.Bool("status") {
		return nil, authErrors.ErrAccountDisabled
	}
	if err := s.hasher.Compare(row.String("pass"), req.Pass); err != nil {
		return nil, err
	}

	token, claims, err := authjwt.Issue(s.token.Secret, row.String("uuid"), row.String("name"), s.token.TTL, s.now())
	if err != nil {
		return nil, err
	}

	return &models.SigninResponse{
		Payload: models.TokenPayload{
			UUID:     claims.UUID,
			Username: claims.Username,
			Exp:      claims.ExpiresAt.Unix(),
		},
		Token:     token,
		CanAccess: row["can_access"],
		User: models.SigninUser{
			UUID:            row.String("user_uuid"),
			AuthUserUUID:    row.String("uuid"),
			Email:           row.String("email"),
			Name:            row.String("name"),
			DepartmentName:  row.String("department_name"),
			DesignationName: row.String("designation_name"),
		},
	}, nil
}

func (s *authService) CanAccess(ctx context.Context, uuid string) (interface{}, error) {
	row, err := s.repo.SelectOne(ctx, qb.Select(catalog.AuthUser, catalog.AuthUser.Col("can_access")).
		Where(sq.Eq{catalog.AuthUser.Col("uuid"): uuid}))
	if err != nil {
		return nil, fmt.Errorf("can access: %w", err)
	}
	if row == nil {
		return nil, resourceErrors.ErrNotFound
	}
	return row["can_access"], nil
}

func (s *authService) SetCanAccess(ctx context.Context, uuid string, canAccess interface{}) (string, error) {
	return s.patch(ctx, uuid, map[string]interface{}{"can_access": canAccess}, "uuid")
}

func (s *authService) SetStatus(ctx context.Context, uuid string, status interface{}) (string, error) {
	return s.patch(ctx, uuid, map[string]interface{}{"status": status}, "uuid")
}

func (s *authService) ChangePassword(ctx context.Context, uuid string, req models.PasswordRequest) (string, error) {
	payload := map[string]interface{}{"pass": req.Pass}
	if req.UpdatedAt != "" {
		payload["updated_at"] = req.UpdatedAt
	}
	if _, err := s.validator.Patch(payload); err != nil {
		return "", err
	}
	hashed, err := s.hasher.Hash(req.Pass)
	if err != nil {
		return "", err
	}
	payload["pass"] = hashed
	return s.update(ctx, uuid, payload, "user_uuid")
}

// patch validates a partial auth user before writing it
func (s *authService) patch(ctx context.Context, uuid string, payload map[string]interface{}, returning string) (string, error) {
	values, err := s.validator.Patch(payload)
	if err != nil {
		return "", err
	}
	return s.update(ctx, uuid, values, returning)
}

func (s *authService) update(ctx context.Context, uuid string, values map[string]interface{}, returning string) (string, error) {
	label, found, err := s.repo.Update(ctx, catalog.AuthUser, "uuid", uuid, values, returning)
	if err != nil {
		return "", fmt.Errorf("update auth user: %w", err)
	}
	if !found {
		return "", resourceErrors.ErrNotFound
	}
	return label, nil
}
