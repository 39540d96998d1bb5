package services

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// Service defines the CRUD operations of one resource.
type Service interface {
	Definition() *models.Definition

	// List composes the base projection with search, sort and pagination.
	List(ctx context.Context, params qb.Params) ([]postgres.Row, error)

	// Get returns one row with its detail projections, or ErrNotFound.
	Get(ctx context.Context, key string) (postgres.Row, error)

	// Create validates and inserts a row; returns its label.
	Create(ctx context.Context, payload map[string]interface{}) (string, error)

	// CreateMany validates and inserts every row in one statement; returns the number written.
	CreateMany(ctx context.Context, payloads []map[string]interface{}) (int64, error)

	// Update validates a partial row and applies it; returns the label or ErrNotFound.
	Update(ctx context.Context, key string, payload map[string]interface{}) (string, error)

	// Delete removes a row; returns the label or ErrNotFound.
	Delete(ctx context.Context, key string) (string, error)
}

type service struct {
	repo repository.Repository
	def  *models.Definition
}

// NewService constructs the service of def.
func NewService(repo repository.Repository, def *models.Definition) Service {
	return &service{repo: repo, def: def}
}

func (s *service) Definition() *models.Definition {
	return s.def
}

func (s *service) List(ctx context.Context, params qb.Params) ([]postgres.Row, error) {
	q, err := qb.Compose(s.def.List, params, qb.Options{
		DefaultSortField:       s.def.DefaultSort,
		AdditionalSearchFields: s.def.SearchFields,
	})
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.def.Path, err)
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, key string) (postgres.Row, error) {
	k, err := s.parseKey(key)
	if err != nil {
		return nil, err
	}

	q := qb.Shape(s.def.List, s.def.Detail...).
		Where(sq.Eq{s.def.Table.Col(s.def.KeyColumn()): k})

	row, err := s.repo.SelectOne(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.def.Path, err)
	}
	if row == nil {
		return nil, resourceErrors.ErrNotFound
	}
	return row, nil
}

func (s *service) Create(ctx context.Context, payload map[string]interface{}) (string, error) {
	values, err := s.def.Validator.Insert(payload)
	if err != nil {
		return "", err
	}

	var label string
	err = s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if s.def.BeforeCreate != nil {
			if err := s.def.BeforeCreate(txCtx, values); err != nil {
				return err
			}
		}
		l, err := s.repo.Insert(txCtx, s.def.Table, values, s.def.InsertLabel())
		if err != nil {
			return err
		}
		label = l
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("create %s: %w", s.def.Path, err)
	}
	return label, nil
}

func (s *service) CreateMany(ctx context.Context, payloads []map[string]interface{}) (int64, error) {
	if len(payloads) == 0 {
		return 0, validation.ErrNoRecords
	}

	rows := make([]map[string]interface{}, 0, len(payloads))
	for i, p := range payloads {
		values, err := s.def.Validator.Insert(p)
		if err != nil {
			return 0, atIndex(i, err)
		}
		rows = append(rows, values)
	}

	var n int64
	err := s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if s.def.BeforeCreate != nil {
			for _, values := range rows {
				if err := s.def.BeforeCreate(txCtx, values); err != nil {
					return err
				}
			}
		}
		written, err := s.repo.InsertMany(txCtx, s.def.Table, rows)
		if err != nil {
			return err
		}
		n = written
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", s.def.Path, err)
	}
	return n, nil
}

func (s *service) Update(ctx context.Context, key string, payload map[string]interface{}) (string, error) {
	k, err := s.parseKey(key)
	if err != nil {
		return "", err
	}
	values, err := s.def.Validator.Patch(payload)
	if err != nil {
		return "", err
	}

	var label string
	err = s.repo.WithTransaction(ctx, func(txCtx context.Context) error {
		if s.def.BeforeUpdate != nil {
			if err := s.def.BeforeUpdate(txCtx, values); err != nil {
				return err
			}
		}
		l, found, err := s.repo.Update(txCtx, s.def.Table, s.def.KeyColumn(), k, values, s.def.Label)
		if err != nil {
			return err
		}
		if !found {
			return resourceErrors.ErrNotFound
		}
		label = l
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("update %s: %w", s.def.Path, err)
	}
	return label, nil
}

func (s *service) Delete(ctx context.Context, key string) (string, error) {
	k, err := s.parseKey(key)
	if err != nil {
		return "", err
	}

	label, found, err := s.repo.Delete(ctx, s.def.Table, s.def.KeyColumn(), k, s.def.Label)
	if err != nil {
		return "", fmt.Errorf("delete %s: %w", s.def.Path, err)
	}
	if !found {
		return "", resourceErrors.ErrNotFound
	}
	return label, nil
}

// parseKey converts a path parameter to the type of the key column
func (s *service) parseKey(key string) (interface{}, error) {
	c, ok := s.def.Table.Column(s.def.KeyColumn())
	if !ok {
		return nil, fmt.Errorf("%s has no key column %q", s.def.Path, s.def.KeyColumn())
	}
	switch c.Type {
	case qb.TypeInteger, qb.TypeSerial:
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", resourceErrors.ErrInvalidKey, key)
		}
		return n, nil
	default:
		return key, nil
	}
}

// atIndex prefixes the issue paths of a validation error with the row index
func atIndex(i int, err error) error {
	verr, ok := validation.AsError(err)
	if !ok {
		return err
	}
	issues := make([]validation.Issue, len(verr.Issues))
	for j, is := range verr.Issues {
		is.Path = append([]string{strconv.Itoa(i)}, is.Path...)
		issues[j] = is
	}
	return &validation.Error{Issues: issues}
}
