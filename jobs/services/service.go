package services

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/rashikbuksh/Synaptech-Backend/internal/catalog"
	"github.com/rashikbuksh/Synaptech-Backend/internal/database/postgres"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

// PaymentService reads the payments recorded against a job
type PaymentService interface {
	// ListByJob returns the payments of one job ordered by index.
	ListByJob(ctx context.Context, jobUUID string) ([]postgres.Row, error)
}

type paymentService struct {
	repo repository.Repository
	base qb.Query
}

// NewPaymentService projects payments with base, typically the payment list query
func NewPaymentService(repo repository.Repository, base qb.Query) PaymentService {
	return &paymentService{repo: repo, base: base}
}

func (s *paymentService) ListByJob(ctx context.Context, jobUUID string) ([]postgres.Row, error) {
	q := s.base.
		Where(sq.Eq{catalog.Payment.Col("job_uuid"): jobUUID}).
		OrderBy(catalog.Payment.Col("index")+" ASC", catalog.Payment.Col("created_at")+" ASC")

	rows, err := s.repo.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list payments of job %s: %w", jobUUID, err)
	}
	return rows, nil
}
