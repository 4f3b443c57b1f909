package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/models"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

type actionLister interface {
	List(ctx context.Context, filter models.RegistrationActionFilter) ([]models.RegistrationAction, int, error)
}

// AuditService reads the persisted registration audit trail.
type AuditService struct {
	repo   actionLister
	logger *zap.Logger
}

// NewAuditService constructs the service.
func NewAuditService(repo actionLister, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger}
}

// List returns audit rows matching the filter plus pagination metadata.
func (s *AuditService) List(ctx context.Context, filter models.RegistrationActionFilter) ([]models.RegistrationAction, *models.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	actions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registration actions")
	}
	return actions, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	}, nil
}
