package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/models"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

type studentSearcher interface {
	SearchStudents(ctx context.Context, search string, limit int) ([]models.Student, error)
}

// DirectoryConfig bounds the student lookup.
type DirectoryConfig struct {
	MinQueryLength int
	MaxResults     int
}

// DirectoryService resolves student lookups for delegated registration.
type DirectoryService struct {
	catalog studentSearcher
	cfg     DirectoryConfig
	logger  *zap.Logger
}

// NewDirectoryService builds the lookup service.
func NewDirectoryService(client studentSearcher, cfg DirectoryConfig, logger *zap.Logger) *DirectoryService {
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = 2
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{catalog: client, cfg: cfg, logger: logger}
}

// Search returns candidate students matching the query by id, code or name.
// Queries shorter than the configured minimum return an empty list without
// touching the backend.
func (s *DirectoryService) Search(ctx context.Context, query string) ([]models.Student, error) {
	query = strings.TrimSpace(query)
	if len(query) < s.cfg.MinQueryLength {
		return []models.Student{}, nil
	}

	students, err := s.catalog.SearchStudents(ctx, query, s.cfg.MaxResults)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "student lookup failed")
	}
	if students == nil {
		students = []models.Student{}
	}
	if len(students) > s.cfg.MaxResults {
		students = students[:s.cfg.MaxResults]
	}
	return students, nil
}
