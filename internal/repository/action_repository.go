package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

// ActionRepository persists the registration audit trail.
type ActionRepository struct {
	db *sqlx.DB
}

// NewActionRepository constructs the repository.
func NewActionRepository(db *sqlx.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

// Create inserts one audit row.
func (r *ActionRepository) Create(ctx context.Context, action *models.RegistrationAction) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO registration_actions
	(id, actor_id, actor_role, subject_id, action, course_id, enrollment_id, outcome, detail, created_at)
	VALUES (:id, :actor_id, :actor_role, :subject_id, :action, :course_id, :enrollment_id, :outcome, :detail, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, action); err != nil {
		return fmt.Errorf("create registration action: %w", err)
	}
	return nil
}

// List returns audit rows matching the filter, latest first, with a total
// count for pagination.
func (r *ActionRepository) List(ctx context.Context, filter models.RegistrationActionFilter) ([]models.RegistrationAction, int, error) {
	conditions := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if filter.ActorID != "" {
		args = append(args, filter.ActorID)
		conditions = append(conditions, fmt.Sprintf("actor_id = $%d", len(args)))
	}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.Outcome != "" {
		args = append(args, filter.Outcome)
		conditions = append(conditions, fmt.Sprintf("outcome = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM registration_actions" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count registration actions: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	query := `SELECT id, actor_id, actor_role, subject_id, action, course_id, enrollment_id, outcome, detail, created_at
	FROM registration_actions` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d OFFSET %d", pageSize, (page-1)*pageSize)

	actions := []models.RegistrationAction{}
	if err := r.db.SelectContext(ctx, &actions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list registration actions: %w", err)
	}
	return actions, total, nil
}
