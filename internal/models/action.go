package models

import "time"

// RegistrationActionType labels an audited registration action.
type RegistrationActionType string

// Audited action types.
const (
	ActionCommitItem RegistrationActionType = "COMMIT_ITEM"
	ActionDrop       RegistrationActionType = "DROP"
)

// RegistrationOutcome records how an audited action ended.
type RegistrationOutcome string

// Audited outcomes.
const (
	OutcomeCommitted RegistrationOutcome = "COMMITTED"
	OutcomeFailed    RegistrationOutcome = "FAILED"
)

// RegistrationAction is one row of the persisted registration audit trail.
type RegistrationAction struct {
	ID           string                 `db:"id" json:"id"`
	ActorID      string                 `db:"actor_id" json:"actor_id"`
	ActorRole    UserRole               `db:"actor_role" json:"actor_role"`
	SubjectID    *string                `db:"subject_id" json:"subject_id,omitempty"`
	Action       RegistrationActionType `db:"action" json:"action"`
	CourseID     string                 `db:"course_id" json:"course_id"`
	EnrollmentID *string                `db:"enrollment_id" json:"enrollment_id,omitempty"`
	Outcome      RegistrationOutcome    `db:"outcome" json:"outcome"`
	Detail       string                 `db:"detail" json:"detail,omitempty"`
	CreatedAt    time.Time              `db:"created_at" json:"created_at"`
}

// RegistrationActionFilter provides filters for listing audit actions.
type RegistrationActionFilter struct {
	ActorID   string
	SubjectID string
	Action    RegistrationActionType
	Outcome   RegistrationOutcome
	Page      int
	PageSize  int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
