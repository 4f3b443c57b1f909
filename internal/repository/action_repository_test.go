package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

func newActionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestActionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newActionRepoMock(t)
	defer cleanup()

	repo := NewActionRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registration_actions")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	subject := "student-7"
	action := &models.RegistrationAction{
		ActorID:   "user-1",
		ActorRole: models.RoleRegistrar,
		SubjectID: &subject,
		Action:    models.ActionCommitItem,
		CourseID:  "course-1",
		Outcome:   models.OutcomeCommitted,
	}
	require.NoError(t, repo.Create(context.Background(), action))
	require.NotEmpty(t, action.ID)
	require.False(t, action.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActionRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newActionRepoMock(t)
	defer cleanup()

	repo := NewActionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registration_actions")).
		WithArgs("user-1", "COMMIT_ITEM").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "actor_id", "actor_role", "subject_id", "action", "course_id", "enrollment_id", "outcome", "detail", "created_at"}).
		AddRow("act-1", "user-1", "REGISTRAR", "student-7", "COMMIT_ITEM", "course-1", "enr-1", "COMMITTED", "", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, actor_id, actor_role, subject_id")).
		WithArgs("user-1", "COMMIT_ITEM").
		WillReturnRows(rows)

	list, total, err := repo.List(context.Background(), models.RegistrationActionFilter{
		ActorID: "user-1",
		Action:  models.ActionCommitItem,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, list, 1)
	require.Equal(t, "act-1", list[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestActionRepositoryListDefaultsPagination(t *testing.T) {
	db, mock, cleanup := newActionRepoMock(t)
	defer cleanup()

	repo := NewActionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registration_actions")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("LIMIT 20 OFFSET 0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor_id", "actor_role", "subject_id", "action", "course_id", "enrollment_id", "outcome", "detail", "created_at"}))

	list, total, err := repo.List(context.Background(), models.RegistrationActionFilter{})
	require.NoError(t, err)
	require.Zero(t, total)
	require.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}
