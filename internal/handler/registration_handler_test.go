package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-reg-api/internal/catalog"
	"github.com/noah-isme/sis-reg-api/internal/middleware"
	"github.com/noah-isme/sis-reg-api/internal/models"
	"github.com/noah-isme/sis-reg-api/internal/service"
)

type catalogStub struct {
	enrollments []models.Enrollment
	pool        []models.Course
	students    []models.Student
}

func (s *catalogStub) MyEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	return s.enrollments, nil
}

func (s *catalogStub) StudentEnrollments(ctx context.Context, subjectID string) ([]models.Enrollment, error) {
	return s.enrollments, nil
}

func (s *catalogStub) AvailableSections(ctx context.Context) ([]models.Course, error) {
	return s.pool, nil
}

func (s *catalogStub) CurrentTerm(ctx context.Context) (*models.Term, error) {
	return &models.Term{ID: "term-1", Name: "Fall 2026"}, nil
}

func (s *catalogStub) CheckEligibility(ctx context.Context, courseID string) (*models.EligibilityVerdict, error) {
	return &models.EligibilityVerdict{Eligible: true}, nil
}

func (s *catalogStub) CreateEnrollment(ctx context.Context, req catalog.CreateEnrollmentRequest) (*models.Enrollment, error) {
	return &models.Enrollment{ID: "enr-" + req.CourseID, CourseID: req.CourseID}, nil
}

func (s *catalogStub) Enroll(ctx context.Context, target string) (*models.Enrollment, error) {
	return &models.Enrollment{ID: "enr-" + target, CourseID: target}, nil
}

func (s *catalogStub) DropEnrollment(ctx context.Context, enrollmentID string) error { return nil }

func (s *catalogStub) DropMyEnrollment(ctx context.Context, enrollmentID string) error { return nil }

func (s *catalogStub) SearchStudents(ctx context.Context, search string, limit int) ([]models.Student, error) {
	return s.students, nil
}

func newRegistrationHandler(stub *catalogStub) *RegistrationHandler {
	svc := service.NewRegistrationService(stub, nil, nil, nil, service.RegistrationConfig{
		Policy: models.CreditPolicy{MinCredits: 12, MaxCredits: 21},
	}, nil, nil)
	return NewRegistrationHandler(svc, nil)
}

func testContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func setStudent(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Role: models.RoleStudent})
}

func TestRegistrationHandlerDescribeUnauthorized(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{})
	c, w := testContext(t, http.MethodGet, "/registration/session", nil)

	handler.Describe(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegistrationHandlerDescribe(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{
		pool: []models.Course{{ID: "c1", Code: "CS201", Credits: 3}},
	})
	c, w := testContext(t, http.MethodGet, "/registration/session", nil)
	setStudent(c)

	handler.Describe(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, models.ModeSelf, envelope.Data.Mode)
	assert.Len(t, envelope.Data.Available, 1)
	assert.Equal(t, "term-1", envelope.Data.Term.ID)
}

func TestRegistrationHandlerAddToCartInvalidBody(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{})
	c, w := testContext(t, http.MethodPost, "/registration/session/cart/items", nil)
	c.Request.Body = http.NoBody
	setStudent(c)

	handler.AddToCart(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandlerCartRoundTrip(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{
		pool: []models.Course{{ID: "c1", Code: "CS201", Credits: 3}},
	})

	c, w := testContext(t, http.MethodGet, "/registration/session", nil)
	setStudent(c)
	handler.Describe(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodPost, "/registration/session/cart/items", service.AddToCartRequest{CourseID: "c1"})
	setStudent(c)
	handler.AddToCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodDelete, "/registration/session/cart/items/c1", nil)
	c.Params = gin.Params{{Key: "courseId", Value: "c1"}}
	setStudent(c)
	handler.RemoveFromCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.SessionView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Cart)
}

func TestRegistrationHandlerDropWithoutConfirm(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{
		enrollments: []models.Enrollment{{
			ID:       "e1",
			CourseID: "c1",
			Status:   models.EnrollmentStatusEnrolled,
			Course:   &models.Course{ID: "c1", Code: "CS201", Credits: 3},
		}},
	})

	c, w := testContext(t, http.MethodGet, "/registration/session", nil)
	setStudent(c)
	handler.Describe(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodPost, "/registration/session/drop", service.DropRequest{EnrollmentID: "e1"})
	setStudent(c)
	handler.Drop(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegistrationHandlerCommit(t *testing.T) {
	handler := newRegistrationHandler(&catalogStub{
		pool: []models.Course{{ID: "c1", Code: "CS201", Credits: 3}},
	})

	c, w := testContext(t, http.MethodGet, "/registration/session", nil)
	setStudent(c)
	handler.Describe(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodPost, "/registration/session/cart/items", service.AddToCartRequest{CourseID: "c1"})
	setStudent(c)
	handler.AddToCart(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodPost, "/registration/session/commit", nil)
	setStudent(c)
	handler.Commit(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data service.CommitResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Failed)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, service.CommitItemCommitted, envelope.Data.Items[0].Status)
}
