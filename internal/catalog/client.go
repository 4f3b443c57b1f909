package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/models"
	"github.com/noah-isme/sis-reg-api/pkg/config"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

type tokenContextKey struct{}

// WithToken stores the caller's bearer token for forwarding upstream.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenContextKey{}).(string); ok {
		return v
	}
	return ""
}

// UpstreamObserver receives timing for every backend call.
type UpstreamObserver interface {
	ObserveUpstreamRequest(method, path string, success bool, duration time.Duration)
}

// Client talks to the upstream SIS API. All responses pass through the
// normalisation layer before reaching the rest of the gateway.
type Client struct {
	baseURL  string
	http     *http.Client
	observer UpstreamObserver
	logger   *zap.Logger
}

// NewClient constructs a catalog client. The observer is optional.
func NewClient(cfg config.CatalogConfig, observer UpstreamObserver, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.Timeout},
		observer: observer,
		logger:   logger,
	}
}

// CreateEnrollmentRequest is the delegated-mode enrollment mutation payload.
type CreateEnrollmentRequest struct {
	StudentID  string `json:"student_id"`
	CourseID   string `json:"course_id"`
	SemesterID string `json:"semester_id,omitempty"`
	Section    string `json:"section"`
	Status     string `json:"status"`
}

// MyEnrollments returns the caller's enrollments (self mode).
func (c *Client) MyEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	raw, err := c.send(ctx, http.MethodGet, "/my-enrollments", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnrollments(raw)
}

// StudentEnrollments returns the active enrollments of a delegated subject.
func (c *Client) StudentEnrollments(ctx context.Context, subjectID string) ([]models.Enrollment, error) {
	query := url.Values{}
	query.Set("student_id", subjectID)
	query.Set("status", string(models.EnrollmentStatusEnrolled))
	raw, err := c.send(ctx, http.MethodGet, "/enrollments", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeEnrollments(raw)
}

// AvailableSections returns the registrable course pool, falling back to the
// full course list when the sections endpoint is unavailable.
func (c *Client) AvailableSections(ctx context.Context) ([]models.Course, error) {
	raw, err := c.send(ctx, http.MethodGet, "/available-sections", nil, nil)
	if err != nil {
		c.logger.Debug("available-sections unavailable, falling back to courses", zap.Error(err))
		raw, err = c.send(ctx, http.MethodGet, "/courses", nil, nil)
		if err != nil {
			return nil, err
		}
	}
	return decodeCourses(raw)
}

// CurrentTerm returns the active academic term.
func (c *Client) CurrentTerm(ctx context.Context) (*models.Term, error) {
	raw, err := c.send(ctx, http.MethodGet, "/settings/current-semester", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeTerm(raw)
}

// CheckEligibility asks the upstream whether the subject satisfies the
// prerequisites of a course.
func (c *Client) CheckEligibility(ctx context.Context, courseID string) (*models.EligibilityVerdict, error) {
	raw, err := c.send(ctx, http.MethodGet, "/courses/"+url.PathEscape(courseID)+"/eligibility", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeVerdict(raw)
}

// CreateEnrollment registers a course for an explicit subject (delegated mode).
func (c *Client) CreateEnrollment(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	raw, err := c.send(ctx, http.MethodPost, "/enrollments", nil, req)
	if err != nil {
		return nil, err
	}
	return decodeEnrollment(raw)
}

// Enroll registers the caller into a section (self mode).
func (c *Client) Enroll(ctx context.Context, sectionOrCourseID string) (*models.Enrollment, error) {
	body := map[string]string{"section_id": sectionOrCourseID}
	raw, err := c.send(ctx, http.MethodPost, "/my-enrollments", nil, body)
	if err != nil {
		return nil, err
	}
	return decodeEnrollment(raw)
}

// DropEnrollment unregisters an enrollment on behalf of a subject.
func (c *Client) DropEnrollment(ctx context.Context, enrollmentID string) error {
	_, err := c.send(ctx, http.MethodPost, "/enrollments/"+url.PathEscape(enrollmentID)+"/drop", nil, nil)
	return err
}

// DropMyEnrollment unregisters one of the caller's own enrollments.
func (c *Client) DropMyEnrollment(ctx context.Context, enrollmentID string) error {
	_, err := c.send(ctx, http.MethodDelete, "/my-enrollments/"+url.PathEscape(enrollmentID), nil, nil)
	return err
}

// SearchStudents queries the student directory by id or name.
func (c *Client) SearchStudents(ctx context.Context, search string, limit int) ([]models.Student, error) {
	query := url.Values{}
	query.Set("search", search)
	if limit > 0 {
		query.Set("per_page", fmt.Sprintf("%d", limit))
	}
	raw, err := c.send(ctx, http.MethodGet, "/students", query, nil)
	if err != nil {
		return nil, err
	}
	return decodeStudents(raw)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body interface{}) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode upstream payload")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build upstream request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(method, path, false, start)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "catalog request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(method, path, false, start)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to read upstream response")
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.observe(method, path, false, start)
		return nil, appErrors.Wrap(fmt.Errorf("upstream status %d", resp.StatusCode), appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "catalog request failed")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		c.observe(method, path, false, start)
		message := upstreamMessage(raw)
		if message == "" {
			message = fmt.Sprintf("upstream rejected request with status %d", resp.StatusCode)
		}
		return nil, appErrors.New("UPSTREAM_REJECTED", resp.StatusCode, message)
	}

	c.observe(method, path, true, start)
	return raw, nil
}

func (c *Client) observe(method, path string, success bool, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(method, path, success, time.Since(start))
}

func upstreamMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
