package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sis-reg-api/internal/catalog"
	"github.com/noah-isme/sis-reg-api/internal/models"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

type catalogClient interface {
	MyEnrollments(ctx context.Context) ([]models.Enrollment, error)
	StudentEnrollments(ctx context.Context, subjectID string) ([]models.Enrollment, error)
	AvailableSections(ctx context.Context) ([]models.Course, error)
	CurrentTerm(ctx context.Context) (*models.Term, error)
	CheckEligibility(ctx context.Context, courseID string) (*models.EligibilityVerdict, error)
	CreateEnrollment(ctx context.Context, req catalog.CreateEnrollmentRequest) (*models.Enrollment, error)
	Enroll(ctx context.Context, sectionOrCourseID string) (*models.Enrollment, error)
	DropEnrollment(ctx context.Context, enrollmentID string) error
	DropMyEnrollment(ctx context.Context, enrollmentID string) error
	SearchStudents(ctx context.Context, search string, limit int) ([]models.Student, error)
}

type snapshotCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

// Shared cache keys for catalog data that is identical for every session.
const (
	cacheKeyCoursePool  = "catalog:pool"
	cacheKeyCurrentTerm = "catalog:term"
)

type actionRecorder interface {
	Record(action models.RegistrationAction)
}

type registrationObserver interface {
	ObserveCommitItem(outcome models.RegistrationOutcome)
	ObserveDrop(outcome models.RegistrationOutcome)
}

// session holds the per-user registration state. Its lifetime runs from
// first access to a mode/subject switch; nothing in it survives a restart.
type session struct {
	mu          sync.Mutex
	identity    models.IdentityContext
	cart        Cart
	eligibility *EligibilityCache
	enrollments []models.Enrollment
	available   []models.Course
	term        *models.Term
	offline     bool
	loaded      bool
}

// RegistrationService orchestrates the cart, eligibility, commit and drop
// workflows for both self-service and delegated registration.
type RegistrationService struct {
	mu       sync.Mutex
	sessions map[string]*session

	catalog        catalogClient
	snapshots      snapshotCache
	recorder       actionRecorder
	metrics        registrationObserver
	policy         models.CreditPolicy
	defaultSection string
	snapshotTTL    time.Duration
	validator      *validator.Validate
	logger         *zap.Logger
}

// RegistrationConfig carries the policy knobs for the service.
type RegistrationConfig struct {
	Policy         models.CreditPolicy
	DefaultSection string
	SnapshotTTL    time.Duration
}

// NewRegistrationService constructs the orchestrator. The snapshot cache and
// the recorder are optional; passing nil disables them.
func NewRegistrationService(client catalogClient, snapshots snapshotCache, recorder actionRecorder, metrics registrationObserver, cfg RegistrationConfig, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultSection == "" {
		cfg.DefaultSection = "A"
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 2 * time.Minute
	}
	return &RegistrationService{
		sessions:       make(map[string]*session),
		catalog:        client,
		snapshots:      snapshots,
		recorder:       recorder,
		metrics:        metrics,
		policy:         cfg.Policy,
		defaultSection: cfg.DefaultSection,
		snapshotTTL:    cfg.SnapshotTTL,
		validator:      validate,
		logger:         logger,
	}
}

// SessionView is the full session state returned to the portal.
type SessionView struct {
	Mode            models.RegistrationMode `json:"mode"`
	Subject         *models.Student         `json:"subject,omitempty"`
	Term            *models.Term            `json:"term,omitempty"`
	Offline         bool                    `json:"offline"`
	Enrollments     []models.Enrollment     `json:"enrollments"`
	SemesterGroups  []models.SemesterGroup  `json:"semester_groups"`
	Available       []models.Course         `json:"available_courses"`
	Cart            []models.CartItem       `json:"cart"`
	EnrolledCredits int                     `json:"enrolled_credits"`
	CartCredits     int                     `json:"cart_credits"`
	TotalCredits    int                     `json:"total_credits"`
	Policy          models.CreditPolicy     `json:"credit_policy"`
	BelowMinimum    bool                    `json:"below_minimum"`
}

// AddToCartRequest queues one course for registration.
type AddToCartRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// SelectSubjectRequest locates the delegated-mode subject.
type SelectSubjectRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// DropRequest unregisters one enrollment. Confirm must be set: dropping is
// irrevocable and never dispatched without it.
type DropRequest struct {
	EnrollmentID string `json:"enrollment_id" validate:"required"`
	Confirm      bool   `json:"confirm"`
}

// CommitItemStatus tags the per-item outcome of a commit attempt.
type CommitItemStatus string

// Per-item commit statuses.
const (
	CommitItemCommitted CommitItemStatus = "COMMITTED"
	CommitItemFailed    CommitItemStatus = "FAILED"
	CommitItemSkipped   CommitItemStatus = "SKIPPED"
)

// CommitItemResult reports the fate of one cart item.
type CommitItemResult struct {
	CourseID     string           `json:"course_id"`
	CourseCode   string           `json:"course_code,omitempty"`
	Status       CommitItemStatus `json:"status"`
	EnrollmentID string           `json:"enrollment_id,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// CommitResult is the batch outcome of draining the cart.
type CommitResult struct {
	Items  []CommitItemResult `json:"items"`
	Failed bool               `json:"failed"`
	Error  string             `json:"error,omitempty"`
}

func (s *RegistrationService) session(claims *models.JWTClaims) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[claims.UserID]; ok {
		return sess
	}
	sess := s.newSession(claims)
	s.sessions[claims.UserID] = sess
	return sess
}

func (s *RegistrationService) newSession(claims *models.JWTClaims) *session {
	identity := models.SelfIdentity()
	if claims.Role.IsStaff() {
		identity = models.DelegatedIdentity(nil)
	}
	return &session{
		identity:    identity,
		eligibility: NewEligibilityCache(s.catalog, eligibilityMetrics(s.metrics), s.logger),
	}
}

// Describe returns the current session state, loading the catalog snapshot
// lazily for self-service callers. Delegated callers see an empty view
// until a subject is located.
func (s *RegistrationService) Describe(ctx context.Context, claims *models.JWTClaims) (*SessionView, error) {
	sess := s.session(claims)
	if err := s.ensureLoaded(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Refresh re-fetches the catalog snapshot, keeping the cart intact. Used as
// the manual retry affordance for the degraded offline state.
func (s *RegistrationService) Refresh(ctx context.Context, claims *models.JWTClaims) (*SessionView, error) {
	sess := s.session(claims)
	if err := requireSubject(sess); err != nil {
		return nil, err
	}
	if err := s.loadSnapshot(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// SelectSubject switches a staff session onto a located student. The cart,
// eligibility cache and snapshot of any previous subject are discarded.
func (s *RegistrationService) SelectSubject(ctx context.Context, claims *models.JWTClaims, req SelectSubjectRequest) (*SessionView, error) {
	if !claims.Role.IsStaff() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "subject selection requires a staff role")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}

	subject, err := s.locateSubject(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	sess := s.session(claims)
	sess.mu.Lock()
	sess.identity = models.DelegatedIdentity(subject)
	sess.cart.Clear()
	sess.eligibility = NewEligibilityCache(s.catalog, eligibilityMetrics(s.metrics), s.logger)
	sess.enrollments = nil
	sess.available = nil
	sess.term = nil
	sess.loaded = false
	sess.mu.Unlock()

	if err := s.loadSnapshot(ctx, sess); err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// ClearSubject detaches the delegated subject and resets the session.
func (s *RegistrationService) ClearSubject(claims *models.JWTClaims) (*SessionView, error) {
	if !claims.Role.IsStaff() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "subject selection requires a staff role")
	}
	sess := s.session(claims)
	sess.mu.Lock()
	sess.identity = models.DelegatedIdentity(nil)
	sess.cart.Clear()
	sess.eligibility = NewEligibilityCache(s.catalog, eligibilityMetrics(s.metrics), s.logger)
	sess.enrollments = nil
	sess.available = nil
	sess.term = nil
	sess.offline = false
	sess.loaded = false
	sess.mu.Unlock()
	return s.view(sess), nil
}

// AddToCart admits a course into the cart after the synchronous checks and
// the eligibility gate.
func (s *RegistrationService) AddToCart(ctx context.Context, claims *models.JWTClaims, req AddToCartRequest) (*SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cart payload")
	}
	sess := s.session(claims)
	if err := requireSubject(sess); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx, sess); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	course, ok := findCourse(sess.available, req.CourseID)
	if !ok {
		sess.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not available for registration")
	}
	enrolledIDs := models.EnrolledCourseIDs(sess.enrollments)
	enrolledCredits := models.EnrolledCredits(sess.enrollments)
	if err := sess.cart.Admit(course, enrolledIDs, enrolledCredits, s.policy); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	eligibility := sess.eligibility
	sess.mu.Unlock()

	// Credit and duplicate checks passed; the eligibility lookup may
	// suspend, so it runs outside the session lock.
	verdict := eligibility.Check(ctx, course.ID)
	if !verdict.Eligible {
		return nil, appErrors.PrerequisitesUnmet(verdict.MissingPrerequisites)
	}

	sess.mu.Lock()
	// state may have moved while the lookup was in flight
	enrolledIDs = models.EnrolledCourseIDs(sess.enrollments)
	enrolledCredits = models.EnrolledCredits(sess.enrollments)
	if err := sess.cart.Admit(course, enrolledIDs, enrolledCredits, s.policy); err != nil {
		sess.mu.Unlock()
		return nil, err
	}
	sess.cart.Append(course)
	sess.mu.Unlock()

	return s.view(sess), nil
}

// RemoveFromCart deletes a course from the cart; absent courses are a no-op.
func (s *RegistrationService) RemoveFromCart(claims *models.JWTClaims, courseID string) *SessionView {
	sess := s.session(claims)
	sess.mu.Lock()
	sess.cart.Remove(courseID)
	sess.mu.Unlock()
	return s.view(sess)
}

// Commit drains the cart sequentially against the catalog mutation
// endpoint. Dispatch aborts on the first failure; items after it are
// reported as skipped. Whatever the outcome, local state is resynced
// wholesale from the catalog and the cart is cleared.
func (s *RegistrationService) Commit(ctx context.Context, claims *models.JWTClaims) (*CommitResult, error) {
	sess := s.session(claims)
	if err := requireSubject(sess); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	items := sess.cart.Items()
	identity := sess.identity
	term := sess.term
	sess.mu.Unlock()

	result := &CommitResult{Items: make([]CommitItemResult, 0, len(items))}
	if len(items) == 0 {
		return result, nil
	}

	semesterID := ""
	if term != nil {
		semesterID = term.ID
	} else if current, err := s.catalog.CurrentTerm(ctx); err == nil {
		semesterID = current.ID
	}

	// Sequential on purpose: an earlier item's server-side effects (seat
	// counts, audit ordering) can change the outcome of a later one.
	aborted := false
	committedAny := false
	for _, item := range items {
		itemResult := CommitItemResult{CourseID: item.Course.ID, CourseCode: item.Course.Code}
		if aborted {
			itemResult.Status = CommitItemSkipped
			result.Items = append(result.Items, itemResult)
			continue
		}

		enrollment, err := s.commitItem(ctx, identity, item.Course, semesterID)
		if err != nil {
			itemResult.Status = CommitItemFailed
			itemResult.Error = err.Error()
			result.Failed = true
			result.Error = fmt.Sprintf("registration failed for %s: %v", item.Course.Code, err)
			aborted = true
		} else {
			itemResult.Status = CommitItemCommitted
			committedAny = true
			if enrollment != nil {
				itemResult.EnrollmentID = enrollment.ID
			}
		}
		result.Items = append(result.Items, itemResult)
		s.recordCommitItem(claims, identity, itemResult)
	}

	// Enrollments change seat counts, so the shared pool snapshot is no
	// longer trustworthy as a stale fallback.
	if committedAny {
		s.invalidateSnapshot(ctx, cacheKeyCoursePool)
	}

	// Wholesale resync keeps the local view authoritative even though the
	// failure bookkeeping above is per-client.
	if err := s.loadSnapshot(ctx, sess); err != nil {
		s.logger.Warn("post-commit resync failed", zap.Error(err))
	}

	sess.mu.Lock()
	sess.cart.Clear()
	sess.mu.Unlock()

	return result, nil
}

// Drop unregisters a single enrollment after explicit confirmation.
func (s *RegistrationService) Drop(ctx context.Context, claims *models.JWTClaims, req DropRequest) (*SessionView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid drop payload")
	}
	if !req.Confirm {
		return nil, appErrors.Clone(appErrors.ErrValidation, "drop requires explicit confirmation")
	}
	sess := s.session(claims)
	if err := requireSubject(sess); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx, sess); err != nil {
		return nil, err
	}

	sess.mu.Lock()
	identity := sess.identity
	var dropped *models.Enrollment
	for i := range sess.enrollments {
		if sess.enrollments[i].ID == req.EnrollmentID {
			e := sess.enrollments[i]
			dropped = &e
			break
		}
	}
	sess.mu.Unlock()

	if dropped == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}

	var err error
	if identity.Mode == models.ModeDelegated {
		err = s.catalog.DropEnrollment(ctx, req.EnrollmentID)
	} else {
		err = s.catalog.DropMyEnrollment(ctx, req.EnrollmentID)
	}
	s.recordDrop(claims, identity, dropped, err)
	if err != nil {
		return nil, err
	}
	s.invalidateSnapshot(ctx, cacheKeyCoursePool)

	sess.mu.Lock()
	kept := sess.enrollments[:0]
	for _, e := range sess.enrollments {
		if e.ID != req.EnrollmentID {
			kept = append(kept, e)
		}
	}
	sess.enrollments = kept
	// best effort: without the course payload the pool stays unchanged
	// until the next refresh
	if dropped.Course != nil {
		sess.available = append(sess.available, *dropped.Course)
	}
	sess.mu.Unlock()

	return s.view(sess), nil
}

func (s *RegistrationService) commitItem(ctx context.Context, identity models.IdentityContext, course models.Course, semesterID string) (*models.Enrollment, error) {
	if identity.Mode == models.ModeDelegated {
		section := course.Section
		if section == "" {
			section = s.defaultSection
		}
		return s.catalog.CreateEnrollment(ctx, catalog.CreateEnrollmentRequest{
			StudentID:  identity.SubjectID(),
			CourseID:   course.ID,
			SemesterID: semesterID,
			Section:    section,
			Status:     string(models.EnrollmentStatusEnrolled),
		})
	}
	return s.catalog.Enroll(ctx, course.EnrollTarget())
}

func (s *RegistrationService) loadSnapshot(ctx context.Context, sess *session) error {
	sess.mu.Lock()
	identity := sess.identity
	sess.mu.Unlock()
	if identity.Mode == models.ModeDelegated && identity.Subject == nil {
		return appErrors.Clone(appErrors.ErrNoSubjectSelected, "")
	}

	var (
		wg          sync.WaitGroup
		enrollments []models.Enrollment
		pool        []models.Course
		term        *models.Term
		enrErr      error
		poolErr     error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		if identity.Mode == models.ModeDelegated {
			enrollments, enrErr = s.catalog.StudentEnrollments(ctx, identity.SubjectID())
		} else {
			enrollments, enrErr = s.catalog.MyEnrollments(ctx)
		}
	}()
	go func() {
		defer wg.Done()
		pool, poolErr = s.catalog.AvailableSections(ctx)
		if poolErr == nil {
			s.cacheSnapshot(ctx, cacheKeyCoursePool, pool)
			return
		}
		var cached []models.Course
		if s.readSnapshot(ctx, cacheKeyCoursePool, &cached) {
			pool, poolErr = cached, nil
		}
	}()
	go func() {
		defer wg.Done()
		current, err := s.catalog.CurrentTerm(ctx)
		if err != nil {
			s.logger.Debug("current term unavailable", zap.Error(err))
			var cached models.Term
			if s.readSnapshot(ctx, cacheKeyCurrentTerm, &cached) {
				term = &cached
			}
			return
		}
		term = current
		s.cacheSnapshot(ctx, cacheKeyCurrentTerm, current)
	}()
	wg.Wait()

	offline := enrErr != nil && poolErr != nil
	if enrErr != nil {
		s.logger.Warn("enrollment load failed", zap.Error(enrErr))
		enrollments = []models.Enrollment{}
	}
	if poolErr != nil {
		s.logger.Warn("course pool load failed", zap.Error(poolErr))
		pool = []models.Course{}
	}

	enrolledIDs := models.EnrolledCourseIDs(enrollments)
	filtered := make([]models.Course, 0, len(pool))
	for _, course := range pool {
		if _, ok := enrolledIDs[course.ID]; ok {
			continue
		}
		// the all-courses fallback can include sections with no seats left
		if course.IsFull() {
			continue
		}
		filtered = append(filtered, course)
	}

	sess.mu.Lock()
	sess.enrollments = enrollments
	sess.available = filtered
	if term != nil {
		sess.term = term
	}
	sess.offline = offline
	sess.loaded = true
	sess.mu.Unlock()
	return nil
}

// ensureLoaded loads the catalog snapshot once per session. Sessions without
// a subject stay empty until one is located.
func (s *RegistrationService) ensureLoaded(ctx context.Context, sess *session) error {
	sess.mu.Lock()
	needsLoad := !sess.loaded && sess.identity.HasSubject()
	sess.mu.Unlock()
	if !needsLoad {
		return nil
	}
	return s.loadSnapshot(ctx, sess)
}

func (s *RegistrationService) cacheSnapshot(ctx context.Context, key string, value interface{}) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Set(ctx, key, value, s.snapshotTTL); err != nil {
		s.logger.Debug("snapshot cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *RegistrationService) readSnapshot(ctx context.Context, key string, dest interface{}) bool {
	if s.snapshots == nil {
		return false
	}
	if err := s.snapshots.Get(ctx, key, dest); err != nil {
		return false
	}
	s.logger.Info("serving stale catalog snapshot", zap.String("key", key))
	return true
}

func (s *RegistrationService) invalidateSnapshot(ctx context.Context, pattern string) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Invalidate(ctx, pattern); err != nil {
		s.logger.Debug("snapshot invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

func (s *RegistrationService) locateSubject(ctx context.Context, studentID string) (*models.Student, error) {
	candidates, err := s.catalog.SearchStudents(ctx, studentID, 10)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		if candidates[i].ID == studentID || candidates[i].StudentID == studentID {
			return &candidates[i], nil
		}
	}
	if len(candidates) == 1 {
		return &candidates[0], nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

func (s *RegistrationService) view(sess *session) *SessionView {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	enrolledCredits := models.EnrolledCredits(sess.enrollments)
	cartCredits := sess.cart.Credits()
	total := enrolledCredits + cartCredits

	enrollments := make([]models.Enrollment, len(sess.enrollments))
	copy(enrollments, sess.enrollments)
	available := make([]models.Course, len(sess.available))
	copy(available, sess.available)

	return &SessionView{
		Mode:            sess.identity.Mode,
		Subject:         sess.identity.Subject,
		Term:            sess.term,
		Offline:         sess.offline,
		Enrollments:     enrollments,
		SemesterGroups:  models.GroupEnrollmentsByBucket(enrollments),
		Available:       available,
		Cart:            sess.cart.Items(),
		EnrolledCredits: enrolledCredits,
		CartCredits:     cartCredits,
		TotalCredits:    total,
		Policy:          s.policy,
		BelowMinimum:    s.policy.MinCredits > 0 && total < s.policy.MinCredits,
	}
}

func (s *RegistrationService) recordCommitItem(claims *models.JWTClaims, identity models.IdentityContext, item CommitItemResult) {
	if s.metrics != nil {
		if item.Status == CommitItemCommitted {
			s.metrics.ObserveCommitItem(models.OutcomeCommitted)
		} else if item.Status == CommitItemFailed {
			s.metrics.ObserveCommitItem(models.OutcomeFailed)
		}
	}
	if s.recorder == nil || item.Status == CommitItemSkipped {
		return
	}
	outcome := models.OutcomeCommitted
	if item.Status == CommitItemFailed {
		outcome = models.OutcomeFailed
	}
	action := models.RegistrationAction{
		ActorID:   claims.UserID,
		ActorRole: claims.Role,
		Action:    models.ActionCommitItem,
		CourseID:  item.CourseID,
		Outcome:   outcome,
		Detail:    item.Error,
	}
	if id := identity.SubjectID(); id != "" {
		action.SubjectID = &id
	}
	if item.EnrollmentID != "" {
		enrollmentID := item.EnrollmentID
		action.EnrollmentID = &enrollmentID
	}
	s.recorder.Record(action)
}

func (s *RegistrationService) recordDrop(claims *models.JWTClaims, identity models.IdentityContext, dropped *models.Enrollment, dropErr error) {
	if s.metrics != nil {
		if dropErr != nil {
			s.metrics.ObserveDrop(models.OutcomeFailed)
		} else {
			s.metrics.ObserveDrop(models.OutcomeCommitted)
		}
	}
	if s.recorder == nil {
		return
	}
	outcome := models.OutcomeCommitted
	detail := ""
	if dropErr != nil {
		outcome = models.OutcomeFailed
		detail = dropErr.Error()
	}
	enrollmentID := dropped.ID
	action := models.RegistrationAction{
		ActorID:      claims.UserID,
		ActorRole:    claims.Role,
		Action:       models.ActionDrop,
		CourseID:     dropped.CourseID,
		EnrollmentID: &enrollmentID,
		Outcome:      outcome,
		Detail:       detail,
	}
	if id := identity.SubjectID(); id != "" {
		action.SubjectID = &id
	}
	s.recorder.Record(action)
}

func requireSubject(sess *session) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.identity.HasSubject() {
		return appErrors.Clone(appErrors.ErrNoSubjectSelected, "")
	}
	return nil
}

func findCourse(pool []models.Course, courseID string) (models.Course, bool) {
	for _, course := range pool {
		if course.ID == courseID {
			return course, true
		}
	}
	return models.Course{}, false
}

func eligibilityMetrics(metrics registrationObserver) eligibilityObserver {
	if m, ok := metrics.(eligibilityObserver); ok {
		return m
	}
	return nil
}
