package models

// EnrollmentStatus mirrors the status vocabulary of the upstream SIS.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentStatusDropped   EnrollmentStatus = "DROPPED"
	EnrollmentStatusWithdrawn EnrollmentStatus = "WITHDRAWN"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
)

// Enrollment is a committed course registration owned by the upstream SIS.
// The id is assigned server-side; the gateway never fabricates one.
type Enrollment struct {
	ID       string           `json:"id"`
	CourseID string           `json:"course_id"`
	Course   *Course          `json:"course,omitempty"`
	Grade    *string          `json:"grade,omitempty"`
	Status   EnrollmentStatus `json:"status"`
	Section  string           `json:"section,omitempty"`
}

// Credits resolves the credit weight of the enrollment, falling back to the
// embedded course payload and finally the catalog default.
func (e Enrollment) Credits() int {
	if e.Course != nil && e.Course.Credits > 0 {
		return e.Course.Credits
	}
	return DefaultCourseCredits
}

// CourseCode resolves the course code from whichever field the upstream
// populated.
func (e Enrollment) CourseCode() string {
	if e.Course != nil && e.Course.Code != "" {
		return e.Course.Code
	}
	return ""
}

// Graded reports whether a final grade has been recorded.
func (e Enrollment) Graded() bool {
	return e.Grade != nil && *e.Grade != ""
}

// EnrolledCredits sums credit weights across enrollments.
func EnrolledCredits(enrollments []Enrollment) int {
	total := 0
	for _, e := range enrollments {
		total += e.Credits()
	}
	return total
}

// EnrolledCourseIDs collects the course ids referenced by enrollments.
func EnrolledCourseIDs(enrollments []Enrollment) map[string]struct{} {
	ids := make(map[string]struct{}, len(enrollments))
	for _, e := range enrollments {
		if e.CourseID != "" {
			ids[e.CourseID] = struct{}{}
		}
		if e.Course != nil && e.Course.ID != "" {
			ids[e.Course.ID] = struct{}{}
		}
	}
	return ids
}
