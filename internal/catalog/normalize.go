package catalog

import (
	"encoding/json"

	"github.com/noah-isme/sis-reg-api/internal/models"
	appErrors "github.com/noah-isme/sis-reg-api/pkg/errors"
)

// The upstream API is served by heterogeneous backends: the same entity
// arrives with different field names depending on the endpoint (`code` vs
// `course_code`, `enrolled` vs `students_count`, flat vs nested course
// payloads) and scalars may be numbers or strings. Everything is mapped to
// the canonical models here so the rest of the gateway never sees the
// variability.

// flexString accepts JSON strings and numbers.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*s = ""
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexInt accepts JSON numbers and numeric strings.
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*i = 0
		return nil
	}
	var n json.Number
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		if v == "" {
			*i = 0
			return nil
		}
		n = json.Number(v)
	} else if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	value, err := n.Int64()
	if err != nil {
		return err
	}
	*i = flexInt(value)
	return nil
}

// unwrapData strips the optional {"data": ...} envelope.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

type coursePayload struct {
	ID             flexString `json:"id"`
	CourseID       flexString `json:"course_id"`
	SectionID      flexString `json:"section_id"`
	Code           flexString `json:"code"`
	CourseCode     flexString `json:"course_code"`
	Name           string     `json:"name"`
	NameEN         string     `json:"name_en"`
	Title          string     `json:"title"`
	Credits        flexInt    `json:"credits"`
	Section        string     `json:"section"`
	Instructor     string     `json:"instructor"`
	InstructorName string     `json:"instructor_name"`
	Schedule       string     `json:"schedule"`
	Location       string     `json:"location"`
	Room           string     `json:"room"`
	Capacity       flexInt    `json:"capacity"`
	Enrolled       flexInt    `json:"enrolled"`
	StudentsCount  flexInt    `json:"students_count"`
}

func (p coursePayload) toCourse() models.Course {
	course := models.Course{
		ID:         coalesce(string(p.ID), string(p.CourseID)),
		SectionID:  string(p.SectionID),
		Code:       coalesce(string(p.Code), string(p.CourseCode)),
		Name:       coalesce(p.Name, p.NameEN, p.Title),
		Credits:    int(p.Credits),
		Section:    p.Section,
		Instructor: coalesce(p.Instructor, p.InstructorName),
		Schedule:   p.Schedule,
		Location:   coalesce(p.Location, p.Room),
		Capacity:   int(p.Capacity),
		Enrolled:   int(p.Enrolled),
	}
	if course.Credits <= 0 {
		course.Credits = models.DefaultCourseCredits
	}
	if course.Enrolled == 0 && p.StudentsCount > 0 {
		course.Enrolled = int(p.StudentsCount)
	}
	return course
}

type enrollmentPayload struct {
	coursePayload
	EnrollmentCourse *coursePayload `json:"course"`
	Grade            *string        `json:"grade"`
	FinalGrade       *string        `json:"final_grade"`
	Status           string         `json:"status"`
}

func (p enrollmentPayload) toEnrollment() models.Enrollment {
	var course models.Course
	if p.EnrollmentCourse != nil {
		course = p.EnrollmentCourse.toCourse()
	} else {
		// flat payloads reuse the id field for the enrollment itself
		course = p.toCourse()
		course.ID = ""
	}

	courseID := coalesce(string(p.CourseID), course.ID, string(p.ID))
	course.ID = coalesce(course.ID, courseID)

	grade := p.Grade
	if grade == nil || *grade == "" {
		grade = p.FinalGrade
	}
	if grade != nil && *grade == "" {
		grade = nil
	}

	status := models.EnrollmentStatus(p.Status)
	if status == "" {
		status = models.EnrollmentStatusEnrolled
	}

	return models.Enrollment{
		ID:       string(p.ID),
		CourseID: courseID,
		Course:   &course,
		Grade:    grade,
		Status:   status,
		Section:  coalesce(p.Section, course.Section),
	}
}

type termPayload struct {
	ID     flexString `json:"id"`
	Name   string     `json:"name"`
	NameEN string     `json:"name_en"`
}

type verdictPayload struct {
	Eligible             *bool    `json:"eligible"`
	MissingPrerequisites []string `json:"missing_prerequisites"`
	MissingAlt           []string `json:"missingPrerequisites"`
}

type studentPayload struct {
	ID        flexString `json:"id"`
	StudentID flexString `json:"student_id"`
	FullName  string     `json:"full_name"`
	Name      string     `json:"name"`
	Level     flexString `json:"level"`
	College   string     `json:"college"`
	Program   struct {
		Name string `json:"name"`
	} `json:"program"`
}

func decodeCourses(raw json.RawMessage) ([]models.Course, error) {
	var payloads []coursePayload
	if err := json.Unmarshal(unwrapData(raw), &payloads); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected course payload")
	}
	courses := make([]models.Course, 0, len(payloads))
	for _, p := range payloads {
		courses = append(courses, p.toCourse())
	}
	return courses, nil
}

func decodeEnrollments(raw json.RawMessage) ([]models.Enrollment, error) {
	var payloads []enrollmentPayload
	if err := json.Unmarshal(unwrapData(raw), &payloads); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected enrollment payload")
	}
	enrollments := make([]models.Enrollment, 0, len(payloads))
	for _, p := range payloads {
		enrollments = append(enrollments, p.toEnrollment())
	}
	return enrollments, nil
}

func decodeEnrollment(raw json.RawMessage) (*models.Enrollment, error) {
	var payload enrollmentPayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected enrollment payload")
	}
	enrollment := payload.toEnrollment()
	return &enrollment, nil
}

func decodeTerm(raw json.RawMessage) (*models.Term, error) {
	var payload termPayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected term payload")
	}
	return &models.Term{ID: string(payload.ID), Name: coalesce(payload.Name, payload.NameEN)}, nil
}

func decodeVerdict(raw json.RawMessage) (*models.EligibilityVerdict, error) {
	var payload verdictPayload
	if err := json.Unmarshal(unwrapData(raw), &payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected eligibility payload")
	}
	verdict := &models.EligibilityVerdict{Eligible: true}
	if payload.Eligible != nil {
		verdict.Eligible = *payload.Eligible
	}
	verdict.MissingPrerequisites = payload.MissingPrerequisites
	if len(verdict.MissingPrerequisites) == 0 {
		verdict.MissingPrerequisites = payload.MissingAlt
	}
	return verdict, nil
}

func decodeStudents(raw json.RawMessage) ([]models.Student, error) {
	var payloads []studentPayload
	if err := json.Unmarshal(unwrapData(raw), &payloads); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "unexpected student payload")
	}
	students := make([]models.Student, 0, len(payloads))
	for _, p := range payloads {
		students = append(students, models.Student{
			ID:        string(p.ID),
			StudentID: string(p.StudentID),
			FullName:  coalesce(p.FullName, p.Name),
			Program:   p.Program.Name,
			Level:     string(p.Level),
			College:   p.College,
		})
	}
	return students, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
