package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sis-reg-api/internal/models"
)

func TestDecodeCoursesHandlesAlternateFieldNames(t *testing.T) {
	raw := json.RawMessage(`{"data":[
		{"id":12,"course_code":"CS201","name_en":"Data Structures","credits":"4","capacity":30,"students_count":28,"instructor_name":"Dr. Salem","room":"B12"},
		{"course_id":"c-2","code":"MATH101","title":"Calculus I"}
	]}`)

	courses, err := decodeCourses(raw)
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, "12", courses[0].ID)
	assert.Equal(t, "CS201", courses[0].Code)
	assert.Equal(t, "Data Structures", courses[0].Name)
	assert.Equal(t, 4, courses[0].Credits)
	assert.Equal(t, 28, courses[0].Enrolled)
	assert.Equal(t, "Dr. Salem", courses[0].Instructor)
	assert.Equal(t, "B12", courses[0].Location)
	assert.Equal(t, 2, courses[0].AvailableSeats())

	assert.Equal(t, "c-2", courses[1].ID)
	assert.Equal(t, "MATH101", courses[1].Code)
	assert.Equal(t, "Calculus I", courses[1].Name)
	assert.Equal(t, models.DefaultCourseCredits, courses[1].Credits)
}

func TestDecodeEnrollmentsNestedAndFlat(t *testing.T) {
	raw := json.RawMessage(`[
		{"id":"e1","course":{"id":"c1","code":"CS101","credits":3},"grade":null,"status":"ENROLLED"},
		{"id":"e2","course_id":7,"course_code":"CS202","credits":4,"final_grade":"A"}
	]`)

	enrollments, err := decodeEnrollments(raw)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)

	nested := enrollments[0]
	assert.Equal(t, "e1", nested.ID)
	assert.Equal(t, "c1", nested.CourseID)
	assert.Equal(t, "CS101", nested.CourseCode())
	assert.False(t, nested.Graded())

	flat := enrollments[1]
	assert.Equal(t, "7", flat.CourseID)
	assert.Equal(t, "CS202", flat.CourseCode())
	assert.Equal(t, 4, flat.Credits())
	assert.True(t, flat.Graded())
	assert.Equal(t, models.EnrollmentStatusEnrolled, flat.Status)
}

func TestDecodeVerdictDefaultsToEligible(t *testing.T) {
	verdict, err := decodeVerdict(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.True(t, verdict.Eligible)
	assert.Empty(t, verdict.MissingPrerequisites)
}

func TestDecodeVerdictAlternateMissingKey(t *testing.T) {
	verdict, err := decodeVerdict(json.RawMessage(`{"eligible":false,"missingPrerequisites":["CS101","CS102"]}`))
	require.NoError(t, err)
	assert.False(t, verdict.Eligible)
	assert.Equal(t, []string{"CS101", "CS102"}, verdict.MissingPrerequisites)
}

func TestDecodeStudents(t *testing.T) {
	raw := json.RawMessage(`{"data":[{"id":3,"student_id":"20250012","full_name":"Sara Ali","program":{"name":"Computer Science"},"level":4}]}`)

	students, err := decodeStudents(raw)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "3", students[0].ID)
	assert.Equal(t, "20250012", students[0].StudentID)
	assert.Equal(t, "Sara Ali", students[0].FullName)
	assert.Equal(t, "Computer Science", students[0].Program)
	assert.Equal(t, "4", students[0].Level)
}

func TestDecodeTerm(t *testing.T) {
	term, err := decodeTerm(json.RawMessage(`{"data":{"id":9,"name_en":"Fall 2026"}}`))
	require.NoError(t, err)
	assert.Equal(t, "9", term.ID)
	assert.Equal(t, "Fall 2026", term.Name)
}
