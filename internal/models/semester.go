package models

// SemesterBucket is a display-only grouping derived from course-code parity.
// It is unrelated to the academic term.
type SemesterBucket int

// The two display buckets.
const (
	SemesterBucketFirst  SemesterBucket = 1
	SemesterBucketSecond SemesterBucket = 2
)

// ClassifySemesterBucket maps a course code to a bucket by its trailing
// digit (odd -> first, even -> second). Codes that do not end in a digit
// fall into the first bucket.
func ClassifySemesterBucket(courseCode string) SemesterBucket {
	if courseCode == "" {
		return SemesterBucketFirst
	}
	c := courseCode[len(courseCode)-1]
	if c < '0' || c > '9' {
		return SemesterBucketFirst
	}
	if (c-'0')%2 == 1 {
		return SemesterBucketFirst
	}
	return SemesterBucketSecond
}

// SemesterGroup holds the enrollments of one bucket with their credit
// subtotal.
type SemesterGroup struct {
	Bucket      SemesterBucket `json:"bucket"`
	Enrollments []Enrollment   `json:"enrollments"`
	Credits     int            `json:"credits"`
}

// GroupEnrollmentsByBucket splits enrollments into the two semester buckets,
// preserving input order within each group.
func GroupEnrollmentsByBucket(enrollments []Enrollment) []SemesterGroup {
	groups := []SemesterGroup{
		{Bucket: SemesterBucketFirst, Enrollments: []Enrollment{}},
		{Bucket: SemesterBucketSecond, Enrollments: []Enrollment{}},
	}
	for _, e := range enrollments {
		idx := 0
		if ClassifySemesterBucket(e.CourseCode()) == SemesterBucketSecond {
			idx = 1
		}
		groups[idx].Enrollments = append(groups[idx].Enrollments, e)
		groups[idx].Credits += e.Credits()
	}
	return groups
}
