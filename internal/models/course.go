package models

// DefaultCourseCredits is assumed when the catalog omits a credit value.
const DefaultCourseCredits = 3

// Course is a registrable course section as supplied by the catalog
// collaborator, normalised into a single canonical shape.
type Course struct {
	ID         string `json:"id"`
	SectionID  string `json:"section_id,omitempty"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Credits    int    `json:"credits"`
	Section    string `json:"section,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Schedule   string `json:"schedule,omitempty"`
	Location   string `json:"location,omitempty"`
	Capacity   int    `json:"capacity"`
	Enrolled   int    `json:"enrolled"`
}

// AvailableSeats may be negative when a section is overbooked upstream.
func (c Course) AvailableSeats() int {
	return c.Capacity - c.Enrolled
}

// IsFull reports whether a section with a known capacity has no seats left.
// A zero capacity means the catalog did not supply one.
func (c Course) IsFull() bool {
	return c.Capacity > 0 && c.AvailableSeats() <= 0
}

// EnrollTarget returns the identifier used for self-service enrollment,
// preferring the section id when the catalog exposes one.
func (c Course) EnrollTarget() string {
	if c.SectionID != "" {
		return c.SectionID
	}
	return c.ID
}
