package models

// Student is a directory record used to locate a delegated-mode subject.
type Student struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	FullName  string `json:"full_name"`
	Program   string `json:"program,omitempty"`
	Level     string `json:"level,omitempty"`
	College   string `json:"college,omitempty"`
}
