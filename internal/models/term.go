package models

// Term identifies the academic term registrations are committed against.
type Term struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
