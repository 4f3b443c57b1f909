package models

// EligibilityVerdict is the cached outcome of a prerequisite check for one
// course. The missing list preserves the order reported by the upstream.
type EligibilityVerdict struct {
	Eligible             bool     `json:"eligible"`
	MissingPrerequisites []string `json:"missing_prerequisites,omitempty"`
}
