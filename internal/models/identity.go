package models

// RegistrationMode selects how identity is attached to catalog calls.
type RegistrationMode string

const (
	// ModeSelf lets the upstream infer the subject from the caller session.
	ModeSelf RegistrationMode = "SELF"
	// ModeDelegated attaches an explicitly located subject to every call.
	ModeDelegated RegistrationMode = "DELEGATED"
)

// IdentityContext is the single place the subject of catalog, commit and
// drop calls is decided. Delegated operations are invalid until a subject
// has been located.
type IdentityContext struct {
	Mode    RegistrationMode `json:"mode"`
	Subject *Student         `json:"subject,omitempty"`
}

// SelfIdentity returns the sentinel self context.
func SelfIdentity() IdentityContext {
	return IdentityContext{Mode: ModeSelf}
}

// DelegatedIdentity returns a delegated context for the located subject.
func DelegatedIdentity(subject *Student) IdentityContext {
	return IdentityContext{Mode: ModeDelegated, Subject: subject}
}

// HasSubject reports whether the context can issue delegated calls.
func (ic IdentityContext) HasSubject() bool {
	return ic.Mode == ModeSelf || ic.Subject != nil
}

// SubjectID returns the delegated subject id, empty in self mode.
func (ic IdentityContext) SubjectID() string {
	if ic.Subject == nil {
		return ""
	}
	return ic.Subject.ID
}
