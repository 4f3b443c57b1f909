package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the portal roles relevant to registration.
type UserRole string

const (
	RoleAdmin          UserRole = "ADMIN"
	RoleRegistrar      UserRole = "REGISTRAR"
	RoleStudentAffairs UserRole = "STUDENT_AFFAIRS"
	RoleStudent        UserRole = "STUDENT"
)

// IsStaff reports whether the role registers on behalf of students.
func (r UserRole) IsStaff() bool {
	switch r {
	case RoleAdmin, RoleRegistrar, RoleStudentAffairs:
		return true
	}
	return false
}

// JWTClaims represents the access-token payload issued by the identity
// collaborator.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
