package domain

// Role represents a user role in the campus system
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
	// RoleAny is only meaningful as a facility eligibility value
	RoleAny Role = "any"
)

// IsValid returns true for roles a user can hold
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleFaculty || r == RoleAdmin
}

// IsValidEligibility returns true for roles a facility can be restricted to
func (r Role) IsValidEligibility() bool {
	return r.IsValid() || r == RoleAny
}

// User is the part of the identity record the booking engine needs
type User struct {
	ID       int64
	Role     Role
	IsActive bool
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
