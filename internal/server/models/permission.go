package models

// Permission is the ordered role level used for authorization decisions.
// Only the relative ordering is contractual: Student < Teacher < Admin.
// Zero is deliberately unused so an unset Permission is detectable.
type Permission int

const (
	PermissionStudent Permission = 1
	PermissionTeacher Permission = 2
	PermissionAdmin   Permission = 3
)

// Valid reports whether p is one of the defined levels.
func (p Permission) Valid() bool {
	return p >= PermissionStudent && p <= PermissionAdmin
}

// Max returns the higher of p and other.
func Max(p, other Permission) Permission {
	if other > p {
		return other
	}
	return p
}

func (p Permission) String() string {
	switch p {
	case PermissionStudent:
		return "student"
	case PermissionTeacher:
		return "teacher"
	case PermissionAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
