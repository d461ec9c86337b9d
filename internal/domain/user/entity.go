package user

import "strings"

// Role is the account category fixed at registration. It controls which
// endpoints an account may use and never changes afterwards.
type Role string

const (
	RoleNGO        Role = "NGO"
	RoleRestaurant Role = "Restaurant"
	RoleCommon     Role = "Common"
)

// ParseRole maps a request-supplied role string onto a known Role.
// Matching is case-insensitive; the second return value reports whether
// the input named a valid role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ngo":
		return RoleNGO, true
	case "restaurant":
		return RoleRestaurant, true
	case "common":
		return RoleCommon, true
	}
	return "", false
}

// User represents one registered account.
type User struct {
	ID           int64  // ID is the unique identifier for the user
	Name         string // Name is the display name of the account
	Email        string // Email is the unique email address of the user
	Phone        string // Phone is the contact phone number
	Role         Role   // Role is fixed at registration
	PasswordHash string // PasswordHash is the bcrypt hash, never exposed
}
