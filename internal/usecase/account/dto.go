package account

import "github.com/ashleendsilva/food-rescue/internal/domain/user"

// SignupRequest represents the request payload for registering an account.
// The role is chosen by the endpoint variant, never by the payload.
type SignupRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Phone    string `validate:"required"`
	Password string `validate:"required,min=6"`
	Role     user.Role
}

// SignupResponse represents the response payload after registration.
type SignupResponse struct {
	UserID int64
	Role   user.Role
}

// LoginRequest represents the request payload for logging in. Role is
// part of the credential: email and role must both match the stored
// account exactly.
type LoginRequest struct {
	Email    string
	Password string
	Role     string
}

// LoginResponse represents the response payload after a successful login.
type LoginResponse struct {
	UserID int64
	Name   string
	Role   user.Role
}

// StatusResponse represents the identity reported by the session status
// endpoint.
type StatusResponse struct {
	UserID int64
	Name   string
	Role   user.Role
}
