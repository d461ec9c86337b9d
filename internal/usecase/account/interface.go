package account

import "context"

// Usecase defines the interface for account business logic operations.
type Usecase interface {
	SignUp(ctx context.Context, in SignupRequest) (*SignupResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
	Status(ctx context.Context, userID int64) (*StatusResponse, error)
}
