package account

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "github.com/ashleendsilva/food-rescue/internal/domain/user"
	"github.com/ashleendsilva/food-rescue/pkg/httperr"
	"github.com/ashleendsilva/food-rescue/pkg/security"
)

// Repository defines the interface for user data access operations.
// Lookup methods return (nil, nil) when no matching row exists; an error
// always means the store itself failed.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error)
}

// Service implements the business logic for registration, login and
// session status checks.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new account Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// signupValidationError maps validator failures onto the fixed
// registration messages. Missing fields always win over a short password.
func signupValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return httperr.NewValidationError("All fields are required!")
	}
	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return httperr.NewValidationError("All fields are required!")
		}
	}
	return httperr.NewValidationError("Password must be at least 6 characters!")
}

// SignUp registers a new account with the role fixed by the caller.
func (s *Service) SignUp(ctx context.Context, in SignupRequest) (*SignupResponse, error) {
	s.log.Info("registering account", zap.String("email", in.Email), zap.String("role", string(in.Role)))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("signup validation failed", zap.String("email", in.Email), zap.Error(err))
		return nil, signupValidationError(err)
	}

	// Best-effort pre-check; the unique index on email is the real guard.
	existing, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, httperr.NewInternalError("Registration failed. Please try again.", err)
	}
	if existing != nil {
		s.log.Warn("email already registered", zap.String("email", in.Email))
		return nil, httperr.NewConflictError("Email already registered!")
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		s.log.Error("failed to hash password", zap.Error(err))
		return nil, httperr.NewInternalError("Registration failed. Please try again.", err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: hash,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.String("email", in.Email), zap.Error(err))
		return nil, httperr.NewInternalError("Registration failed. Please try again.", err)
	}

	s.log.Info("account registered", zap.Int64("user_id", id), zap.String("role", string(in.Role)))
	return &SignupResponse{UserID: id, Role: in.Role}, nil
}

// Login authenticates an account by email, role and password. A wrong
// role fails with the same message as a wrong password so the caller
// cannot tell which part mismatched.
func (s *Service) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, httperr.NewValidationError("Email, password, and role are required!")
	}

	u, err := s.repo.GetByEmailAndRole(ctx, in.Email, domain.Role(in.Role))
	if err != nil {
		s.log.Error("failed to look up user for login", zap.String("email", in.Email), zap.Error(err))
		return nil, httperr.NewInternalError("Login failed. Please try again.", err)
	}

	if u == nil || !security.CheckPassword(u.PasswordHash, in.Password) {
		s.log.Warn("login rejected", zap.String("email", in.Email), zap.String("role", in.Role))
		return nil, httperr.NewAuthError("Invalid credentials or role mismatch!")
	}

	s.log.Info("login succeeded", zap.Int64("user_id", u.ID), zap.String("role", string(u.Role)))
	return &LoginResponse{UserID: u.ID, Name: u.Name, Role: u.Role}, nil
}

// Status resolves a session's user id against the store. It returns
// (nil, nil) when the user no longer exists, so a stale session reads
// as logged out rather than as an error.
func (s *Service) Status(ctx context.Context, userID int64) (*StatusResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		s.log.Error("failed to resolve session user", zap.Int64("user_id", userID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return &StatusResponse{UserID: u.ID, Name: u.Name, Role: u.Role}, nil
}
