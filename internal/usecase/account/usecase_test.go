package account

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap/zaptest"

	domain "github.com/ashleendsilva/food-rescue/internal/domain/user"
	"github.com/ashleendsilva/food-rescue/pkg/httperr"
	"github.com/ashleendsilva/food-rescue/pkg/security"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) GetByEmailAndRole(ctx context.Context, email string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	return New(mockRepo, zaptest.NewLogger(t)), mockRepo
}

func validSignup(role domain.Role) SignupRequest {
	return SignupRequest{
		Name:     "Cafe A",
		Email:    "a@x.com",
		Phone:    "123",
		Password: "secret1",
		Role:     role,
	}
}

// ==================== SIGNUP TESTS ====================

func TestSignUp_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	req := validSignup(domain.RoleRestaurant)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == req.Name &&
			u.Email == req.Email &&
			u.Phone == req.Phone &&
			u.Role == domain.RoleRestaurant &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			security.CheckPassword(u.PasswordHash, req.Password)
	})).Return(int64(1), nil)

	resp, err := svc.SignUp(ctx, req)

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, domain.RoleRestaurant, resp.Role)

	mockRepo.AssertExpectations(t)
}

func TestSignUp_RoleIsFixedByVariant(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleNGO, domain.RoleRestaurant, domain.RoleCommon} {
		t.Run(string(role), func(t *testing.T) {
			svc, mockRepo := setupTestService(t)
			ctx := context.Background()
			req := validSignup(role)

			mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, nil)
			mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
				return u.Role == role
			})).Return(int64(5), nil)

			resp, err := svc.SignUp(ctx, req)
			assert.NoError(t, err)
			assert.Equal(t, role, resp.Role)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSignUp_MissingFields(t *testing.T) {
	svc, _ := setupTestService(t)

	req := validSignup(domain.RoleNGO)
	req.Phone = ""

	_, err := svc.SignUp(context.Background(), req)

	var ve *httperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "All fields are required!", ve.Message())
}

func TestSignUp_ShortPassword(t *testing.T) {
	svc, _ := setupTestService(t)

	req := validSignup(domain.RoleNGO)
	req.Password = "short"

	_, err := svc.SignUp(context.Background(), req)

	var ve *httperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Password must be at least 6 characters!", ve.Message())
}

func TestSignUp_MissingFieldWinsOverShortPassword(t *testing.T) {
	svc, _ := setupTestService(t)

	req := validSignup(domain.RoleNGO)
	req.Name = ""
	req.Password = "abc"

	_, err := svc.SignUp(context.Background(), req)

	var ve *httperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "All fields are required!", ve.Message())
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	req := validSignup(domain.RoleCommon)

	// The existing account's role does not matter: any role conflicts.
	mockRepo.On("GetByEmail", ctx, req.Email).Return(&domain.User{
		ID:    3,
		Email: req.Email,
		Role:  domain.RoleRestaurant,
	}, nil)

	_, err := svc.SignUp(ctx, req)

	var ce *httperr.ConflictError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, "Email already registered!", ce.Message())
	mockRepo.AssertExpectations(t)
}

func TestSignUp_EmailCheckFails(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	req := validSignup(domain.RoleNGO)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, errors.New("db down"))

	_, err := svc.SignUp(ctx, req)

	var ie *httperr.InternalError
	assert.ErrorAs(t, err, &ie)
	assert.Equal(t, "Registration failed. Please try again.", ie.Message())
}

func TestSignUp_CreateFails(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	req := validSignup(domain.RoleRestaurant)

	mockRepo.On("GetByEmail", ctx, req.Email).Return(nil, nil)
	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), errors.New("unique constraint violation"))

	_, err := svc.SignUp(ctx, req)

	var ie *httperr.InternalError
	assert.ErrorAs(t, err, &ie)
	assert.Equal(t, "Registration failed. Please try again.", ie.Message())
	// The underlying cause stays server-side
	assert.NotContains(t, ie.Message(), "constraint")
}

// ==================== LOGIN TESTS ====================

func storedUser(t *testing.T, role domain.Role, password string) *domain.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	assert.NoError(t, err)
	return &domain.User{
		ID:           7,
		Name:         "Cafe A",
		Email:        "a@x.com",
		Phone:        "123",
		Role:         role,
		PasswordHash: hash,
	}
}

func TestLogin_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	u := storedUser(t, domain.RoleRestaurant, "secret1")

	mockRepo.On("GetByEmailAndRole", ctx, "a@x.com", domain.RoleRestaurant).Return(u, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "secret1", Role: "Restaurant"})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "Cafe A", resp.Name)
	assert.Equal(t, domain.RoleRestaurant, resp.Role)
}

func TestLogin_MissingFields(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "a@x.com", Password: "secret1"})

	var ve *httperr.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email, password, and role are required!", ve.Message())
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	u := storedUser(t, domain.RoleRestaurant, "secret1")

	mockRepo.On("GetByEmailAndRole", ctx, "a@x.com", domain.RoleRestaurant).Return(u, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong", Role: "Restaurant"})

	var ae *httperr.AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid credentials or role mismatch!", ae.Message())
}

func TestLogin_WrongRoleIndistinguishableFromWrongPassword(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	// Correct email and password, but the account is a Restaurant: the
	// role-scoped lookup finds nothing.
	mockRepo.On("GetByEmailAndRole", ctx, "a@x.com", domain.RoleNGO).Return(nil, nil)

	_, errRole := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "secret1", Role: "NGO"})

	u := storedUser(t, domain.RoleRestaurant, "secret1")
	mockRepo.On("GetByEmailAndRole", ctx, "a@x.com", domain.RoleRestaurant).Return(u, nil)

	_, errPassword := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "wrong", Role: "Restaurant"})

	var aeRole, aePassword *httperr.AuthError
	assert.ErrorAs(t, errRole, &aeRole)
	assert.ErrorAs(t, errPassword, &aePassword)
	assert.Equal(t, aePassword.Message(), aeRole.Message())
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmailAndRole", ctx, "nobody@x.com", domain.RoleCommon).Return(nil, nil)

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@x.com", Password: "secret1", Role: "Common"})

	var ae *httperr.AuthError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, "Invalid credentials or role mismatch!", ae.Message())
}

func TestLogin_LookupFails(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByEmailAndRole", ctx, "a@x.com", domain.RoleRestaurant).Return(nil, errors.New("db down"))

	_, err := svc.Login(ctx, LoginRequest{Email: "a@x.com", Password: "secret1", Role: "Restaurant"})

	var ie *httperr.InternalError
	assert.ErrorAs(t, err, &ie)
}

// ==================== STATUS TESTS ====================

func TestStatus_UserExists(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()
	u := storedUser(t, domain.RoleNGO, "secret1")

	mockRepo.On("GetByID", ctx, int64(7)).Return(u, nil)

	resp, err := svc.Status(ctx, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), resp.UserID)
	assert.Equal(t, "Cafe A", resp.Name)
	assert.Equal(t, domain.RoleNGO, resp.Role)
}

func TestStatus_UserGone(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	resp, err := svc.Status(ctx, 99)

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func TestStatus_LookupFails(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(7)).Return(nil, errors.New("db down"))

	_, err := svc.Status(ctx, 7)
	assert.Error(t, err)
}
