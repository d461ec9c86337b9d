package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
	"github.com/ashleendsilva/food-rescue/internal/adapter/session"
	"github.com/ashleendsilva/food-rescue/internal/domain/user"
	"github.com/ashleendsilva/food-rescue/internal/usecase/account"
	"github.com/ashleendsilva/food-rescue/pkg/httperr"
)

// MockAccountUsecase is a mock implementation of the account Usecase interface
type MockAccountUsecase struct {
	mock.Mock
}

func (m *MockAccountUsecase) SignUp(ctx context.Context, in account.SignupRequest) (*account.SignupResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.SignupResponse), args.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, in account.LoginRequest) (*account.LoginResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.LoginResponse), args.Error(1)
}

func (m *MockAccountUsecase) Status(ctx context.Context, userID int64) (*account.StatusResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.StatusResponse), args.Error(1)
}

// newTestSessions backs the session manager with a real store on an
// in-process Redis.
func newTestSessions(t *testing.T) (*middleware.SessionManager, session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewRedisStore(client, time.Hour, zaptest.NewLogger(t))
	mgr := middleware.NewSessionManager(store, middleware.SessionConfig{
		CookieName: "session_id",
		MaxAge:     3600,
	}, zaptest.NewLogger(t))
	return mgr, store
}

func setupAccountTest(t *testing.T) (*gin.Engine, *MockAccountUsecase, session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockUC := new(MockAccountUsecase)
	sessions, store := newTestSessions(t)
	h := NewAccountHandler(mockUC, sessions, zaptest.NewLogger(t))

	r := gin.New()
	r.Use(sessions.Middleware())
	r.POST("/signup", h.SignupRoot)
	r.POST("/signup/ngo", h.SignupNGO)
	r.POST("/signup/restaurant", h.SignupRestaurant)
	r.POST("/signup/common", h.SignupCommon)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.GET("/status", h.Status)
	return r, mockUC, store
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session_id" {
			return ck
		}
	}
	return nil
}

func TestSignupVariant_Success(t *testing.T) {
	r, mockUC, store := setupAccountTest(t)

	mockUC.On("SignUp", mock.Anything, account.SignupRequest{
		Name:     "Helpers",
		Email:    "h@x.com",
		Phone:    "123",
		Password: "secret1",
		Role:     user.RoleNGO,
	}).Return(&account.SignupResponse{UserID: 1, Role: user.RoleNGO}, nil)

	w := postJSON(t, r, "/signup/ngo", gin.H{
		"name": "Helpers", "email": "h@x.com", "phone": "123", "password": "secret1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "NGO registered successfully!", body["message"])
	assert.Equal(t, float64(1), body["user_id"])

	// Registration logs the account in: the cookie must resolve to the
	// new identity server-side.
	ck := sessionCookie(t, w)
	require.NotNil(t, ck)
	ident, err := store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, int64(1), ident.UserID)
	assert.Equal(t, user.RoleNGO, ident.Role)

	mockUC.AssertExpectations(t)
}

func TestSignupVariant_RoleComesFromPath(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("SignUp", mock.Anything, mock.MatchedBy(func(in account.SignupRequest) bool {
		return in.Role == user.RoleRestaurant
	})).Return(&account.SignupResponse{UserID: 2, Role: user.RoleRestaurant}, nil)

	// A role key in the payload does not override the endpoint variant.
	w := postJSON(t, r, "/signup/restaurant", gin.H{
		"name": "Cafe A", "email": "a@x.com", "phone": "123",
		"password": "secret1", "role": "NGO",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Restaurant registered successfully!", decodeBody(t, w)["message"])
	mockUC.AssertExpectations(t)
}

func TestSignupRoot_DispatchesOnRole(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("SignUp", mock.Anything, mock.MatchedBy(func(in account.SignupRequest) bool {
		return in.Role == user.RoleCommon
	})).Return(&account.SignupResponse{UserID: 3, Role: user.RoleCommon}, nil)

	// Role matching is case-insensitive.
	w := postJSON(t, r, "/signup", gin.H{
		"name": "Sam", "email": "s@x.com", "phone": "123",
		"password": "secret1", "role": "common",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Registration completed successfully!", decodeBody(t, w)["message"])
	mockUC.AssertExpectations(t)
}

func TestSignupRoot_InvalidRole(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	w := postJSON(t, r, "/signup", gin.H{
		"name": "Sam", "email": "s@x.com", "phone": "123",
		"password": "secret1", "role": "admin",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Please provide a valid role (ngo|restaurant|common)", body["message"])
	mockUC.AssertNotCalled(t, "SignUp")
}

func TestSignup_FormEncodedBody(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("SignUp", mock.Anything, account.SignupRequest{
		Name:     "Helpers",
		Email:    "h@x.com",
		Phone:    "123",
		Password: "secret1",
		Role:     user.RoleNGO,
	}).Return(&account.SignupResponse{UserID: 1, Role: user.RoleNGO}, nil)

	form := "name=Helpers&email=h%40x.com&phone=123&password=secret1"
	req := httptest.NewRequest(http.MethodPost, "/signup/ngo", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, httperr.NewConflictError("Email already registered!"))

	w := postJSON(t, r, "/signup/ngo", gin.H{
		"name": "Helpers", "email": "h@x.com", "phone": "123", "password": "secret1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Email already registered!", body["message"])
	assert.Nil(t, sessionCookie(t, w))
}

func TestSignup_InvalidJSONBody(t *testing.T) {
	r, _, _ := setupAccountTest(t)

	req := httptest.NewRequest(http.MethodPost, "/signup/ngo", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, w)["message"])
}

func TestLogin_Success(t *testing.T) {
	r, mockUC, store := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, account.LoginRequest{
		Email: "a@x.com", Password: "secret1", Role: "Restaurant",
	}).Return(&account.LoginResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)

	w := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "secret1", "role": "Restaurant",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Welcome back, Cafe A!", body["message"])
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, "Restaurant", body["user_role"])

	ck := sessionCookie(t, w)
	require.NotNil(t, ck)
	ident, err := store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, int64(7), ident.UserID)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, httperr.NewAuthError("Invalid credentials or role mismatch!"))

	w := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "wrong", "role": "Restaurant",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "Invalid credentials or role mismatch!", body["message"])
	assert.Nil(t, sessionCookie(t, w))
}

func TestLogout_ClearsSession(t *testing.T) {
	r, mockUC, store := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, mock.Anything).
		Return(&account.LoginResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)

	login := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "secret1", "role": "Restaurant",
	})
	ck := sessionCookie(t, login)
	require.NotNil(t, ck)

	w := postJSON(t, r, "/logout", gin.H{}, ck)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully!", decodeBody(t, w)["message"])

	// Server-side state is gone and the cookie is expired.
	ident, err := store.Get(context.Background(), ck.Value)
	require.NoError(t, err)
	assert.Nil(t, ident)

	cleared := sessionCookie(t, w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Less(t, cleared.MaxAge, 0)
}

func TestLogout_WithoutSession(t *testing.T) {
	r, _, _ := setupAccountTest(t)

	w := postJSON(t, r, "/logout", gin.H{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully!", decodeBody(t, w)["message"])
}

func TestStatus_Anonymous(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["logged_in"])
	assert.NotContains(t, body, "user_id")
	mockUC.AssertNotCalled(t, "Status")
}

func TestStatus_LoggedIn(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, mock.Anything).
		Return(&account.LoginResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)
	mockUC.On("Status", mock.Anything, int64(7)).
		Return(&account.StatusResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)

	login := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "secret1", "role": "Restaurant",
	})
	ck := sessionCookie(t, login)
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["logged_in"])
	assert.Equal(t, float64(7), body["user_id"])
	assert.Equal(t, "Cafe A", body["user_name"])
	assert.Equal(t, "Restaurant", body["user_role"])
}

func TestStatus_StaleSessionReadsAsLoggedOut(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, mock.Anything).
		Return(&account.LoginResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)
	// The account behind the session has been removed.
	mockUC.On("Status", mock.Anything, int64(7)).Return(nil, nil)

	login := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "secret1", "role": "Restaurant",
	})
	ck := sessionCookie(t, login)
	require.NotNil(t, ck)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["logged_in"])
}

func TestStatus_AfterLogout(t *testing.T) {
	r, mockUC, _ := setupAccountTest(t)

	mockUC.On("Login", mock.Anything, mock.Anything).
		Return(&account.LoginResponse{UserID: 7, Name: "Cafe A", Role: user.RoleRestaurant}, nil)

	login := postJSON(t, r, "/login", gin.H{
		"email": "a@x.com", "password": "secret1", "role": "Restaurant",
	})
	ck := sessionCookie(t, login)
	require.NotNil(t, ck)

	postJSON(t, r, "/logout", gin.H{}, ck)

	// The old cookie no longer resolves to anything.
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["logged_in"])
	mockUC.AssertNotCalled(t, "Status")
}
