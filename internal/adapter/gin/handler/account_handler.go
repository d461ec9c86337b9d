package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/internal/adapter/gin/middleware"
	"github.com/ashleendsilva/food-rescue/internal/adapter/session"
	"github.com/ashleendsilva/food-rescue/internal/domain/user"
	"github.com/ashleendsilva/food-rescue/internal/usecase/account"
)

// AccountHandler handles registration, login, logout and session status.
type AccountHandler struct {
	uc       account.Usecase
	sessions *middleware.SessionManager
	log      *zap.Logger
}

// NewAccountHandler creates a new AccountHandler instance.
func NewAccountHandler(uc account.Usecase, sessions *middleware.SessionManager, log *zap.Logger) *AccountHandler {
	return &AccountHandler{uc: uc, sessions: sessions, log: log}
}

// signupMessage is the role-specific registration success message.
func signupMessage(role user.Role) string {
	switch role {
	case user.RoleNGO:
		return "NGO registered successfully!"
	case user.RoleRestaurant:
		return "Restaurant registered successfully!"
	default:
		return "Registration completed successfully!"
	}
}

// SignupRoot handles POST /signup. It dispatches on the payload's role
// field; an unknown role is rejected before any account logic runs.
func (h *AccountHandler) SignupRoot(c *gin.Context) {
	p, err := ParsePayload(c)
	if err != nil {
		respondBadBody(c, h.log, err)
		return
	}

	role, ok := user.ParseRole(p.Get("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Please provide a valid role (ngo|restaurant|common)",
		})
		return
	}

	h.signup(c, p, role)
}

// SignupNGO handles POST /signup/ngo.
func (h *AccountHandler) SignupNGO(c *gin.Context) {
	h.signupVariant(c, user.RoleNGO)
}

// SignupRestaurant handles POST /signup/restaurant.
func (h *AccountHandler) SignupRestaurant(c *gin.Context) {
	h.signupVariant(c, user.RoleRestaurant)
}

// SignupCommon handles POST /signup/common.
func (h *AccountHandler) SignupCommon(c *gin.Context) {
	h.signupVariant(c, user.RoleCommon)
}

func (h *AccountHandler) signupVariant(c *gin.Context, role user.Role) {
	p, err := ParsePayload(c)
	if err != nil {
		respondBadBody(c, h.log, err)
		return
	}
	h.signup(c, p, role)
}

func (h *AccountHandler) signup(c *gin.Context, p Payload, role user.Role) {
	resp, err := h.uc.SignUp(c.Request.Context(), account.SignupRequest{
		Name:     p.Get("name"),
		Email:    p.Get("email"),
		Phone:    p.Get("phone"),
		Password: p.Get("password"),
		Role:     role,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	// The account exists either way; a session-store failure must not
	// turn a committed registration into an error response.
	if err := h.sessions.Establish(c, session.Identity{UserID: resp.UserID, Role: resp.Role}); err != nil {
		h.log.Error("failed to establish session after signup", zap.Int64("user_id", resp.UserID), zap.Error(err))
	}

	respondOK(c, signupMessage(resp.Role), gin.H{"user_id": resp.UserID})
}

// Login handles POST /login.
func (h *AccountHandler) Login(c *gin.Context) {
	p, err := ParsePayload(c)
	if err != nil {
		respondBadBody(c, h.log, err)
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), account.LoginRequest{
		Email:    p.Get("email"),
		Password: p.Get("password"),
		Role:     p.Get("role"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.sessions.Establish(c, session.Identity{UserID: resp.UserID, Role: resp.Role}); err != nil {
		h.log.Error("failed to establish session after login", zap.Int64("user_id", resp.UserID), zap.Error(err))
		respondError(c, h.log, err)
		return
	}

	respondOK(c, fmt.Sprintf("Welcome back, %s!", resp.Name), gin.H{
		"user_id":   resp.UserID,
		"user_role": resp.Role,
	})
}

// Logout handles POST /logout. It always succeeds.
func (h *AccountHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	respondOK(c, "Logged out successfully!", nil)
}

// Status handles GET /status. It reports logged_in=false for anonymous
// requests and for sessions whose user no longer exists; it never errors.
func (h *AccountHandler) Status(c *gin.Context) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		respondOK(c, "", gin.H{"logged_in": false})
		return
	}

	resp, err := h.uc.Status(c.Request.Context(), ident.UserID)
	if err != nil || resp == nil {
		respondOK(c, "", gin.H{"logged_in": false})
		return
	}

	respondOK(c, "", gin.H{
		"logged_in": true,
		"user_id":   resp.UserID,
		"user_name": resp.Name,
		"user_role": resp.Role,
	})
}
