package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashleendsilva/food-rescue/internal/adapter/session"
)

// identityKey is the gin context key under which the session identity is
// stored for the duration of a request.
const identityKey = "session_identity"

// SessionConfig holds the cookie parameters for the session manager.
type SessionConfig struct {
	CookieName string
	MaxAge     int // seconds; also the server-side session TTL
	Secure     bool
}

// SessionManager injects the authenticated identity from the session
// store into each request, and establishes or clears sessions on behalf
// of the handlers.
type SessionManager struct {
	store session.Store
	cfg   SessionConfig
	log   *zap.Logger
}

// NewSessionManager creates a SessionManager on the given store.
func NewSessionManager(store session.Store, cfg SessionConfig, log *zap.Logger) *SessionManager {
	return &SessionManager{store: store, cfg: cfg, log: log}
}

// Middleware resolves the session cookie to an identity and attaches it
// to the request context. Requests without a valid session pass through
// anonymously; each handler decides whether that is acceptable.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		ident, err := m.store.Get(c.Request.Context(), token)
		if err != nil {
			// Treat a session-store failure as an anonymous request
			// rather than failing everything behind the middleware.
			m.log.Warn("session lookup failed", zap.Error(err))
			c.Next()
			return
		}
		if ident != nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

// Establish creates a new session for the identity and sets the cookie.
func (m *SessionManager) Establish(c *gin.Context, ident session.Identity) error {
	token, err := m.store.Create(c.Request.Context(), ident)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, token, m.cfg.MaxAge, "/", "", m.cfg.Secure, true)
	return nil
}

// Clear removes the server-side session state and expires the cookie.
// It always succeeds from the caller's point of view.
func (m *SessionManager) Clear(c *gin.Context) {
	if token, err := c.Cookie(m.cfg.CookieName); err == nil && token != "" {
		if err := m.store.Delete(c.Request.Context(), token); err != nil {
			m.log.Warn("failed to delete session state", zap.Error(err))
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cfg.CookieName, "", -1, "/", "", m.cfg.Secure, true)
}

// IdentityFromContext returns the session identity attached by the
// middleware, or nil for an anonymous request.
func IdentityFromContext(c *gin.Context) *session.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, ok := v.(*session.Identity)
	if !ok {
		return nil
	}
	return ident
}
