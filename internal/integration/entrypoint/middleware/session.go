package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
	"github.com/anbu-gynaecare/webapp/internal/integration/entrypoint/dto"
)

// touchInterval bounds how often an active session's updated_at is bumped.
const touchInterval = time.Hour

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	Secure     bool
	MaxAge     time.Duration
}

// SessionMiddleware binds every request to a browser session, creating one
// and setting its cookie when the request carries none or an unknown one.
type SessionMiddleware struct {
	sessions adapter.SessionRepository
	opts     SessionOptions
	now      func() time.Time
}

// NewSessionMiddleware creates a new session middleware instance.
func NewSessionMiddleware(sessions adapter.SessionRepository, opts SessionOptions) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		opts:     opts,
		now:      time.Now,
	}
}

// Handle returns a Gin middleware handler that puts the session ID into
// the request context.
func (m *SessionMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqCtx := c.Request.Context()

		session, err := m.lookup(c)
		if err != nil {
			slog.ErrorContext(reqCtx, "Failed to load session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Error: domainerror.MsgServerError,
				Code:  string(domainerror.ErrCodeServer),
			})
			return
		}

		if session == nil {
			session = entity.NewSession()
			if err := m.sessions.Create(reqCtx, session); err != nil {
				slog.ErrorContext(reqCtx, "Failed to create session", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Error: domainerror.MsgServerError,
					Code:  string(domainerror.ErrCodeServer),
				})
				return
			}
			m.setCookie(c, session.ID)
		} else if m.now().Sub(session.UpdatedAt) > touchInterval {
			session.UpdatedAt = m.now().UTC()
			if err := m.sessions.Update(reqCtx, session); err != nil {
				slog.WarnContext(reqCtx, "Failed to touch session", "session_id", session.ID, "error", err)
			}
		}

		c.Request = c.Request.WithContext(adapter.WithSessionID(reqCtx, session.ID))
		c.Next()
	}
}

// lookup returns the stored session named by the cookie, or nil when there
// is no usable cookie.
func (m *SessionMiddleware) lookup(c *gin.Context) (*entity.Session, error) {
	raw, err := c.Cookie(m.opts.CookieName)
	if err != nil || raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}

	session, err := m.sessions.FindByID(c.Request.Context(), id)
	if errors.Is(err, domainerror.ErrSessionNotFound) {
		return nil, nil
	}
	return session, err
}

func (m *SessionMiddleware) setCookie(c *gin.Context, id uuid.UUID) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, id.String(), int(m.opts.MaxAge.Seconds()), "/", "", m.opts.Secure, true)
}

// AuthChecker checks that the request's session is signed in.
type AuthChecker interface {
	Authenticate(ctx context.Context) error
}

// RequireAuth rejects requests whose session holds no valid access token.
func RequireAuth(auth AuthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.Authenticate(c.Request.Context())
		if err == nil {
			c.Next()
			return
		}

		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: domainerror.MsgSessionExpired,
				Code:  string(authErr.Code),
			})
			return
		}
		slog.ErrorContext(c.Request.Context(), "auth check failed", "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: domainerror.MsgServerError,
			Code:  string(domainerror.ErrCodeServer),
		})
	}
}
