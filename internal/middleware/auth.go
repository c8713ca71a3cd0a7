package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
	"github.com/dasHimanshuSekhar/account-ui/internal/session"
)

// Context keys set by the session gate.
const (
	MobileNumberKey = "mobileNumber"
	IsAdminKey      = "isAdmin"
)

// RequireSession gates a route group on a live session. Every request
// through the gate counts as activity and slides the inactivity window.
// Missing or expired sessions clear the cookie and redirect to the login
// page; expiry carries a notice so the login view can say why.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		s, err := sessions.Resolve(cookie, time.Now())
		if err != nil {
			c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
			target := "/login"
			if errors.Is(err, apperrors.ErrSessionExpired) {
				target = "/login?expired=1"
			}
			c.Redirect(http.StatusSeeOther, target)
			c.Abort()
			return
		}

		c.Set(MobileNumberKey, s.MobileNumber)
		c.Set(IsAdminKey, sessions.IsAdmin(s.MobileNumber))
		c.Next()
	}
}

// MobileNumber extracts the session's mobile number from the Gin context.
// Returns ErrUnauthorized if the gate did not run.
func MobileNumber(c *gin.Context) (string, error) {
	mobile, exists := c.Get(MobileNumberKey)
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return mobile.(string), nil
}

// IsAdmin reports whether the current session holds the admin token.
func IsAdmin(c *gin.Context) bool {
	admin, exists := c.Get(IsAdminKey)
	return exists && admin.(bool)
}
