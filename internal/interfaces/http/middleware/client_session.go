// internal/interfaces/http/middleware/client_session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/ticketing-storefront/internal/config"
	"github.com/your-org/ticketing-storefront/internal/domain/session"
	"github.com/your-org/ticketing-storefront/internal/pkg/guard"
)

const (
	clientIDKey = "client_id"
	sessionKey  = "client_session"
)

// ClientSession identifies the browser behind each request. A first-time
// visitor gets a fresh opaque id in a cookie; on every request the client's
// session is restored from the session store and stashed in the gin context
// for handlers downstream.
func ClientSession(cfg *config.Config, sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || clientID == "" {
			clientID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				cfg.Session.CookieName,
				clientID,
				int(cfg.Session.TTL.Seconds()),
				"/",
				"",
				cfg.Session.CookieSecure,
				true,
			)
		}

		c.Set(clientIDKey, clientID)
		if sess := sessions.Current(c.Request.Context(), clientID); sess != nil {
			c.Set(sessionKey, sess)
		}

		c.Next()
	}
}

// RequireAuth blocks anonymous requests. The response carries the redirect
// target the frontend should navigate to, with the original path preserved
// so the flow can resume after login.
func RequireAuth() gin.HandlerFunc {
	return requireRole("")
}

// RequireRole blocks requests whose session does not satisfy the role
func RequireRole(role session.Role) gin.HandlerFunc {
	return requireRole(role)
}

func requireRole(role session.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)

		decision := guard.Decide(sess, role, c.Request.URL.Path)
		if decision.Verdict == guard.Allow {
			c.Next()
			return
		}

		status := http.StatusUnauthorized
		message := "Authentication required"
		if sess != nil {
			status = http.StatusForbidden
			message = "Insufficient permissions"
		}

		c.JSON(status, gin.H{
			"error":    message,
			"redirect": decision.Target,
		})
		c.Abort()
	}
}

// GetClientID returns the client id assigned by ClientSession
func GetClientID(c *gin.Context) string {
	return c.GetString(clientIDKey)
}

// GetSession returns the restored session, or nil for anonymous clients
func GetSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
