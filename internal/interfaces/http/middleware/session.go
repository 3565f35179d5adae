// internal/interfaces/http/middleware/session.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookieName = "session_id"

// Session attaches a shopper session to every request. The session is
// a plain cookie-scoped UUID: there are no accounts, the ID only keys
// the cart and the in-flight guards.
func Session(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetCookie(sessionCookieName, sessionID, maxAge, "/", "", false, true)
		}

		c.Set("session_id", sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID attached to the request
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get("session_id"); exists {
		if id, ok := sessionID.(string); ok {
			return id
		}
	}
	return ""
}
