package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionIDKey = "session_id"

// sessionMiddleware issues a uuid session cookie on first visit and exposes the id to handlers.
func sessionMiddleware(cookieName string, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, ok := readSessionCookie(c, cookieName)
		if !ok {
			id = uuid.NewString()
		}
		// refresh on every request so the cookie lives as long as the stored selection
		secure := c.Request.TLS != nil
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, maxAge, "/", "", secure, true)
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func readSessionCookie(c *gin.Context, cookieName string) (string, bool) {
	value, err := c.Cookie(cookieName)
	if err != nil || strings.TrimSpace(value) == "" {
		return "", false
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
