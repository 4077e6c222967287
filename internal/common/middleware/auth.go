package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"channel-stats-backend/internal/common/errors"
	"channel-stats-backend/internal/features/auth/service"
)

// SessionAuth resolves the session cookie into a login and injects it into
// the request context. The dashboard historically passes ?login= on every
// call; when present it must match the session owner.
func SessionAuth(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: session cookie required"})
			return
		}

		login, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			// Инфраструктурная ошибка — не повод разлогинивать.
			if appErr, ok := errors.AsAppError(err); ok && !appErr.IsUnauthorized() {
				HandleError(c, err)
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: session expired"})
			return
		}

		if q := c.Query("login"); q != "" && q != login {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "login does not match session"})
			return
		}

		c.Set("login", login)
		c.Next()
	}
}

// GetLogin returns the login set by SessionAuth.
func GetLogin(c *gin.Context) string {
	if v, exists := c.Get("login"); exists {
		if login, ok := v.(string); ok {
			return login
		}
	}
	return ""
}
