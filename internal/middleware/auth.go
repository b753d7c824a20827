package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mikhailsoldatkin/yatube-social/internal/service"
	"github.com/mikhailsoldatkin/yatube-social/internal/util"
)

// AuthCookieName is the session cookie set at login.
const AuthCookieName = "auth_token"

// LoginPath is where anonymous callers of protected routes are sent.
const LoginPath = "/auth/login/"

// extractToken reads the session token from the Authorization header or,
// failing that, the session cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// RequireAuth guards write endpoints and the personalized feed. An
// anonymous or invalid caller is redirected to the login page with the
// original path preserved in the next parameter.
func RequireAuth(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			redirectToLogin(c)
			return
		}

		if userService.IsTokenBlacklisted(token) {
			redirectToLogin(c)
			return
		}

		userID, err := util.ValidateToken(token)
		if err != nil {
			util.Logger.Debug("rejected token", zap.Error(err), zap.String("path", c.Request.URL.Path))
			redirectToLogin(c)
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when a valid token is present but lets
// anonymous requests through. Read-only feeds use it to personalize
// follow state without requiring login.
func OptionalAuth(userService service.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token != "" && !userService.IsTokenBlacklisted(token) {
			if userID, err := util.ValidateToken(token); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	next := c.Request.URL.Path
	c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(next))
	c.Abort()
}
