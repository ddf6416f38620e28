package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"yatube/internal/common"
	"yatube/internal/config"
	userPort "yatube/internal/ports/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionCookie holds the signed session token.
	SessionCookie = "session"
	// UserIDKey is the gin context key of the authenticated user id.
	UserIDKey = "userID"

	LoginURL = "/auth/login/"
)

// SessionResolver validates a session token and loads the user it was issued for.
type SessionResolver interface {
	ParseToken(token string) (string, error)
	GetByID(ctx context.Context, id string) (*userPort.UserDTO, error)
}

// JWTAuthMiddleware attaches the user id to the context when the request
// carries a valid session cookie or bearer token for an existing user.
// Anonymous requests pass through.
func JWTAuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}
		if token != "" {
			if userID, err := sessions.ParseToken(token); err == nil {
				authenticate(c, sessions, userID)
			}
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, sessions SessionResolver, userID string) {
	u, err := sessions.GetByID(c.Request.Context(), userID)
	switch {
	case errors.Is(err, common.ErrNotFound):
		config.Logger.Debug("session for unknown user", zap.String("userID", userID))
	case err != nil:
		config.Logger.Warn("session user lookup failed", zap.String("userID", userID), zap.Error(err))
	default:
		c.Set(UserIDKey, u.ID)
	}
}

// LoginRequired redirects anonymous requests to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == "" {
			next := url.Values{"next": {c.Request.URL.RequestURI()}}
			c.Redirect(http.StatusFound, LoginURL+"?"+next.Encode())
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
