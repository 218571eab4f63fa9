package middleware

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// usernameKey holds the authenticated username in the request context.
const usernameKey = contextKey("username")

// GetUsernameFromContext retrieves the authenticated username from the Gin context.
func GetUsernameFromContext(c *gin.Context) (string, bool) {
	return usernameFromCtx(c.Request.Context())
}

func usernameFromCtx(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// WithUsername stores username in ctx the way AuthMiddleware does.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// RequestIdentity resolves the logged-in user from a request context.
type RequestIdentity struct{}

// LoggedInUser returns the username or apperrors.ErrUnauthorized.
func (RequestIdentity) LoggedInUser(ctx context.Context) (string, error) {
	if username, ok := usernameFromCtx(ctx); ok {
		return username, nil
	}
	return "", apperrors.ErrUnauthorized
}
