package services

import (
	"context"
	"time"
)

// TokenService issues and checks bearer tokens whose subject is a username.
type TokenService interface {
	GenerateToken(username string) (string, time.Duration, error)
	ValidateToken(token string) (string, error)
}

// IdentityProvider supplies the username of the caller.
type IdentityProvider interface {
	// LoggedInUser returns apperrors.ErrUnauthorized when no identity is active.
	LoggedInUser(ctx context.Context) (string, error)
}
