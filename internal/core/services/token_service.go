package services

import (
	"errors"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/utils"
)

// tokenService issues HS256 access tokens whose subject is the username.
type tokenService struct {
	secret string
	expiry time.Duration
	issuer string
}

// NewTokenService creates a token service from the JWT settings in cfg.
func NewTokenService(cfg *config.Config) portssvc.TokenService {
	return &tokenService{
		secret: cfg.JWTSecret,
		expiry: cfg.JWTExpiryDuration,
		issuer: cfg.JWTIssuer,
	}
}

var _ portssvc.TokenService = (*tokenService)(nil)

func (s *tokenService) GenerateToken(username string) (string, time.Duration, error) {
	if username == "" {
		return "", 0, errors.New("cannot issue a token without a username")
	}
	token, err := utils.GenerateJWT(username, s.secret, s.expiry, s.issuer)
	if err != nil {
		return "", 0, err
	}
	return token, s.expiry, nil
}

func (s *tokenService) ValidateToken(token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}
