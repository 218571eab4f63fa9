package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/google/uuid"
)

// BaseService provides common functionality for all services
type BaseService struct {
	newID func() string
	now   func() time.Time
}

func newBaseService(options ...ServiceOption) BaseService {
	b := BaseService{newID: uuid.NewString, now: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

// ServiceOption is a functional option shared by every service constructor.
type ServiceOption func(*BaseService)

// WithIDGenerator replaces the uuid generator used for new record ids.
func WithIDGenerator(fn func() string) ServiceOption {
	return func(b *BaseService) {
		b.newID = fn
	}
}

// WithClock replaces time.Now.
func WithClock(fn func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.now = fn
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// requireUser fails with ErrUnauthorized when no identity was supplied.
func requireUser(username string) error {
	if username == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}
