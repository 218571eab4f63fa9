package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetProfile(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	UpdateProfile(ctx context.Context, username string, req dto.UpdateUserRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser removes the account. Records owned by the user are kept.
	DeleteUser(ctx context.Context, username string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
