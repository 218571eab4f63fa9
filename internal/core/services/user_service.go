package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
	"golang.org/x/crypto/bcrypt"
)

// userService implements portssvc.UserSvcFacade over the users collection.
type userService struct {
	BaseService
	keeper          *RecordKeeper
	hashCost        int
	defaultCurrency string
}

// UserServiceOption configures the user service.
type UserServiceOption func(*userService)

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) UserServiceOption {
	return func(s *userService) {
		s.hashCost = cost
	}
}

// WithDefaultCurrency sets the currency given to users who register without one.
func WithDefaultCurrency(currency string) UserServiceOption {
	return func(s *userService) {
		if c := domain.NormalizeCurrency(currency); domain.ValidCurrency(c) {
			s.defaultCurrency = c
		}
	}
}

// WithUserBaseOptions applies shared service options.
func WithUserBaseOptions(options ...ServiceOption) UserServiceOption {
	return func(s *userService) {
		for _, option := range options {
			option(&s.BaseService)
		}
	}
}

// NewUserService creates the user service.
func NewUserService(keeper *RecordKeeper, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{
		BaseService:     newBaseService(),
		keeper:          keeper,
		hashCost:        bcrypt.DefaultCost,
		defaultCurrency: domain.DefaultCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func findUser(records []domain.Record, username string) int {
	for i, r := range records {
		if r.Key(domain.KindUsers) == username {
			return i
		}
	}
	return -1
}

func userNotFound(username string) error {
	return fmt.Errorf("user %q: %w", username, apperrors.ErrNotFound)
}

func (s *userService) Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	req.Currency = domain.NormalizeCurrency(req.Currency)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	hash, err := utils.HashPasswordWithCost(req.Password, s.hashCost)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		UserID:       s.newID(),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hash,
		Currency:     req.Currency,
	}
	if user.Currency == "" {
		user.Currency = s.defaultCurrency
	}

	err = s.keeper.Mutate(ctx, domain.KindUsers, func(records []domain.Record) ([]domain.Record, error) {
		if findUser(records, user.Username) >= 0 {
			return nil, fmt.Errorf("username %q: %w", user.Username, apperrors.ErrDuplicate)
		}
		return append(records, user.ToRecord()), nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.String("username", user.Username))
	return &user, nil
}

// Authenticate returns ErrUnauthorized for both an unknown user and a wrong
// password.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	records, err := s.keeper.Read(ctx, domain.KindUsers)
	if err != nil {
		return nil, err
	}
	i := findUser(records, username)
	if i < 0 {
		s.LogWarn(ctx, "Login for unknown user", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}
	user := domain.UserFromRecord(records[i])
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.String("username", username))
		return nil, apperrors.ErrUnauthorized
	}
	return &user, nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindUsers)
	if err != nil {
		return nil, err
	}
	i := findUser(records, username)
	if i < 0 {
		return nil, userNotFound(username)
	}
	user := domain.UserFromRecord(records[i])
	return &user, nil
}

// UpdateProfile changes the full name and currency. Blank fields keep their
// value; any invalid field rejects the whole update.
func (s *userService) UpdateProfile(ctx context.Context, username string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	var verrs apperrors.ValidationErrors
	fullName, setName := provided(req.FullName)
	if setName && !validation.FullName(fullName) {
		verrs.Add("fullName", "must be 2 to 50 letters or spaces")
	}
	currency, setCurrency := provided(req.Currency)
	currency = domain.NormalizeCurrency(currency)
	if setCurrency && !domain.ValidCurrency(currency) {
		verrs.Add("currency", "must be a three letter currency code")
	}
	if err := verrs.OrNil(); err != nil {
		return nil, err
	}

	var user domain.User
	err := s.keeper.Mutate(ctx, domain.KindUsers, func(records []domain.Record) ([]domain.Record, error) {
		i := findUser(records, username)
		if i < 0 {
			return nil, userNotFound(username)
		}
		user = domain.UserFromRecord(records[i])
		if setName {
			user.FullName = fullName
		}
		if setCurrency {
			user.Currency = currency
		}
		return replaceAt(records, i, user.ToRecord()), nil
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Profile updated", slog.String("username", username))
	return &user, nil
}

func (s *userService) ChangePassword(ctx context.Context, username string, req dto.ChangePasswordRequest) error {
	if err := requireUser(username); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	hash, err := utils.HashPasswordWithCost(req.NewPassword, s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	err = s.keeper.Mutate(ctx, domain.KindUsers, func(records []domain.Record) ([]domain.Record, error) {
		i := findUser(records, username)
		if i < 0 {
			return nil, userNotFound(username)
		}
		user := domain.UserFromRecord(records[i])
		if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
			return nil, apperrors.ErrUnauthorized
		}
		user.PasswordHash = hash
		return replaceAt(records, i, user.ToRecord()), nil
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Password changed", slog.String("username", username))
	return nil
}

// DeleteUser removes the account only. Transactions, goals and reminders
// that reference the username stay in place.
func (s *userService) DeleteUser(ctx context.Context, username string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	err := s.keeper.Mutate(ctx, domain.KindUsers, func(records []domain.Record) ([]domain.Record, error) {
		i := findUser(records, username)
		if i < 0 {
			return nil, userNotFound(username)
		}
		return removeAt(records, i), nil
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("username", username))
	return nil
}
