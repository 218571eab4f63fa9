package handlers_test

import (
	"net/http"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (s *HandlersTestSuite) TestRegister() {
	req := dto.CreateUserRequest{Username: "bob", Password: "Secret123", FullName: "Bob Stone"}
	s.users.On("Register", mock.Anything, req).Return(&domain.User{UserID: "u-1", Username: "bob", FullName: "Bob Stone"}, nil).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/register", req)

	s.Equal(http.StatusCreated, w.Code)
	var got dto.UserResponse
	s.decode(w, &got)
	s.Equal("bob", got.Username)
	s.Equal("USD", got.Currency)
	s.NotContains(w.Body.String(), "password")
}

func (s *HandlersTestSuite) TestRegister_Duplicate() {
	s.users.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/register", dto.CreateUserRequest{Username: "bob"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestLogin_IssuesUsableToken() {
	s.users.On("Authenticate", mock.Anything, "bob", "Secret123").Return(&domain.User{Username: "bob"}, nil).Once()
	s.users.On("GetProfile", mock.Anything, "bob").Return(&domain.User{Username: "bob", Currency: "EUR"}, nil).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "bob", Password: "Secret123"})

	s.Require().Equal(http.StatusOK, w.Code)
	var login dto.LoginResponse
	s.decode(w, &login)
	s.NotEmpty(login.Token)
	s.EqualValues(3600, login.ExpiresIn)

	me := s.doAs(login.Token, http.MethodGet, "/api/v1/users/me", nil)
	s.Equal(http.StatusOK, me.Code)
	s.Contains(me.Body.String(), `"currency":"EUR"`)
}

func (s *HandlersTestSuite) TestLogin_WrongPassword() {
	s.users.On("Authenticate", mock.Anything, "bob", "nope").Return(nil, apperrors.ErrUnauthorized).Once()

	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "bob", Password: "nope"})

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestLogin_MissingFields() {
	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", `{"username":"bob"}`)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestLogin_RateLimited() {
	s.users.On("Authenticate", mock.Anything, "bob", "nope").Return(nil, apperrors.ErrUnauthorized).Times(5)

	for i := 0; i < 5; i++ {
		w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "bob", Password: "nope"})
		s.Equal(http.StatusUnauthorized, w.Code)
	}
	w := s.doAs("", http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Username: "bob", Password: "nope"})

	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *HandlersTestSuite) TestUpdateProfile() {
	req := dto.UpdateUserRequest{Currency: dto.StringPtr("gbp")}
	s.users.On("UpdateProfile", mock.Anything, testUser, req).Return(&domain.User{Username: testUser, Currency: "GBP"}, nil).Once()

	w := s.do(http.MethodPut, "/api/v1/users/me", req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"currency":"GBP"`)
}

func (s *HandlersTestSuite) TestChangePassword_WrongCurrent() {
	req := dto.ChangePasswordRequest{CurrentPassword: "bad", NewPassword: "NewSecret1"}
	s.users.On("ChangePassword", mock.Anything, testUser, req).Return(apperrors.ErrUnauthorized).Once()

	w := s.do(http.MethodPut, "/api/v1/users/me/password", req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestDeleteUser() {
	s.users.On("DeleteUser", mock.Anything, testUser).Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/users/me", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestBackup_AdminOnly() {
	w := s.do(http.MethodPost, "/api/v1/admin/backup", nil)
	s.Equal(http.StatusForbidden, w.Code)

	s.backup.On("Backup", mock.Anything).Return(nil).Once()
	w = s.doAs(s.tokenFor("root"), http.MethodPost, "/api/v1/admin/backup", nil)
	s.Equal(http.StatusNoContent, w.Code)
}
