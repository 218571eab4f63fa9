package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Amount:      "12.50",
		Currency:    "USD",
		Category:    "Food",
		Date:        "2024-01-15",
		Description: "lunch",
		Type:        "expense",
	}
}

func TestStruct_ValidTransaction(t *testing.T) {
	assert.NoError(t, validation.Struct(validTransaction()))
}

func TestStruct_RejectsBadFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateTransactionRequest)
		field  string
	}{
		{name: "zero amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "0" }, field: "amount"},
		{name: "negative amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "-5" }, field: "amount"},
		{name: "text amount", mutate: func(r *dto.CreateTransactionRequest) { r.Amount = "abc" }, field: "amount"},
		{name: "lower currency", mutate: func(r *dto.CreateTransactionRequest) { r.Currency = "usd" }, field: "currency"},
		{name: "bad date", mutate: func(r *dto.CreateTransactionRequest) { r.Date = "15/01/2024" }, field: "date"},
		{name: "bad type", mutate: func(r *dto.CreateTransactionRequest) { r.Type = "transfer" }, field: "type"},
		{name: "bad payment", mutate: func(r *dto.CreateTransactionRequest) { r.Payment = "cheque" }, field: "payment"},
		{name: "empty description", mutate: func(r *dto.CreateTransactionRequest) { r.Description = "" }, field: "description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTransaction()
			tt.mutate(&req)

			err := validation.Struct(req)

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			fields := apperrors.FieldErrors(err)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}
}

func TestStruct_DescriptionLength(t *testing.T) {
	req := validTransaction()
	req.Description = strings.Repeat("x", 100)
	require.NoError(t, validation.Struct(req))

	req.Description = strings.Repeat("x", 101)
	fields := apperrors.FieldErrors(validation.Struct(req))

	require.Len(t, fields, 1)
	assert.Equal(t, "description", fields[0].Field)
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, validation.StrongPassword("Sup3r$ecret"))
	assert.False(t, validation.StrongPassword("short1!"))
	assert.False(t, validation.StrongPassword("alllowercase1!"))
	assert.False(t, validation.StrongPassword("NoDigitsHere!"))
	assert.False(t, validation.StrongPassword("NoSpecial123"))
}

func TestStruct_UserRequest(t *testing.T) {
	err := validation.Struct(dto.CreateUserRequest{
		Username: "al",
		Password: "Sup3r$ecret",
		FullName: "Alice 99",
		Currency: "EUR",
	})

	fields := apperrors.FieldErrors(err)
	require.Len(t, fields, 2)
	assert.ElementsMatch(t, []string{"username", "fullName"}, []string{fields[0].Field, fields[1].Field})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: " 12.50 ", want: "12.5"},
		{in: "0", want: "0"},
		{in: "-3", want: "-3"},
		{in: "1e300", want: "1e300"},
		{in: "1e-300", want: "1e-300"},
		{in: "1e400", wantErr: validation.ErrAmountOutOfRange},
		{in: "-1e400", wantErr: validation.ErrAmountOutOfRange},
		{in: "1e-400", wantErr: validation.ErrAmountOutOfRange},
		{in: "1e-999999999", wantErr: validation.ErrAmountOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := validation.ParseAmount(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), got.String())
		})
	}

	_, err := validation.ParseAmount("ten")
	assert.Error(t, err)
}
