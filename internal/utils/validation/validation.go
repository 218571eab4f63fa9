// Package validation wraps go-playground/validator with the field rules used
// by the ledgers and converts failures into apperrors.ValidationErrors.
package validation

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var fullNamePattern = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		return domain.ValidCurrency(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, ok := domain.ParseDate(fl.Field().String())
		return ok
	})
	mustRegister(v, "fullname", func(fl validator.FieldLevel) bool {
		return FullName(fl.Field().String())
	})
	mustRegister(v, "txtype", func(fl validator.FieldLevel) bool {
		return domain.ParseTransactionType(fl.Field().String()).Valid()
	})
	mustRegister(v, "payment", func(fl validator.FieldLevel) bool {
		return domain.ParsePaymentMethod(fl.Field().String()).Valid()
	})
	mustRegister(v, "posamount", func(fl validator.FieldLevel) bool {
		d, err := ParseAmount(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	mustRegister(v, "nonnegamount", func(fl validator.FieldLevel) bool {
		d, err := ParseAmount(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates s and returns apperrors.ValidationErrors on failure.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate request: %w", err)
	}
	out := make(apperrors.ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "currency":
		return "must be a three letter currency code"
	case "isodate":
		return "must be a date in YYYY-MM-DD form"
	case "fullname":
		return "must be 2 to 50 letters or spaces"
	case "txtype":
		return "must be income or expense"
	case "payment":
		return "must be cash or credit card"
	case "posamount":
		return "must be a positive number within range"
	case "nonnegamount":
		return "must be a number greater than or equal to zero and within range"
	case "strongpassword":
		return "must be at least 8 characters with upper and lower case letters, a digit and a special character"
	}
	return "is invalid"
}

// ErrAmountOutOfRange reports an amount that cannot be stored as a float64
// without becoming infinite or collapsing to zero.
var ErrAmountOutOfRange = errors.New("amount out of range")

// Decimal exponent bounds of a finite, non-zero float64. Checked before the
// float conversion so huge exponents are never expanded.
const (
	maxAmountMagnitude = 309
	minAmountMagnitude = -324
)

// ParseAmount parses a decimal amount from user input.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, errors.New("empty amount")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return d, nil
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	magnitude := int64(d.Exponent()) + int64(digits)
	if magnitude > maxAmountMagnitude || magnitude < minAmountMagnitude {
		return decimal.Zero, ErrAmountOutOfRange
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f == 0 {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return d, nil
}

// StrongPassword requires at least 8 characters including an upper case
// letter, a lower case letter, a digit and a special character.
func StrongPassword(p string) bool {
	if len(p) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// FullName reports whether s is 2 to 50 letters or spaces.
func FullName(s string) bool {
	return fullNamePattern.MatchString(s)
}
