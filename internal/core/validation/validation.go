// Package validation holds the per-field normalize-or-fail rules shared by
// the create and update paths. Every function is pure: it either returns
// the normalized value or a single typed error, and never touches storage.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adikrishnan/expense-ledger/internal"
	"github.com/adikrishnan/expense-ledger/internal/currency"
)

const DateLayout = "2006-01-02"

// Date parses a calendar date in YYYY-MM-DD form and rejects dates after
// today. The future check happens at validation time and is not revisited.
func Date(value string) (time.Time, *internal.AppError) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, internal.NewValidationError(
			"date cannot be empty", internal.ErrCodeInvalidFormat).WithField("expense_date")
	}

	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		return time.Time{}, internal.NewValidationError(
			"invalid date format, use YYYY-MM-DD", internal.ErrCodeInvalidFormat).WithField("expense_date")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.After(today) {
		return time.Time{}, internal.NewValidationError(
			"future dates are not allowed", internal.ErrCodeFutureDateNotAllowed).WithField("expense_date")
	}

	return parsed, nil
}

// FilterDate checks format only. Range filters may legitimately extend
// past today, so the future check from Date does not apply.
func FilterDate(field, value string) (string, *internal.AppError) {
	trimmed := strings.TrimSpace(value)
	if _, err := time.Parse(DateLayout, trimmed); err != nil {
		return "", internal.NewValidationError(
			"invalid date format, use YYYY-MM-DD", internal.ErrCodeInvalidFormat).WithField(field)
	}
	return trimmed, nil
}

// Amount accepts strictly positive amounts with at most 2 fractional
// digits. It never rounds: 10.005 is rejected, not truncated.
func Amount(value decimal.Decimal) (decimal.Decimal, *internal.AppError) {
	if !value.IsPositive() {
		return decimal.Zero, internal.NewValidationError(
			"amount must be greater than zero", internal.ErrCodeInvalidAmount).WithField("original_amount")
	}
	if value.Exponent() < -2 {
		return decimal.Zero, internal.NewValidationError(
			"amount cannot have more than 2 decimal places", internal.ErrCodeInvalidAmount).WithField("original_amount")
	}
	return value, nil
}

// Currency normalizes a code to upper case and checks it against the
// fixed supported set.
func Currency(value string) (string, *internal.AppError) {
	normalized, ok := currency.Normalize(value)
	if !ok {
		return "", internal.NewValidationError(
			fmt.Sprintf("unsupported currency %q", value), internal.ErrCodeUnsupportedCurrency).WithField("currency")
	}
	return normalized, nil
}

// RequiredText trims and lower-cases a mandatory string field; empty after
// trimming is an error.
func RequiredText(field, value string) (string, *internal.AppError) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return "", internal.NewValidationError(
			fmt.Sprintf("%s cannot be empty", field), internal.ErrCodeEmptyField).WithField(field)
	}
	return normalized, nil
}

// OptionalText distinguishes "not provided" from "explicitly blank": a nil
// pointer passes through untouched, a provided value must survive trimming.
func OptionalText(field string, value *string) (*string, *internal.AppError) {
	if value == nil {
		return nil, nil
	}
	normalized, err := RequiredText(field, *value)
	if err != nil {
		return nil, err
	}
	return &normalized, nil
}
