package appmax

import (
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Wire-format patterns. The expiry pattern checks digit shape only
// (MM/YY or MM/YYYY) with no month-range check, matching the API contract.
var (
	cardNumberPattern = regexp.MustCompile(`^\d{13,19}$`)
	expiryPattern     = regexp.MustCompile(`^\d{2}/\d{2}(\d{2})?$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// fieldValidator returns the singleton validator instance used for
// format checks that have a standard definition, such as email syntax.
func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	return validate
}

// requireField fails with MISSING_FIELD when value is empty.
// An empty string is treated the same as an absent field.
func requireField(value, field string) error {
	if value == "" {
		return newErrorf(ErrCodeMissingField, "Field '%s' is required", field)
	}

	return nil
}

// requireFields checks each field in order, so the first missing field
// reported is deterministic.
func requireFields(fields ...[2]string) error {
	for _, f := range fields {
		if err := requireField(f[0], f[1]); err != nil {
			return err
		}
	}

	return nil
}

// validateLength fails with INVALID_LENGTH when the value's length in
// Unicode code points falls outside [min, max].
func validateLength(value, field string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if length < min || length > max {
		return newErrorf(ErrCodeInvalidLength,
			"Field '%s' must be between %d and %d characters", field, min, max)
	}

	return nil
}

// validateOptionalLength applies validateLength only when the value is set.
func validateOptionalLength(value, field string, min, max int) error {
	if value == "" {
		return nil
	}

	return validateLength(value, field, min, max)
}

// validateEmail fails with INVALID_EMAIL on malformed addresses.
func validateEmail(value string) error {
	if err := fieldValidator().Var(value, "email"); err != nil {
		return newError(ErrCodeInvalidEmail, "Email format is invalid")
	}

	return nil
}

// stripWhitespace removes all whitespace runs from s.
func stripWhitespace(s string) string {
	return whitespacePattern.ReplaceAllString(s, "")
}

// runeLen counts Unicode code points, not bytes.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// nullableString maps an unset string onto an explicit JSON null so the
// payload key is present either way.
func nullableString(s string) any {
	if s == "" {
		return nil
	}

	return s
}
