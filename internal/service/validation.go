package service

import (
	"fmt"
	"strings"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requireText trims s and checks it is present and within max characters
func requireText(field, s string, max int) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid("%s is required", field)
	}
	if len([]rune(s)) > max {
		return "", invalid("%s must be at most %d characters", field, max)
	}
	return s, nil
}

// optionalText trims s and maps blank to nil
func optionalText(field string, s *string, max int) (*string, error) {
	if s == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > max {
		return nil, invalid("%s must be at most %d characters", field, max)
	}
	return &trimmed, nil
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrNegativeAmount, field)
	}
	return nil
}

// currencyOrDefault upper-cases an ISO 4217 code, defaulting to USD
func currencyOrDefault(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return domain.DefaultCurrency, nil
	}
	if len(c) != 3 {
		return "", invalid("currency must be a three-letter code")
	}
	return c, nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
