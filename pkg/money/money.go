// Package money provides currency-safe amounts using integer cents and
// tolerant parsing of the amount formats found in bank statement exports.
package money

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// EUR is the default currency for statement imports.
const EUR = "EUR"

// ErrNotAnAmount is returned when a value has no parseable numeric content.
var ErrNotAnAmount = errors.New("not an amount")

// Money represents a monetary value in minor units with a currency.
type Money struct {
	m *gomoney.Money
}

// New creates a Money value from cents (minor units) and currency code.
func New(amountCents int64, currencyCode string) *Money {
	return &Money{m: gomoney.New(amountCents, currencyCode)}
}

// NewFromDecimal creates Money from an exact decimal value.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		currency = gomoney.GetCurrency(EUR)
	}

	multiplier := decimal.New(1, int32(currency.Fraction))
	cents := amount.Mul(multiplier).Round(0).IntPart()

	return New(cents, currencyCode)
}

// Cents returns the amount in minor units.
func (m *Money) Cents() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsNegative returns true if the amount is less than zero.
func (m *Money) IsNegative() bool {
	return m != nil && m.m != nil && m.m.IsNegative()
}

// Abs returns the absolute value.
func (m *Money) Abs() *Money {
	if m == nil || m.m == nil {
		return New(0, EUR)
	}
	return &Money{m: m.m.Absolute()}
}

// Display renders the amount with its currency symbol.
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Display()
}

// ParseStatementAmount parses a raw amount cell from a bank export into cents.
//
// Bank exports disagree on almost everything: "1.234,56", "1,234.56", "12,40",
// "-12.40", "€ 12,40", "(12.40)". The rules applied here:
//   - currency symbols, codes and whitespace are stripped
//   - a leading "-" or surrounding parentheses mark the value negative
//   - when both "." and "," appear, the right-most one is the decimal mark
//   - a lone "," is treated as a decimal comma, a lone "." as a decimal point
//
// Values with no digits at all return ErrNotAnAmount.
func ParseStatementAmount(raw string) (*Money, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, ErrNotAnAmount
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}

	s = stripNonNumeric(s)
	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimPrefix(s, "-")
	}
	if s == "" || !strings.ContainsFunc(s, unicode.IsDigit) {
		return nil, ErrNotAnAmount
	}

	s = normalizeDecimalMark(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}

	return NewFromDecimal(d, EUR), nil
}

// stripNonNumeric drops everything except digits, separators and the sign.
// This removes currency symbols ("€", "$") and codes ("EUR") in one pass.
func stripNonNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
}

// normalizeDecimalMark rewrites the value to use "." as the decimal separator.
func normalizeDecimalMark(s string) string {
	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			// European: 1.234,56
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			// US: 1,234.56
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if strings.Count(s, ",") > 1 {
			// Multiple commas can only be thousands separators.
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasDot:
		if strings.Count(s, ".") > 1 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return s
}
