// Package core provides the expense domain: validation, window filtering and
// category aggregation.
//
// This file contains amount parsing and the display formatting rules. Amounts
// are accumulated at full precision and rounded only when formatted.
package core

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces is the number of decimals shown for monetary values.
	AmountPlaces = 2
	// PercentPlaces is the number of decimals shown for percentages.
	PercentPlaces = 1
)

var hundred = decimal.NewFromInt(100)

// ParseAmount converts user input to a strictly positive decimal.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Signs, exponents,
// empty input, zero and values outside the float64 range are rejected with
// ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount(" 3,2 ") -> 3.2, nil
//	ParseAmount("0")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	dots := 0
	for _, r := range s {
		switch {
		case r == '.':
			dots++
		case !unicode.IsDigit(r):
			return decimal.Zero, ErrInvalidAmount
		}
	}
	if dots > 1 || s == "." {
		return decimal.Zero, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !validAmount(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// validAmount reports whether d is positive and survives the REAL column,
// i.e. its float64 form is finite and non-zero.
func validAmount(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	f := d.InexactFloat64()
	return f > 0 && !math.IsInf(f, 0)
}

// FormatAmount renders a monetary value with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountPlaces)
}

// FormatPercent renders a percentage with exactly one decimal and a % sign.
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(PercentPlaces) + "%"
}

// Percent returns part/total*100. The second result is false, and no division
// happens, when total is zero.
func Percent(part, total decimal.Decimal) (decimal.Decimal, bool) {
	if total.IsZero() {
		return decimal.Zero, false
	}
	return part.Div(total).Mul(hundred), true
}
