package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount is returned when a monetary string cannot be parsed or is negative.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is a monetary amount in cents. All arithmetic in the service happens
// on this type; floating point only appears at the display boundary.
type Money int64

// ParseMoney converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot and comma decimal separators are accepted.
// Negative amounts are rejected; zero is allowed.
//
// Examples:
//
//	ParseMoney("12.34") -> 1234, nil
//	ParseMoney("12,34") -> 1234, nil
//	ParseMoney("12.346") -> 1235, nil (rounds up)
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	return Money(iv*100 + fracCents), nil
}

// Float returns the amount in whole currency units for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Float() float64 {
	return float64(m) / 100.0
}

// String formats the amount as a plain decimal, e.g. "12.34".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
