// Package ratio turns user-entered thickness ratios into a float.
package ratio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultNumerator   = "531441"
	DefaultDenominator = "524288"
)

var (
	ErrNotANumber      = errors.New("not a number")
	ErrZeroDenominator = errors.New("denominator is zero")
	ErrNonPositive     = errors.New("ratio must be positive and finite")
)

// Parse divides num by denom.
func Parse(num, denom string) (float64, error) {
	n, err := parseFloat(num)
	if err != nil {
		return 0, fmt.Errorf("numerator: %w", err)
	}
	d, err := parseFloat(denom)
	if err != nil {
		return 0, fmt.Errorf("denominator: %w", err)
	}
	if d == 0 {
		return 0, ErrZeroDenominator
	}
	r := n / d
	if r <= 0 || math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, fmt.Errorf("%w: %s/%s", ErrNonPositive, num, denom)
	}
	return r, nil
}

// ParseFraction accepts "531441/524288" or a plain decimal such as "1.0136".
func ParseFraction(s string) (float64, error) {
	if num, denom, ok := strings.Cut(s, "/"); ok {
		return Parse(num, denom)
	}
	return Parse(s, "1")
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return v, nil
}
