// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/centralbureau/tabulator

// Package fraction provides exact rational arithmetic for seat apportionment.
//
// Floating point is never used for statutory vote math: ties between
// groups are broken at exact equality, and a rounding error in a float
// comparison would silently change who wins a seat. Fraction keeps the
// numerator and denominator as plain uint64s and does every comparison
// by cross-multiplication.
package fraction

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Fraction is an exact rational number numerator/denominator, with the
// invariant that denominator is always strictly positive. The zero value
// is not valid; use Zero or New.
type Fraction struct {
	numerator   uint64
	denominator uint64
}

// Zero is the additive identity, 0/1.
var Zero = New(0, 1)

// New constructs a Fraction. It panics if denominator is zero, since a
// zero denominator is a programmer error, not a runtime condition callers
// can recover from.
func New(numerator, denominator uint64) Fraction {
	if denominator == 0 {
		panic("fraction: denominator cannot be zero")
	}
	return Fraction{numerator: numerator, denominator: denominator}
}

// FromInt builds a Fraction representing the whole number n.
func FromInt(n uint64) Fraction {
	return Fraction{numerator: n, denominator: 1}
}

// IntegerPart returns the floor of the fraction as a whole number.
func (f Fraction) IntegerPart() uint64 {
	return f.numerator / f.denominator
}

// FractionalPart returns the remainder after the integer part is removed.
func (f Fraction) FractionalPart() Fraction {
	return New(f.numerator%f.denominator, f.denominator)
}

// Add returns f + other.
func (f Fraction) Add(other Fraction) Fraction {
	return Fraction{
		numerator:   f.numerator*other.denominator + other.numerator*f.denominator,
		denominator: f.denominator * other.denominator,
	}
}

// Sub returns f - other. The result is only meaningful (non-overflowing
// in the unsigned representation) when f >= other; callers in this
// codebase never subtract a larger fraction from a smaller one.
func (f Fraction) Sub(other Fraction) Fraction {
	return Fraction{
		numerator:   f.numerator*other.denominator - other.numerator*f.denominator,
		denominator: f.denominator * other.denominator,
	}
}

// Mul returns f * other.
func (f Fraction) Mul(other Fraction) Fraction {
	return Fraction{
		numerator:   f.numerator * other.numerator,
		denominator: f.denominator * other.denominator,
	}
}

// Div returns f / other. It panics if other is zero.
func (f Fraction) Div(other Fraction) Fraction {
	if other.numerator == 0 {
		panic("fraction: cannot divide by zero")
	}
	return Fraction{
		numerator:   f.numerator * other.denominator,
		denominator: f.denominator * other.numerator,
	}
}

// Cmp returns -1, 0, or 1 as f is less than, equal to, or greater than other.
func (f Fraction) Cmp(other Fraction) int {
	lhs := f.numerator * other.denominator
	rhs := f.denominator * other.numerator
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// Equal reports whether f and other represent the same rational value,
// e.g. 1/2 == 2/4.
func (f Fraction) Equal(other Fraction) bool {
	return f.numerator*other.denominator == f.denominator*other.numerator
}

// GreaterThan reports whether f > other.
func (f Fraction) GreaterThan(other Fraction) bool { return f.Cmp(other) > 0 }

// LessThan reports whether f < other.
func (f Fraction) LessThan(other Fraction) bool { return f.Cmp(other) < 0 }

// GreaterOrEqual reports whether f >= other.
func (f Fraction) GreaterOrEqual(other Fraction) bool { return f.Cmp(other) >= 0 }

// String renders the fraction the way the printed protocol expects:
// a whole number alone, a bare fraction, or "integer remainder/denominator".
func (f Fraction) String() string {
	integer := f.numerator / f.denominator
	remainder := f.numerator % f.denominator
	if integer > 0 {
		if remainder > 0 {
			return fmt.Sprintf("%d %d/%d", integer, remainder, f.denominator)
		}
		return fmt.Sprintf("%d", integer)
	}
	return fmt.Sprintf("%d/%d", f.numerator, f.denominator)
}

// displayFraction is the wire format: the integer part split out from the
// remainder, so downstream consumers never have to reduce numerator >
// denominator themselves.
type displayFraction struct {
	Integer     uint64 `json:"integer"`
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// MarshalJSON implements json.Marshaler using the split integer/remainder form.
func (f Fraction) MarshalJSON() ([]byte, error) {
	remainder := f.FractionalPart()
	return json.Marshal(displayFraction{
		Integer:     f.IntegerPart(),
		Numerator:   remainder.numerator,
		Denominator: remainder.denominator,
	})
}

// UnmarshalJSON implements json.Unmarshaler, composing the split form back
// into a single numerator/denominator pair.
func (f *Fraction) UnmarshalJSON(data []byte) error {
	var d displayFraction
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	if d.Denominator == 0 {
		return fmt.Errorf("fraction: denominator cannot be zero")
	}
	f.numerator = d.Numerator + d.Integer*d.Denominator
	f.denominator = d.Denominator
	return nil
}
