// Package opt provides an explicit optional float so callers can tell an
// absent input apart from a present but invalid one.
package opt

import (
	"fmt"
	"math"
)

// Float is a float64 that may be absent.
type Float struct {
	Value float64
	Valid bool
}

// Some returns a present value.
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// None returns an absent value.
func None() Float {
	return Float{}
}

// Finite returns a present value when v is finite, otherwise None.
func Finite(v float64) Float {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return None()
	}
	return Some(v)
}

// Get returns the value and whether it is present.
func (f Float) Get() (float64, bool) {
	return f.Value, f.Valid
}

// Or returns the value when present, otherwise def.
func (f Float) Or(def float64) float64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

// Positive reports whether the value is present and strictly greater than zero.
func (f Float) Positive() bool {
	return f.Valid && f.Value > 0
}

func (f Float) String() string {
	if !f.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%g", f.Value)
}
