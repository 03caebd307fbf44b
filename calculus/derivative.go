// Package calculus approximates derivatives and definite integrals of
// functions of one real variable from samples.
package calculus

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrStep means a difference step is not positive and finite.
	ErrStep = errors.New("calculus: step must be positive and finite")
	// ErrScheme means Derivative was given an unknown scheme.
	ErrScheme = errors.New("calculus: unknown difference scheme")
)

// Backward is the backward difference quotient (f(x) - f(x-h)) / h.
func Backward(f func(float64) float64, x, h float64) float64 {
	return (f(x) - f(x-h)) / h
}

// Forward is the forward difference quotient (f(x+h) - f(x)) / h.
func Forward(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - f(x)) / h
}

// Central is the central difference quotient (f(x+h) - f(x-h)) / 2h. Its
// error is second order in h, where the others are first order.
func Central(f func(float64) float64, x, h float64) float64 {
	return (f(x+h) - f(x-h)) / (2 * h)
}

// Scheme names a difference quotient.
type Scheme string

const (
	SchemeBackward Scheme = "backward"
	SchemeForward  Scheme = "forward"
	SchemeCentral  Scheme = "central"
)

// Schemes returns the available difference schemes.
func Schemes() []Scheme {
	return []Scheme{SchemeBackward, SchemeForward, SchemeCentral}
}

// Derivative approximates f'(x) with the named scheme and step h.
func Derivative(s Scheme, f func(float64) float64, x, h float64) (float64, error) {
	if !(h > 0) || math.IsInf(h, 1) {
		return 0, fmt.Errorf("%w: %g", ErrStep, h)
	}
	switch s {
	case SchemeBackward:
		return Backward(f, x, h), nil
	case SchemeForward:
		return Forward(f, x, h), nil
	case SchemeCentral:
		return Central(f, x, h), nil
	default:
		return 0, fmt.Errorf("%w %q", ErrScheme, s)
	}
}
