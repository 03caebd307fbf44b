package roots

import (
	"errors"
	"fmt"
)

// Method names a root-finding method.
type Method string

const (
	MethodBisection   Method = "bisection"
	MethodRegulaFalsi Method = "regula-falsi"
	MethodScan        Method = "scan"
	MethodNewton      Method = "newton"
	MethodSecant      Method = "secant"
)

// Methods returns the available methods.
func Methods() []Method {
	return []Method{MethodBisection, MethodRegulaFalsi, MethodScan, MethodNewton, MethodSecant}
}

var (
	// ErrMethod means Solve was given an unknown method.
	ErrMethod = errors.New("roots: unknown method")
	// ErrDerivative means Newton's method was requested without a derivative.
	ErrDerivative = errors.New("roots: newton's method needs a derivative")
)

// Problem is the input to Solve.
type Problem struct {
	// F is the function to find a root of.
	F func(float64) float64
	// DF is the derivative of F. Only MethodNewton uses it.
	DF func(float64) float64
	// A is the start of the bracket for bracketing methods and the initial
	// point for the others.
	A float64
	// B is the end of the bracket for MethodBisection and MethodRegulaFalsi.
	B float64
	// Step is the initial step for MethodScan.
	Step float64
}

// Solve dispatches a problem to the named method.
func Solve(m Method, p Problem, opts ...Option) (Result, error) {
	switch m {
	case MethodBisection:
		return Bisection(p.F, p.A, p.B, opts...)
	case MethodRegulaFalsi:
		return RegulaFalsi(p.F, p.A, p.B, opts...)
	case MethodScan:
		return Scan(p.F, p.A, p.Step, opts...)
	case MethodNewton:
		if p.DF == nil {
			return Result{}, ErrDerivative
		}
		return Newton(p.F, p.DF, p.A, opts...)
	case MethodSecant:
		return Secant(p.F, p.A, opts...)
	default:
		return Result{}, fmt.Errorf("%w %q", ErrMethod, m)
	}
}
