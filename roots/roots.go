// Package roots finds roots of functions of one real variable.
//
// Bracketing methods (Bisection, RegulaFalsi, Scan) need a sign change of f.
// Open methods (Newton, Secant) need only a starting point but may diverge.
// Every method gives up with ErrNoConvergence after the iteration limit, and
// with ErrNotFinite if f or an iterate becomes NaN or infinite.
package roots

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoSignChange means f has the same sign at both ends of a bracket.
	ErrNoSignChange = errors.New("roots: cannot detect a root in the interval; f(a)*f(b) >= 0")
	// ErrStep means the step of Scan is smaller than the tolerance.
	ErrStep = errors.New("roots: step is smaller than tolerance")
	// ErrNotFinite means an iterate or function value is NaN or infinite.
	ErrNotFinite = errors.New("roots: non-finite value")
	// ErrNoConvergence means the iteration limit was reached.
	ErrNoConvergence = errors.New("roots: no convergence within iteration limit")
)

// Result is an approximate root.
type Result struct {
	// X is the approximate root.
	X float64 `json:"x"`
	// Fx is f(X).
	Fx float64 `json:"fx"`
	// Iter is the number of iterations performed.
	Iter int `json:"iterations"`
}

// eval evaluates f at x, reporting ErrNotFinite for a non-finite x or result.
func eval(f func(float64) float64, x float64) (float64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: iterate %g", ErrNotFinite, x)
	}
	y := f(x)
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("%w: f(%g) = %g", ErrNotFinite, x, y)
	}
	return y, nil
}

// bracket evaluates f at both ends of [a, b]. If either end is already within
// tol of a root, done is true.
func bracket(f func(float64) float64, a, b, tol float64) (fa, fb float64, r Result, done bool, err error) {
	if fa, err = eval(f, a); err != nil {
		return
	}
	if fb, err = eval(f, b); err != nil {
		return
	}
	switch {
	case math.Abs(fa) <= tol:
		return fa, fb, Result{X: a, Fx: fa}, true, nil
	case math.Abs(fb) <= tol:
		return fa, fb, Result{X: b, Fx: fb}, true, nil
	case fa*fb >= 0:
		return fa, fb, Result{}, false, ErrNoSignChange
	}
	return fa, fb, Result{}, false, nil
}

// Bisection halves the bracket [a, b] until it is no wider than the
// tolerance. The result is the last midpoint.
func Bisection(f func(float64) float64, a, b float64, opts ...Option) (Result, error) {
	s := newSettings(opts)
	fa, fb, r, done, err := bracket(f, a, b, s.tol)
	if done || err != nil {
		return r, err
	}
	for i := 1; i <= s.maxIter; i++ {
		m := (a + b) / 2
		fm, err := eval(f, m)
		if err != nil {
			return r, err
		}
		r = Result{X: m, Fx: fm, Iter: i}
		s.trace(MethodBisection, i, logrus.Fields{"a": a, "b": b, "x": m, "fx": fm})
		switch {
		case fm*fa < 0:
			b, fb = m, fm
		case fm*fb < 0:
			a, fa = m, fm
		default:
			// Exact root.
			return r, nil
		}
		if math.Abs(b-a) <= s.tol {
			return r, nil
		}
	}
	return r, ErrNoConvergence
}

// RegulaFalsi narrows the bracket [a, b] at the secant through its ends. It
// stops when the bracket is no wider than the tolerance or f at the new point
// is within the tolerance of zero, since one end of the bracket can stay
// fixed.
func RegulaFalsi(f func(float64) float64, a, b float64, opts ...Option) (Result, error) {
	s := newSettings(opts)
	fa, fb, r, done, err := bracket(f, a, b, s.tol)
	if done || err != nil {
		return r, err
	}
	for i := 1; i <= s.maxIter; i++ {
		p := (a*fb - b*fa) / (fb - fa)
		fp, err := eval(f, p)
		if err != nil {
			return r, err
		}
		r = Result{X: p, Fx: fp, Iter: i}
		s.trace(MethodRegulaFalsi, i, logrus.Fields{"a": a, "b": b, "x": p, "fx": fp})
		if math.Abs(fp) <= s.tol {
			return r, nil
		}
		if fp*fa < 0 {
			b, fb = p, fp
		} else {
			a, fa = p, fp
		}
		if math.Abs(b-a) <= s.tol {
			return r, nil
		}
	}
	return r, ErrNoConvergence
}

// Scan steps from x0 by dx until f changes sign between x and x+dx, then
// halves dx and continues from x until |dx| is no larger than the tolerance.
// It finds the first root in the direction of dx, which must be positive.
func Scan(f func(float64) float64, x0, dx float64, opts ...Option) (Result, error) {
	s := newSettings(opts)
	if dx < s.tol {
		return Result{}, ErrStep
	}
	x, i := x0, 0
	for math.Abs(dx) > s.tol {
		if i == s.maxIter {
			return Result{X: x, Iter: i}, ErrNoConvergence
		}
		i++
		f0, err := eval(f, x)
		if err != nil {
			return Result{}, err
		}
		f1, err := eval(f, x+dx)
		if err != nil {
			return Result{}, err
		}
		s.trace(MethodScan, i, logrus.Fields{"x": x, "dx": dx, "f0": f0, "f1": f1})
		switch {
		case f0 == 0:
			return Result{X: x, Fx: f0, Iter: i}, nil
		case f1 == 0:
			return Result{X: x + dx, Fx: f1, Iter: i}, nil
		case f0*f1 < 0:
			dx /= 2
		default:
			x += dx
		}
	}
	fx, err := eval(f, x)
	if err != nil {
		return Result{}, err
	}
	return Result{X: x, Fx: fx, Iter: i}, nil
}
