package roots

import (
	"math"

	"github.com/sirupsen/logrus"
)

// Newton iterates x ← x - f(x)/df(x) from x0 until |f(x)| is within the
// tolerance. df is the derivative of f, typically a separately compiled
// expression.
func Newton(f, df func(float64) float64, x0 float64, opts ...Option) (Result, error) {
	s := newSettings(opts)
	x := x0
	fx, err := eval(f, x)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fx) <= s.tol {
		return Result{X: x, Fx: fx}, nil
	}
	r := Result{X: x, Fx: fx}
	for i := 1; i <= s.maxIter; i++ {
		d, err := eval(df, x)
		if err != nil {
			return r, err
		}
		x -= fx / d
		if fx, err = eval(f, x); err != nil {
			return r, err
		}
		r = Result{X: x, Fx: fx, Iter: i}
		s.trace(MethodNewton, i, logrus.Fields{"x": x, "fx": fx, "dfx": d})
		if math.Abs(fx) <= s.tol {
			return r, nil
		}
	}
	return r, ErrNoConvergence
}

// Secant is Newton's method with the derivative replaced by the slope through
// the last two iterates. The iterate before x0 is x0-1.
func Secant(f func(float64) float64, x0 float64, opts ...Option) (Result, error) {
	s := newSettings(opts)
	x := x0
	fx, err := eval(f, x)
	if err != nil {
		return Result{}, err
	}
	if math.Abs(fx) <= s.tol {
		return Result{X: x, Fx: fx}, nil
	}
	prev := x - 1
	fprev, err := eval(f, prev)
	if err != nil {
		return Result{}, err
	}
	r := Result{X: x, Fx: fx}
	for i := 1; i <= s.maxIter; i++ {
		slope := (fprev - fx) / (prev - x)
		prev, fprev = x, fx
		x -= fx / slope
		if fx, err = eval(f, x); err != nil {
			return r, err
		}
		r = Result{X: x, Fx: fx, Iter: i}
		s.trace(MethodSecant, i, logrus.Fields{"x": x, "fx": fx, "slope": slope})
		if math.Abs(fx) <= s.tol {
			return r, nil
		}
	}
	return r, ErrNoConvergence
}
