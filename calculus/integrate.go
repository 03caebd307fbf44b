package calculus

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrIntervals means the number of intervals is invalid for a rule.
	ErrIntervals = errors.New("calculus: invalid number of intervals")
	// ErrRule means Integrate was given an unknown rule.
	ErrRule = errors.New("calculus: unknown integration rule")
)

// samples evaluates f at n+1 equally spaced nodes from a to b. h is the signed
// node spacing.
func samples(f func(float64) float64, a, b float64, n int) (ys []float64, h float64) {
	xs := floats.Span(make([]float64, n+1), a, b)
	ys = make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return ys, (b - a) / float64(n)
}

// Trapezoid integrates f over [a, b] by summing the areas of n trapezoids.
// The result is negative when b < a.
func Trapezoid(f func(float64) float64, a, b float64, n int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: trapezoid rule needs at least 1, have %d", ErrIntervals, n)
	}
	ys, h := samples(f, a, b, n)
	var r float64
	for i := 1; i < len(ys); i++ {
		r += h / 2 * (ys[i-1] + ys[i])
	}
	return r, nil
}

// TrapezoidComposite is the trapezoid rule in composite form, weighting the
// interior nodes by h and the ends by h/2. It differs from Trapezoid only by
// rounding.
func TrapezoidComposite(f func(float64) float64, a, b float64, n int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: trapezoid rule needs at least 1, have %d", ErrIntervals, n)
	}
	ys, h := samples(f, a, b, n)
	inner := floats.Sum(ys[1:n])
	return (inner + (ys[0]+ys[n])/2) * h, nil
}

// Simpson13 integrates f over [a, b] with Simpson's 1/3 rule on n intervals.
// n must be even.
func Simpson13(f func(float64) float64, a, b float64, n int) (float64, error) {
	if n < 2 || n%2 != 0 {
		return 0, fmt.Errorf("%w: simpson's 1/3 rule needs a positive even count, have %d", ErrIntervals, n)
	}
	ys, h := samples(f, a, b, n)
	r := ys[0] + ys[n]
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			r += 4 * ys[i]
		} else {
			r += 2 * ys[i]
		}
	}
	return r * h / 3, nil
}

// Simpson38 integrates f over [a, b] with Simpson's 3/8 rule on n intervals.
// n must be a multiple of 3.
func Simpson38(f func(float64) float64, a, b float64, n int) (float64, error) {
	if n < 3 || n%3 != 0 {
		return 0, fmt.Errorf("%w: simpson's 3/8 rule needs a positive multiple of 3, have %d", ErrIntervals, n)
	}
	ys, h := samples(f, a, b, n)
	r := ys[0] + ys[n]
	for i := 1; i < n; i++ {
		if i%3 == 0 {
			r += 2 * ys[i]
		} else {
			r += 3 * ys[i]
		}
	}
	return r * 3 * h / 8, nil
}

// Rule names an integration rule.
type Rule string

const (
	RuleTrapezoid          Rule = "trapezoid"
	RuleTrapezoidComposite Rule = "trapezoid-composite"
	RuleSimpson13          Rule = "simpson13"
	RuleSimpson38          Rule = "simpson38"
)

// Rules returns the available integration rules.
func Rules() []Rule {
	return []Rule{RuleTrapezoid, RuleTrapezoidComposite, RuleSimpson13, RuleSimpson38}
}

// Integrate integrates f over [a, b] on n intervals with the named rule.
func Integrate(r Rule, f func(float64) float64, a, b float64, n int) (float64, error) {
	switch r {
	case RuleTrapezoid:
		return Trapezoid(f, a, b, n)
	case RuleTrapezoidComposite:
		return TrapezoidComposite(f, a, b, n)
	case RuleSimpson13:
		return Simpson13(f, a, b, n)
	case RuleSimpson38:
		return Simpson38(f, a, b, n)
	default:
		return 0, fmt.Errorf("%w %q", ErrRule, r)
	}
}
