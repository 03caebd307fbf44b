package calculus_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/zephyrtronium/numcalc"
	"github.com/zephyrtronium/numcalc/calculus"
)

func fn(src string) func(float64) float64 {
	return numcalc.MustCompile(src).Call
}

func TestDifferences(t *testing.T) {
	f := fn("x^3")
	// f'(2) = 12
	assert.InDelta(t, 12, calculus.Backward(f, 2, 1e-6), 1e-4)
	assert.InDelta(t, 12, calculus.Forward(f, 2, 1e-6), 1e-4)
	assert.InDelta(t, 12, calculus.Central(f, 2, 1e-4), 1e-7)

	// Backward and forward err on opposite sides of a convex function.
	assert.Less(t, calculus.Backward(f, 2, 0.1), 12.0)
	assert.Greater(t, calculus.Forward(f, 2, 0.1), 12.0)

	// Exact for quadratics.
	assert.InDelta(t, 7, calculus.Central(fn("x^2+3x"), 2, 0.5), 1e-12)
}

func TestDifferencesMatchGonum(t *testing.T) {
	f := fn("sin(x)exp(x)")
	cases := []struct {
		name    string
		fn      func(func(float64) float64, float64, float64) float64
		formula fd.Formula
	}{
		{"backward", calculus.Backward, fd.Backward},
		{"forward", calculus.Forward, fd.Forward},
		{"central", calculus.Central, fd.Central},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, x := range []float64{-1, 0, 0.5, 2} {
				const h = 1e-3
				want := fd.Derivative(f, x, &fd.Settings{Formula: c.formula, Step: h})
				assert.InDelta(t, want, c.fn(f, x, h), 1e-9, "x = %g", x)
			}
		})
	}
}

func TestDerivative(t *testing.T) {
	f := fn("exp(x)")
	for _, s := range calculus.Schemes() {
		d, err := calculus.Derivative(s, f, 1, 1e-5)
		require.NoError(t, err, s)
		assert.InDelta(t, math.E, d, 1e-4, s)
	}

	_, err := calculus.Derivative("richardson", f, 1, 1e-5)
	assert.ErrorIs(t, err, calculus.ErrScheme)
	for _, h := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = calculus.Derivative(calculus.SchemeCentral, f, 1, h)
		assert.ErrorIs(t, err, calculus.ErrStep, "h = %g", h)
	}
}

func TestIntegrateExact(t *testing.T) {
	cases := []struct {
		name string
		rule calculus.Rule
		src  string
		a, b float64
		n    int
		want float64
	}{
		{"trapezoid-linear", calculus.RuleTrapezoid, "x", 0, 1, 1, 0.5},
		{"trapezoid-composite-linear", calculus.RuleTrapezoidComposite, "2x+1", 0, 3, 5, 12},
		{"simpson13-cubic", calculus.RuleSimpson13, "x^3", 0, 2, 2, 4},
		{"simpson38-cubic", calculus.RuleSimpson38, "x^3", 0, 2, 3, 4},
		{"simpson13-reversed", calculus.RuleSimpson13, "x^2", 1, 0, 2, -1.0 / 3},
		{"simpson38-reversed", calculus.RuleSimpson38, "x^2", 3, 0, 6, -9},
		{"trapezoid-reversed", calculus.RuleTrapezoid, "x", 1, 0, 4, -0.5},
		{"empty-interval", calculus.RuleSimpson13, "x^2", 2, 2, 4, 0},
		{"negative-area", calculus.RuleSimpson13, "-(x^2)", 0, 3, 6, -9},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calculus.Integrate(c.rule, fn(c.src), c.a, c.b, c.n)
			require.NoError(t, err)
			assert.InDelta(t, c.want, r, 1e-12)
		})
	}
}

func TestIntegrateConvergence(t *testing.T) {
	f := fn("sin(x)")
	for _, rule := range calculus.Rules() {
		t.Run(string(rule), func(t *testing.T) {
			r, err := calculus.Integrate(rule, f, 0, math.Pi, 300)
			require.NoError(t, err)
			tol := 1e-4
			if rule == calculus.RuleSimpson13 || rule == calculus.RuleSimpson38 {
				tol = 1e-8
			}
			assert.InDelta(t, 2, r, tol)
		})
	}
}

func TestIntegrateMatchesGonum(t *testing.T) {
	f := fn("exp(-x^2)")
	const a, b, n = -1.0, 2.0, 24
	xs := floats.Span(make([]float64, n+1), a, b)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}

	r, err := calculus.Trapezoid(f, a, b, n)
	require.NoError(t, err)
	assert.InDelta(t, integrate.Trapezoidal(xs, ys), r, 1e-12)

	rc, err := calculus.TrapezoidComposite(f, a, b, n)
	require.NoError(t, err)
	assert.InDelta(t, r, rc, 1e-12)

	r, err = calculus.Simpson13(f, a, b, n)
	require.NoError(t, err)
	assert.InDelta(t, integrate.Simpsons(xs, ys), r, 1e-12)
}

func TestIntegrateErrors(t *testing.T) {
	f := fn("x")
	cases := []struct {
		rule calculus.Rule
		n    int
	}{
		{calculus.RuleTrapezoid, 0},
		{calculus.RuleTrapezoid, -2},
		{calculus.RuleTrapezoidComposite, 0},
		{calculus.RuleSimpson13, 0},
		{calculus.RuleSimpson13, 3},
		{calculus.RuleSimpson38, 0},
		{calculus.RuleSimpson38, 4},
	}
	for _, c := range cases {
		_, err := calculus.Integrate(c.rule, f, 0, 1, c.n)
		assert.ErrorIs(t, err, calculus.ErrIntervals, "%s with %d intervals", c.rule, c.n)
	}
	_, err := calculus.Integrate("romberg", f, 0, 1, 4)
	assert.ErrorIs(t, err, calculus.ErrRule)
}
