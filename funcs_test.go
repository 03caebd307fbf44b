package numcalc_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/numcalc"
)

// prec is the precision of reference values.
const prec = 256

func ref(v float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(v)
}

// near reports whether got is within a few ulps of the reference want.
func near(got float64, want *big.Float) bool {
	w, _ := want.Float64()
	if got == w {
		return true
	}
	return math.Abs(got-w) <= 4*math.Abs(w)*0x1p-52
}

func TestFuncsReference(t *testing.T) {
	xs := []float64{1e-8, 0.25, 0.5, 1, 1.5, 2, math.E, 10, 123.456}
	for _, x := range xs {
		got := numcalc.Exp.Apply(x)
		want := bigfloat.Exp(new(big.Float).SetPrec(prec), ref(x))
		if !near(got, want) {
			t.Errorf("exp(%g): want %g, got %g", x, want, got)
		}
		got = numcalc.Log.Apply(x)
		want = bigfloat.Log(new(big.Float).SetPrec(prec), ref(x))
		if !near(got, want) {
			t.Errorf("log(%g): want %g, got %g", x, want, got)
		}
		got = numcalc.Sqrt.Apply(x)
		want = new(big.Float).SetPrec(prec).Sqrt(ref(x))
		if !near(got, want) {
			t.Errorf("sqrt(%g): want %g, got %g", x, want, got)
		}
	}
}

func TestPowReference(t *testing.T) {
	a := numcalc.MustCompile("x^2.5")
	b := numcalc.MustCompile("exp(x)^x")
	for _, x := range []float64{0.5, 1, 2, 3.75, 10} {
		want := bigfloat.Pow(new(big.Float).SetPrec(prec), ref(x), ref(2.5))
		if got := a.Call(x); !near(got, want) {
			t.Errorf("%g^2.5: want %g, got %g", x, want, got)
		}
		// exp(x)^x is computed in two roundings, so compare more loosely.
		e := bigfloat.Exp(new(big.Float).SetPrec(prec), ref(x))
		want = bigfloat.Pow(new(big.Float).SetPrec(prec), e, ref(x))
		w, _ := want.Float64()
		if got := b.Call(x); math.Abs(got-w) > 1e-12*w {
			t.Errorf("exp(%g)^%g: want %g, got %g", x, x, w, got)
		}
	}
}

func TestLookupFunc(t *testing.T) {
	for _, f := range numcalc.Funcs() {
		if g := numcalc.LookupFunc(f.String()); g != f {
			t.Errorf("LookupFunc(%q): want %v, got %v", f.String(), f, g)
		}
	}
	for _, name := range []string{"", "x", "e", "abs", "SIN", "ln", "sinh"} {
		if g := numcalc.LookupFunc(name); g != numcalc.NoFunc {
			t.Errorf("LookupFunc(%q): want NoFunc, got %v", name, g)
		}
	}
}

func TestApplyNoFunc(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NoFunc.Apply didn't panic")
		}
	}()
	numcalc.NoFunc.Apply(1)
}
