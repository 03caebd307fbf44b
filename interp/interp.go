// Package interp interpolates tabulated functions on equally spaced nodes.
package interp

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

var (
	// ErrLength means the node and value tables are empty or have different
	// lengths.
	ErrLength = errors.New("interp: need the same positive number of nodes and values")
	// ErrSpacing means the nodes are not equally spaced and distinct.
	ErrSpacing = errors.New("interp: nodes must be distinct and equally spaced")
)

// spacingTol is the relative tolerance on node spacing.
const spacingTol = 1e-9

// ForwardDifferences returns the forward difference table of ys. Row j holds
// the j-th differences and has len(ys)-j entries, so row 0 is a copy of ys.
func ForwardDifferences(ys []float64) [][]float64 {
	if len(ys) == 0 {
		return nil
	}
	d := make([][]float64, len(ys))
	d[0] = append([]float64(nil), ys...)
	for j := 1; j < len(ys); j++ {
		prev := d[j-1]
		d[j] = floats.SubTo(make([]float64, len(prev)-1), prev[1:], prev[:len(prev)-1])
	}
	return d
}

// spacing returns the common distance between consecutive nodes.
func spacing(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, nil
	}
	h := xs[1] - xs[0]
	if h == 0 {
		return 0, fmt.Errorf("%w: x[0] = x[1] = %g", ErrSpacing, xs[0])
	}
	for i := 2; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; !scalar.EqualWithinAbsOrRel(d, h, spacingTol, spacingTol) {
			return 0, fmt.Errorf("%w: x[%d] - x[%d] = %g, want %g", ErrSpacing, i, i-1, d, h)
		}
	}
	return h, nil
}

// GregoryNewton evaluates the Gregory-Newton forward interpolating polynomial
// through (xs[i], ys[i]) at x. The xs must be equally spaced, in either
// direction. With a single node the polynomial is constant.
func GregoryNewton(xs, ys []float64, x float64) (float64, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return 0, fmt.Errorf("%w: %d nodes, %d values", ErrLength, len(xs), len(ys))
	}
	h, err := spacing(xs)
	if err != nil {
		return 0, err
	}
	if len(xs) == 1 {
		return ys[0], nil
	}
	d := ForwardDifferences(ys)
	p := (x - xs[0]) / h
	r := ys[0]
	// term is p(p-1)...(p-i+1)/i!
	term := 1.0
	for i := 1; i < len(d); i++ {
		term *= (p - float64(i-1)) / float64(i)
		r += term * d[i][0]
	}
	return r, nil
}
