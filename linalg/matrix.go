// Package linalg provides small dense matrix routines: determinants and
// inverses by cofactor expansion, and Cholesky and Gauss-Seidel solvers for
// linear systems. Matrices use gonum's mat types for storage.
package linalg

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape means matrix or vector dimensions do not fit the operation.
	ErrShape = errors.New("linalg: dimension mismatch")
	// ErrSingular means a matrix has a zero determinant.
	ErrSingular = errors.New("linalg: matrix is singular")
)

// FromRows creates a matrix from rows of equal, nonzero length.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrShape)
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrShape, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// Rows returns the rows of a matrix.
func Rows(a mat.Matrix) [][]float64 {
	r, c := a.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = a.At(i, j)
		}
	}
	return rows
}

// square returns the order of a square matrix.
func square(a mat.Matrix) (int, error) {
	r, c := a.Dims()
	if r != c {
		return 0, fmt.Errorf("%w: %dx%d matrix is not square", ErrShape, r, c)
	}
	return r, nil
}

// minor returns a with row i and column j removed. a must be at least 2x2.
func minor(a mat.Matrix, i, j int) *mat.Dense {
	r, c := a.Dims()
	m := mat.NewDense(r-1, c-1, nil)
	y := 0
	for ii := 0; ii < r; ii++ {
		if ii == i {
			continue
		}
		x := 0
		for jj := 0; jj < c; jj++ {
			if jj == j {
				continue
			}
			m.Set(y, x, a.At(ii, jj))
			x++
		}
		y++
	}
	return m
}

// sign is (-1)^k.
func sign(k int) float64 {
	if k%2 == 0 {
		return 1
	}
	return -1
}

// det is the cofactor expansion along the first row of a square matrix.
func det(a mat.Matrix) float64 {
	n, _ := a.Dims()
	switch n {
	case 1:
		return a.At(0, 0)
	case 2:
		return a.At(0, 0)*a.At(1, 1) - a.At(0, 1)*a.At(1, 0)
	}
	var r float64
	for j := 0; j < n; j++ {
		if v := a.At(0, j); v != 0 {
			r += sign(j) * v * det(minor(a, 0, j))
		}
	}
	return r
}

// Determinant computes the determinant of a square matrix by cofactor
// expansion. The cost grows factorially with the order of the matrix.
func Determinant(a mat.Matrix) (float64, error) {
	if _, err := square(a); err != nil {
		return 0, err
	}
	return det(a), nil
}

// Cofactor returns the matrix of cofactors of a square matrix, whose (i, j)
// entry is (-1)^(i+j) times the determinant of a without row i and column j.
func Cofactor(a mat.Matrix) (*mat.Dense, error) {
	n, err := square(a)
	if err != nil {
		return nil, err
	}
	c := mat.NewDense(n, n, nil)
	if n == 1 {
		c.Set(0, 0, 1)
		return c, nil
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			c.Set(i, j, sign(i+j)*det(minor(a, i, j)))
		}
	}
	return c, nil
}

// Adjoint returns the adjugate of a square matrix, the transpose of its
// cofactor matrix.
func Adjoint(a mat.Matrix) (*mat.Dense, error) {
	c, err := Cofactor(a)
	if err != nil {
		return nil, err
	}
	return mat.DenseCopyOf(c.T()), nil
}

// Inverse computes the inverse of a square matrix as its adjugate divided by
// its determinant.
func Inverse(a mat.Matrix) (*mat.Dense, error) {
	adj, err := Adjoint(a)
	if err != nil {
		return nil, err
	}
	d := det(a)
	if d == 0 {
		return nil, ErrSingular
	}
	adj.Scale(1/d, adj)
	return adj, nil
}
