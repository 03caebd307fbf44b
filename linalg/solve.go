package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotSymmetric means Cholesky was given an asymmetric matrix.
	ErrNotSymmetric = errors.New("linalg: matrix must be symmetric positive-definite for cholesky")
	// ErrZeroDiagonal means no row ordering gives Gauss-Seidel a nonzero
	// diagonal.
	ErrZeroDiagonal = errors.New("linalg: zero on the diagonal")
	// ErrNoConvergence means Gauss-Seidel did not converge.
	ErrNoConvergence = errors.New("linalg: no convergence within iteration limit")
)

// symTol is the absolute tolerance for symmetry.
const symTol = 1e-12

// system checks that a is square and b has one entry per row of a.
func system(a mat.Matrix, b mat.Vector) (int, error) {
	n, err := square(a)
	if err != nil {
		return 0, err
	}
	if b.Len() != n {
		return 0, fmt.Errorf("%w: %dx%d system with %d constants", ErrShape, n, n, b.Len())
	}
	return n, nil
}

// Cholesky solves a x = b for a symmetric positive-definite a by factoring
// a = L Lᵀ. Each diagonal entry of L is computed from max(d, eps) rather than
// d, so semi-definite or slightly indefinite matrices still give a finite
// result.
func Cholesky(a mat.Matrix, b mat.Vector, eps float64) (*mat.VecDense, error) {
	n, err := system(a, b)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if math.Abs(a.At(i, j)-a.At(j, i)) > symTol {
				return nil, fmt.Errorf("%w: a[%d][%d] != a[%d][%d]", ErrNotSymmetric, i, j, j, i)
			}
		}
	}

	l := mat.NewTriDense(n, mat.Lower, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := 0; k < j; k++ {
				sum += l.At(i, k) * l.At(j, k)
			}
			if i == j {
				l.SetTri(i, i, math.Sqrt(math.Max(a.At(i, i)-sum, eps)))
			} else {
				l.SetTri(i, j, (a.At(i, j)-sum)/l.At(j, j))
			}
		}
	}

	// Forward substitution for L y = b.
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < i; k++ {
			sum += l.At(i, k) * y.AtVec(k)
		}
		y.SetVec(i, (b.AtVec(i)-sum)/l.At(i, i))
	}
	// Back substitution for Lᵀ x = y.
	x := mat.NewVecDense(n, nil)
	for i := n - 1; i >= 0; i-- {
		var sum float64
		for k := i + 1; k < n; k++ {
			sum += l.At(k, i) * x.AtVec(k)
		}
		x.SetVec(i, (y.AtVec(i)-sum)/l.At(i, i))
	}
	return x, nil
}

// dominantOrder chooses a row for each column, greedily taking the remaining
// row with the largest magnitude in that column, to make the system as
// diagonally dominant as row swaps allow.
func dominantOrder(a mat.Matrix, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for j := 0; j < n; j++ {
		best := j
		for k := j + 1; k < n; k++ {
			if math.Abs(a.At(perm[k], j)) > math.Abs(a.At(perm[best], j)) {
				best = k
			}
		}
		perm[j], perm[best] = perm[best], perm[j]
	}
	return perm
}

// GaussSeidel solves a x = b iteratively, starting from a vector of ones,
// until no component changes by more than tol in one sweep. The rows are
// reordered first to favor diagonal dominance. The result includes the number
// of sweeps performed.
func GaussSeidel(a mat.Matrix, b mat.Vector, tol float64, maxIter int) (*mat.VecDense, int, error) {
	n, err := system(a, b)
	if err != nil {
		return nil, 0, err
	}
	perm := dominantOrder(a, n)
	for i, r := range perm {
		if a.At(r, i) == 0 {
			return nil, 0, fmt.Errorf("%w: column %d", ErrZeroDiagonal, i)
		}
	}

	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, 1)
	}
	for iter := 1; iter <= maxIter; iter++ {
		var delta float64
		for i, r := range perm {
			s := b.AtVec(r)
			for j := 0; j < n; j++ {
				if j != i {
					s -= a.At(r, j) * x.AtVec(j)
				}
			}
			v := s / a.At(r, i)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return x, iter, fmt.Errorf("%w: diverged at sweep %d", ErrNoConvergence, iter)
			}
			delta = math.Max(delta, math.Abs(v-x.AtVec(i)))
			x.SetVec(i, v)
		}
		if delta <= tol {
			return x, iter, nil
		}
	}
	return x, maxIter, ErrNoConvergence
}
