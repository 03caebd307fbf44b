package linalg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zephyrtronium/numcalc/linalg"
)

func dense(t *testing.T, rows ...[]float64) *mat.Dense {
	t.Helper()
	m, err := linalg.FromRows(rows)
	require.NoError(t, err)
	return m
}

var matrices = map[string][][]float64{
	"1x1":      {{4}},
	"2x2":      {{4, 7}, {2, 6}},
	"3x3":      {{2, -1, 0}, {-1, 2, -1}, {0, -1, 2}},
	"4x4":      {{1, 2, 3, 4}, {5, 6, 7, 8}, {2, 6, 4, 8}, {3, 1, 1, 2}},
	"zero-row": {{0, 0, 1}, {1, 2, 3}, {4, 5, 6}},
}

func TestDeterminant(t *testing.T) {
	for name, rows := range matrices {
		t.Run(name, func(t *testing.T) {
			a := dense(t, rows...)
			d, err := linalg.Determinant(a)
			require.NoError(t, err)
			assert.InDelta(t, mat.Det(a), d, 1e-9)
		})
	}

	d, err := linalg.Determinant(dense(t, []float64{1, 2}, []float64{2, 4}))
	require.NoError(t, err)
	assert.Zero(t, d)

	_, err = linalg.Determinant(dense(t, []float64{1, 2, 3}, []float64{4, 5, 6}))
	assert.ErrorIs(t, err, linalg.ErrShape)
}

func TestCofactorAdjoint(t *testing.T) {
	a := dense(t, []float64{1, 2, 3}, []float64{0, 4, 5}, []float64{1, 0, 6})
	c, err := linalg.Cofactor(a)
	require.NoError(t, err)
	want := dense(t, []float64{24, 5, -4}, []float64{-12, 3, 2}, []float64{-2, -5, 4})
	assert.True(t, mat.EqualApprox(want, c, 1e-12), "cofactor:\n%v", mat.Formatted(c))

	adj, err := linalg.Adjoint(a)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want.T(), adj, 1e-12), "adjoint:\n%v", mat.Formatted(adj))

	// a adj(a) = det(a) I
	var p mat.Dense
	p.Mul(a, adj)
	d, _ := linalg.Determinant(a)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = d
			}
			assert.InDelta(t, want, p.At(i, j), 1e-12)
		}
	}
}

func TestInverse(t *testing.T) {
	for name, rows := range matrices {
		t.Run(name, func(t *testing.T) {
			a := dense(t, rows...)
			inv, err := linalg.Inverse(a)
			require.NoError(t, err)
			var want mat.Dense
			require.NoError(t, want.Inverse(a))
			assert.True(t, mat.EqualApprox(&want, inv, 1e-9), "inverse:\n%v\nwant:\n%v", mat.Formatted(inv), mat.Formatted(&want))
		})
	}

	_, err := linalg.Inverse(dense(t, []float64{1, 2}, []float64{2, 4}))
	assert.ErrorIs(t, err, linalg.ErrSingular)
	_, err = linalg.Inverse(dense(t, []float64{1, 2}))
	assert.ErrorIs(t, err, linalg.ErrShape)
}

func TestCholesky(t *testing.T) {
	a := dense(t, []float64{4, 12, -16}, []float64{12, 37, -43}, []float64{-16, -43, 98})
	b := mat.NewVecDense(3, []float64{1, 2, 3})
	x, err := linalg.Cholesky(a, b, 1e-8)
	require.NoError(t, err)

	var want mat.VecDense
	require.NoError(t, want.SolveVec(a, b))
	assert.True(t, mat.EqualApprox(&want, x, 1e-9), "solution:\n%v", mat.Formatted(x))

	// Compare with gonum's factorization too.
	var chol mat.Cholesky
	require.True(t, chol.Factorize(mat.NewSymDense(3, []float64{4, 12, -16, 12, 37, -43, -16, -43, 98})))
	var cx mat.VecDense
	require.NoError(t, chol.SolveVecTo(&cx, b))
	assert.True(t, mat.EqualApprox(&cx, x, 1e-9))
}

func TestCholeskyErrors(t *testing.T) {
	_, err := linalg.Cholesky(dense(t, []float64{1, 2}, []float64{3, 4}), mat.NewVecDense(2, nil), 1e-8)
	assert.ErrorIs(t, err, linalg.ErrNotSymmetric)
	_, err = linalg.Cholesky(dense(t, []float64{1, 0}, []float64{0, 1}), mat.NewVecDense(3, nil), 1e-8)
	assert.ErrorIs(t, err, linalg.ErrShape)
	_, err = linalg.Cholesky(dense(t, []float64{1, 0}), mat.NewVecDense(1, nil), 1e-8)
	assert.ErrorIs(t, err, linalg.ErrShape)
}

func TestCholeskyClamp(t *testing.T) {
	// A singular semi-definite matrix still factors with the clamp.
	a := dense(t, []float64{1, 1}, []float64{1, 1})
	x, err := linalg.Cholesky(a, mat.NewVecDense(2, []float64{2, 2}), 1e-8)
	require.NoError(t, err)
	assert.False(t, floats.HasNaN(x.RawVector().Data))
}

func TestGaussSeidel(t *testing.T) {
	// Rows out of order: the dominant entry of column 0 is in row 1.
	a := dense(t,
		[]float64{2, 10, 1},
		[]float64{10, 1, 1},
		[]float64{1, 1, 5},
	)
	b := mat.NewVecDense(3, []float64{13, 12, 7})
	x, iter, err := linalg.GaussSeidel(a, b, 1e-10, 100)
	require.NoError(t, err)
	assert.Positive(t, iter)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x.RawVector().Data, 1e-9)

	a = dense(t, []float64{4, -1, 0}, []float64{-1, 4, -1}, []float64{0, -1, 4})
	b = mat.NewVecDense(3, []float64{15, 10, 10})
	x, _, err = linalg.GaussSeidel(a, b, 1e-12, 100)
	require.NoError(t, err)
	var want mat.VecDense
	require.NoError(t, want.SolveVec(a, b))
	assert.True(t, mat.EqualApprox(&want, x, 1e-10))
}

func TestGaussSeidelErrors(t *testing.T) {
	_, _, err := linalg.GaussSeidel(dense(t, []float64{0, 0}, []float64{1, 1}), mat.NewVecDense(2, nil), 1e-8, 10)
	assert.ErrorIs(t, err, linalg.ErrZeroDiagonal)

	// The greedy ordering puts the larger products off the diagonal, so
	// iterates grow.
	a := dense(t, []float64{1, 1}, []float64{2, 10})
	_, iter, err := linalg.GaussSeidel(a, mat.NewVecDense(2, []float64{1, 1}), 1e-8, 20)
	assert.ErrorIs(t, err, linalg.ErrNoConvergence)
	assert.Equal(t, 20, iter)

	_, _, err = linalg.GaussSeidel(dense(t, []float64{1}), mat.NewVecDense(2, nil), 1e-8, 10)
	assert.ErrorIs(t, err, linalg.ErrShape)
}

func TestFromRows(t *testing.T) {
	_, err := linalg.FromRows(nil)
	assert.ErrorIs(t, err, linalg.ErrShape)
	_, err = linalg.FromRows([][]float64{{}})
	assert.ErrorIs(t, err, linalg.ErrShape)
	_, err = linalg.FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, linalg.ErrShape)

	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	m, err := linalg.FromRows(rows)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, rows, linalg.Rows(m))
}
