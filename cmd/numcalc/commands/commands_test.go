package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/numcalc/cmd/numcalc/commands"
)

// run executes numcalc with args and input, returning its output.
func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := commands.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	err := cmd.ExecuteArgs(append([]string{"--log-level", "error"}, args...))
	return out.String(), err
}

func TestEval(t *testing.T) {
	out, err := run(t, "", "eval", "(x+1)(x-1)", "3", "0")
	require.NoError(t, err)
	assert.Equal(t, "8\n-1\n", out)

	out, err = run(t, "", "eval", "2+3*4")
	require.NoError(t, err)
	assert.Equal(t, "14\n", out)

	out, err = run(t, "", "eval", "--fmt", "%.3f", "e")
	require.NoError(t, err)
	assert.Equal(t, "2.718\n", out)

	_, err = run(t, "", "eval", "x", "three")
	assert.ErrorContains(t, err, `invalid number "three"`)
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		expr string
		msg  string
	}{
		{"x $ 2", "lex error in \"x $ 2\" at column 3"},
		{"(1+2", "paren error in \"(1+2\" at column 1"},
		{"2+", "underflow error in \"2+\" at column 2"},
		{"2 3", "malformed error in \"2 3\":"},
		{"foo(x)", "unknown-function error in \"foo(x)\" at column 1"},
	}
	for _, c := range cases {
		_, err := run(t, "", "eval", c.expr)
		assert.ErrorContains(t, err, c.msg)
	}
}

func TestEvalLeadingMinus(t *testing.T) {
	out, err := run(t, "", "eval", "x^2", "-2", "3")
	require.NoError(t, err)
	assert.Equal(t, "4\n9\n", out)

	out, err = run(t, "", "eval", "-x", "3", "-1.5")
	require.NoError(t, err)
	assert.Equal(t, "-3\n1.5\n", out)

	out, err = run(t, "", "eval", "-x^2", "--fmt", "%.1f", "-3")
	require.NoError(t, err)
	assert.Equal(t, "9.0\n", out)

	// An explicit separator still works.
	out, err = run(t, "", "eval", "--", "-x", "2")
	require.NoError(t, err)
	assert.Equal(t, "-2\n", out)

	_, err = run(t, "", "eval", "x", "--bogus")
	assert.ErrorContains(t, err, `invalid number "--bogus"`)
}

func TestRPN(t *testing.T) {
	out, err := run(t, "", "rpn", "2x^2 - sin(x)/e", "-x^2")
	require.NoError(t, err)
	assert.Equal(t, "2 x 2 ^ * x sin e / -\nx neg 2 ^\n", out)
}

func TestRoot(t *testing.T) {
	cases := [][]string{
		{"--method", "bisection", "--a", "2", "--b", "3"},
		{"--method", "regula-falsi", "--a", "2", "--b", "3"},
		{"--method", "scan", "--a", "1", "--step", "0.5"},
		{"--method", "newton", "--a", "2", "--deriv", "3x^2 - 2"},
		{"--method", "secant", "--a", "2"},
	}
	for _, c := range cases {
		out, err := run(t, "", append([]string{"--tol", "1e-10", "root", "x^3 - 2x - 5"}, c...)...)
		require.NoError(t, err, c)
		assert.Equal(t, "x ~= 2.09455148\n", out, c)
	}

	out, err := run(t, "", "--tol", "1e-10", "root", "-x+1", "--a", "0", "--b", "3")
	require.NoError(t, err)
	assert.Equal(t, "x ~= 1.00000000\n", out)
	out, err = run(t, "", "--tol", "1e-10", "root", "x+2", "-m", "regula-falsi", "--a", "-3", "--b", "0")
	require.NoError(t, err)
	assert.Equal(t, "x ~= -2.00000000\n", out)

	_, err = run(t, "", "root", "x^2 + 1")
	assert.ErrorContains(t, err, "cannot detect a root")
	_, err = run(t, "", "root", "--method", "golden", "x")
	assert.ErrorContains(t, err, "unknown method")
	_, err = run(t, "", "root", "--method", "newton", "--deriv", "2*", "x")
	assert.ErrorContains(t, err, "derivative: underflow error")
}

func TestRootConfig(t *testing.T) {
	// The iteration limit comes from the persistent flag.
	_, err := run(t, "", "--max-iter", "3", "root", "x^3 - 2x - 5", "--a", "2", "--b", "3")
	assert.ErrorContains(t, err, "no convergence")

	// And from a config file.
	path := filepath.Join(t.TempDir(), "numcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_iter: 3\n"), 0o644))
	_, err = run(t, "", "--config", path, "root", "x^3 - 2x - 5", "--a", "2", "--b", "3")
	assert.ErrorContains(t, err, "no convergence")

	_, err = run(t, "", "--tol", "-1", "eval", "x")
	assert.ErrorContains(t, err, "tolerance must be positive")
}

func TestDeriv(t *testing.T) {
	out, err := run(t, "", "deriv", "x^3", "-x", "2")
	require.NoError(t, err)
	assert.Equal(t, "f'(2.0000) ~= 12.00000000\n", out)

	out, err = run(t, "", "deriv", "-x^3", "-x", "-2")
	require.NoError(t, err)
	assert.Equal(t, "f'(-2.0000) ~= -12.00000000\n", out)

	_, err = run(t, "", "deriv", "x^3", "--scheme", "five-point")
	assert.ErrorContains(t, err, "unknown difference scheme")
}

func TestIntegrate(t *testing.T) {
	out, err := run(t, "", "integrate", "3x^2", "--a", "0", "--b", "2", "--rule", "simpson13,simpson38", "-n", "6")
	require.NoError(t, err)
	assert.Equal(t, "simpson13 result: 8.00000000\nsimpson38 result: 8.00000000\n", out)

	out, err = run(t, "", "integrate", "-x", "--a", "-2", "--b", "0", "-n4")
	require.NoError(t, err)
	assert.Equal(t, "simpson13 result: 2.00000000\n", out)

	_, err = run(t, "", "integrate", "x", "--rule", "simpson38", "-n", "4")
	assert.ErrorContains(t, err, "invalid number of intervals")
}

func TestInterp(t *testing.T) {
	out, err := run(t, "", "interp", "--xs", "0,1,2,3", "--ys", "0,1,4,9", "--table", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "Interpolated value at x = 1.5000 is 2.25000000\n"+
		"Δ^0: [0 1 4 9]\nΔ^1: [1 3 5]\nΔ^2: [2 2]\nΔ^3: [0]\n", out)

	_, err = run(t, "", "interp", "--xs", "0,1,3", "--ys", "0,1,9", "1")
	assert.ErrorContains(t, err, "equally spaced")
}

func TestMatrix(t *testing.T) {
	out, err := run(t, "", "matrix", "determinant", "--row", "4 7", "--row", "2 6")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)

	out, err = run(t, "", "matrix", "inverse", "--row", "4 7", "--row", "2 6")
	require.NoError(t, err)
	assert.Contains(t, out, "0.6")
	assert.Contains(t, out, "-0.7")

	for _, op := range []string{"cholesky", "gauss-seidel"} {
		out, err := run(t, "", "--tol", "1e-12", "matrix", op, "--row", "4 1", "--row", "1 3", "--b", "1,2")
		require.NoError(t, err, op)
		assert.Contains(t, out, "Solution vector x:", op)
		assert.Contains(t, out, "0.090909091", op)
		assert.Contains(t, out, "0.63636364", op)
	}

	_, err = run(t, "", "matrix", "inverse", "--row", "1 2", "--row", "2 4")
	assert.ErrorContains(t, err, "singular")
	_, err = run(t, "", "matrix", "cholesky", "--row", "1")
	assert.ErrorContains(t, err, "needs constants")
	_, err = run(t, "", "matrix", "trace", "--row", "1")
	assert.ErrorContains(t, err, "unknown operation")
	_, err = run(t, "", "matrix", "determinant", "--row", "1 2", "--row", "3")
	assert.ErrorContains(t, err, "dimension mismatch")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Version: "), out)
}
