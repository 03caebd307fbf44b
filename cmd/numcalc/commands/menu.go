package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/zephyrtronium/numcalc"
	"github.com/zephyrtronium/numcalc/calculus"
	"github.com/zephyrtronium/numcalc/interp"
	"github.com/zephyrtronium/numcalc/linalg"
	"github.com/zephyrtronium/numcalc/roots"
)

func newMenuCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Choose methods from an interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &menu{
				app: a,
				in:  bufio.NewScanner(cmd.InOrStdin()),
				out: cmd.OutOrStdout(),
			}
			return m.run()
		},
	}
}

// menu is an interactive session. Every prompt is repeated until the answer
// is usable. End of input ends the session.
type menu struct {
	*app
	in  *bufio.Scanner
	out io.Writer
}

type choice struct {
	title string
	// again is the repeat prompt.
	again string
	solve func(*menu) error
}

var choices = []choice{
	{"Solve an equation using the 'Bisection Method'", "Try another equation?", (*menu).bisection},
	{"Solve an equation using the 'Regula-Falsi Method'", "Try another equation?", (*menu).regulaFalsi},
	{"Solve an equation using the 'Newton-Raphson Method'", "Try another equation?", (*menu).newton},
	{"Get inverse of a matrix", "Try another matrix?", (*menu).inverse},
	{"Solve a set of equations using the 'Cholesky Method'", "Try another?", (*menu).cholesky},
	{"Solve a set of equations using the 'Gauss Seidel Method'", "Try another?", (*menu).gaussSeidel},
	{"Find the derivative of an equation", "Try another?", (*menu).derivative},
	{"Find the integral of an equation using 'Simpson Method' (1/3 and 3/8)", "Try another?", (*menu).simpson},
	{"Find the integral of an equation using 'Trapezoidal Rule Method'", "Try another?", (*menu).trapezoid},
	{"Interpolate an equation using 'Gregory Newton Method'", "Try another?", (*menu).gregoryNewton},
}

func (m *menu) run() error {
	fmt.Fprintln(m.out, "Welcome to numcalc!")
	for {
		for i, c := range choices {
			fmt.Fprintf(m.out, "%d. %s\n", i+1, c.title)
		}
		fmt.Fprintf(m.out, "%d. Exit\n", len(choices)+1)
		line, err := m.line("Make a choice: ")
		if err != nil {
			return eof(err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case err != nil || n < 1 || n > len(choices)+1:
			fmt.Fprintln(m.out, "Unknown input!")
			continue
		case n == len(choices)+1:
			return nil
		}
		c := choices[n-1]
		for {
			if err := c.solve(m); err != nil {
				if errors.Is(err, io.EOF) {
					return eof(err)
				}
				fmt.Fprintln(m.out, "Error:", err)
			}
			more, err := m.yes(c.again + " (Y/n): ")
			if err != nil {
				return eof(err)
			}
			if !more {
				break
			}
		}
	}
}

// eof converts end of input to a clean exit.
func eof(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// line prompts for and reads one line.
func (m *menu) line(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

// yes reads a yes or no answer. An empty answer is yes.
func (m *menu) yes(prompt string) (bool, error) {
	s, err := m.line(prompt)
	if err != nil {
		return false, err
	}
	s = strings.TrimSpace(s)
	return s == "" || s[0] == 'y' || s[0] == 'Y', nil
}

// expr reads an expression, prompting again if it does not compile.
func (m *menu) expr(prompt string) (*numcalc.Expr, error) {
	for {
		s, err := m.line(prompt)
		if err != nil {
			return nil, err
		}
		e, err := compile(s)
		if err == nil {
			return e, nil
		}
		fmt.Fprintln(m.out, err)
	}
}

// numbers reads n numbers on one line, prompting again on a bad answer.
func (m *menu) numbers(prompt string, n int) ([]float64, error) {
	for {
		s, err := m.line(prompt)
		if err != nil {
			return nil, err
		}
		fs := strings.Fields(s)
		if len(fs) != n {
			fmt.Fprintf(m.out, "Expected %d numbers, got %d.\n", n, len(fs))
			continue
		}
		v, err := parseFloats(fs)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(m.out, err)
	}
}

// size reads a positive integer.
func (m *menu) size(prompt string) (int, error) {
	for {
		s, err := m.line(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil && n > 0 {
			return n, nil
		}
		fmt.Fprintf(m.out, "Invalid size %q.\n", s)
	}
}

// matrix reads n rows of k numbers.
func (m *menu) matrix(n, k int) ([][]float64, error) {
	rows := make([][]float64, n)
	for i := range rows {
		r, err := m.numbers(fmt.Sprintf("row %d: ", i+1), k)
		if err != nil {
			return nil, err
		}
		rows[i] = r
	}
	return rows, nil
}

func (m *menu) bounds() (float64, float64, error) {
	s, err := m.line("Enter lower and upper bounds (e.g. -10 10): ")
	if err != nil {
		return 0, 0, err
	}
	v, err := parseFloats(strings.Fields(s))
	if err != nil || len(v) != 2 {
		fmt.Fprintln(m.out, "Invalid input. Using default (-10, 10).")
		return -10, 10, nil
	}
	return v[0], v[1], nil
}

func (m *menu) root(r roots.Result, err error) error {
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "x ~= %.8f\n", r.X)
	return nil
}

func (m *menu) bracketing(method roots.Method) error {
	a, b, err := m.bounds()
	if err != nil {
		return err
	}
	f, err := m.expr("Enter f(x): ")
	if err != nil {
		return err
	}
	return m.root(roots.Solve(method, roots.Problem{F: f.Call, A: a, B: b}, m.rootOpts()))
}

func (m *menu) bisection() error   { return m.bracketing(roots.MethodBisection) }
func (m *menu) regulaFalsi() error { return m.bracketing(roots.MethodRegulaFalsi) }

func (m *menu) newton() error {
	x0, err := m.numbers("Enter initial guess x0: ", 1)
	if err != nil {
		return err
	}
	f, err := m.expr("Enter f(x): ")
	if err != nil {
		return err
	}
	df, err := m.expr("Enter f'(x): ")
	if err != nil {
		return err
	}
	return m.root(roots.Newton(f.Call, df.Call, x0[0], m.rootOpts()))
}

func (m *menu) inverse() error {
	n, err := m.size("Enter matrix size n: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Enter %dx%d entries row-by-row:\n", n, n)
	rows, err := m.matrix(n, n)
	if err != nil {
		return err
	}
	a, err := linalg.FromRows(rows)
	if err != nil {
		return err
	}
	inv, err := linalg.Inverse(a)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Inverse matrix:")
	printMatrix(m.out, inv)
	return nil
}

func (m *menu) cholesky() error {
	n, err := m.size("Enter matrix size n: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Enter %d rows of %d entries for A:\n", n, n)
	rows, err := m.matrix(n, n)
	if err != nil {
		return err
	}
	a, err := linalg.FromRows(rows)
	if err != nil {
		return err
	}
	b, err := m.numbers(fmt.Sprintf("Enter %d entries for b: ", n), n)
	if err != nil {
		return err
	}
	x, err := linalg.Cholesky(a, mat.NewVecDense(n, b), m.cfg.Tolerance)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "Solution vector x:")
	printMatrix(m.out, x)
	return nil
}

func (m *menu) gaussSeidel() error {
	n, err := m.size("Enter matrix size n: ")
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Enter each row with %d+1 entries (A row then b):\n", n)
	rows, err := m.matrix(n, n+1)
	if err != nil {
		return err
	}
	b := make([]float64, n)
	for i, r := range rows {
		b[i] = r[n]
		rows[i] = r[:n]
	}
	a, err := linalg.FromRows(rows)
	if err != nil {
		return err
	}
	x, iter, err := linalg.GaussSeidel(a, mat.NewVecDense(n, b), m.cfg.Tolerance, m.cfg.MaxIter)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Solution vector x (%d iterations):\n", iter)
	printMatrix(m.out, x)
	return nil
}

func (m *menu) derivative() error {
	f, err := m.expr("Enter function f(x): ")
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, f)
	v, err := m.numbers("Enter point x0 and step h (e.g. 3.53 0.001): ", 2)
	if err != nil {
		return err
	}
	d, err := calculus.Derivative(calculus.SchemeCentral, f.Call, v[0], v[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "f'(%.4f) ~= %.8f\n", v[0], d)
	return nil
}

// interval reads the limits and interval count of an integral.
func (m *menu) interval(prompt string) (float64, float64, int, error) {
	for {
		v, err := m.numbers(prompt, 3)
		if err != nil {
			return 0, 0, 0, err
		}
		n := int(v[2])
		if float64(n) == v[2] && n > 0 {
			return v[0], v[1], n, nil
		}
		fmt.Fprintf(m.out, "Invalid number of intervals %g.\n", v[2])
	}
}

func (m *menu) simpson() error {
	a, b, n, err := m.interval("Enter a b and number of subintervals n: ")
	if err != nil {
		return err
	}
	f, err := m.expr("Enter function f(x): ")
	if err != nil {
		return err
	}
	// Each rule reports its own interval constraint.
	for _, r := range []struct {
		name string
		rule calculus.Rule
	}{{"Simpson 1/3", calculus.RuleSimpson13}, {"Simpson 3/8", calculus.RuleSimpson38}} {
		v, err := calculus.Integrate(r.rule, f.Call, a, b, n)
		if err != nil {
			fmt.Fprintf(m.out, "%s: %v\n", r.name, err)
			continue
		}
		fmt.Fprintf(m.out, "%s result: %.8f\n", r.name, v)
	}
	return nil
}

func (m *menu) trapezoid() error {
	a, b, n, err := m.interval("Enter a b and number of trapezoids n: ")
	if err != nil {
		return err
	}
	f, err := m.expr("Enter function f(x): ")
	if err != nil {
		return err
	}
	v, err := calculus.TrapezoidComposite(f.Call, a, b, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Trapezoidal result: %.8f\n", v)
	return nil
}

func (m *menu) gregoryNewton() error {
	n, err := m.size("Enter number of data points: ")
	if err != nil {
		return err
	}
	xs, err := m.numbers("Enter x values: ", n)
	if err != nil {
		return err
	}
	ys, err := m.numbers("Enter y values: ", n)
	if err != nil {
		return err
	}
	x0, err := m.numbers("Enter x0 to interpolate: ", 1)
	if err != nil {
		return err
	}
	y, err := interp.GregoryNewton(xs, ys, x0[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Interpolated value at x = %.4f is %.8f\n", x0[0], y)
	return nil
}
