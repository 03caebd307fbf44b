package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/zephyrtronium/numcalc/interp"
	"github.com/zephyrtronium/numcalc/linalg"
)

func newInterpCommand() *cobra.Command {
	var (
		xs, ys []float64
		diffs  bool
	)
	cmd := &cobra.Command{
		Use:   "interp X...",
		Short: "Interpolate a table of equally spaced points with the Gregory-Newton formula",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseFloats(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, x := range at {
				y, err := interp.GregoryNewton(xs, ys, x)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Interpolated value at x = %.4f is %.8f\n", x, y)
			}
			if diffs {
				for i, row := range interp.ForwardDifferences(ys) {
					fmt.Fprintf(out, "Δ^%d: %v\n", i, row)
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64SliceVar(&xs, "xs", nil, "equally spaced nodes, comma separated")
	f.Float64SliceVar(&ys, "ys", nil, "values at the nodes, comma separated")
	f.BoolVar(&diffs, "table", false, "also print the forward difference table")
	return cmd
}

// parseMatrix parses rows of whitespace-separated numbers.
func parseMatrix(rows []string) (*mat.Dense, error) {
	r := make([][]float64, len(rows))
	for i, row := range rows {
		v, err := parseFloats(strings.Fields(row))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		r[i] = v
	}
	return linalg.FromRows(r)
}

func printMatrix(w io.Writer, m mat.Matrix) {
	fmt.Fprintf(w, "%.8g\n", mat.Formatted(m, mat.Squeeze()))
}

func newMatrixCommand(a *app) *cobra.Command {
	var (
		rows []string
		b    []float64
	)
	cmd := &cobra.Command{
		Use:   "matrix OP",
		Short: "Dense matrix operations: determinant, cofactor, adjoint, inverse, cholesky, gauss-seidel",
		Long: `Dense matrix operations.

Give the matrix with one --row per row, e.g. --row "4 1" --row "1 3".
Cholesky and gauss-seidel solve A x = b with the constants in --b.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"determinant", "cofactor", "adjoint", "inverse", "cholesky", "gauss-seidel"},
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMatrix(rows)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var r *mat.Dense
			switch args[0] {
			case "determinant":
				d, err := linalg.Determinant(m)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%.8g\n", d)
				return nil
			case "cofactor":
				r, err = linalg.Cofactor(m)
			case "adjoint":
				r, err = linalg.Adjoint(m)
			case "inverse":
				r, err = linalg.Inverse(m)
			case "cholesky", "gauss-seidel":
				if len(b) == 0 {
					return fmt.Errorf("%s needs constants in --b", args[0])
				}
				v := mat.NewVecDense(len(b), b)
				var x *mat.VecDense
				if args[0] == "cholesky" {
					x, err = linalg.Cholesky(m, v, a.cfg.Tolerance)
				} else {
					var iter int
					x, iter, err = linalg.GaussSeidel(m, v, a.cfg.Tolerance, a.cfg.MaxIter)
					a.log.WithField("iterations", iter).Debug("gauss-seidel finished")
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(out, "Solution vector x:")
				printMatrix(out, x)
				return nil
			default:
				return fmt.Errorf("unknown operation %q", args[0])
			}
			if err != nil {
				return err
			}
			printMatrix(out, r)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&rows, "row", nil, "matrix row of whitespace-separated numbers (repeat for each row)")
	f.Float64SliceVar(&b, "b", nil, "constant vector, comma separated")
	return cmd
}
