package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/numcalc/calculus"
	"github.com/zephyrtronium/numcalc/roots"
)

func methodNames() string {
	ms := roots.Methods()
	s := make([]string, len(ms))
	for i, m := range ms {
		s[i] = string(m)
	}
	return strings.Join(s, ", ")
}

func newRootCommand(a *app) *cobra.Command {
	var (
		method string
		deriv  string
		p      roots.Problem
	)
	cmd := &cobra.Command{
		Use:   "root EXPR",
		Short: "Find a root of an expression",
		Long: `Find a root of an expression.

Bisection and regula-falsi search the bracket [--a, --b]. Scan starts at --a
and steps by --step. Newton and secant start at --a; newton also needs
--deriv.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := compile(args[0])
			if err != nil {
				return err
			}
			p.F = e.Call
			if deriv != "" {
				d, err := compile(deriv)
				if err != nil {
					return fmt.Errorf("derivative: %w", err)
				}
				p.DF = d.Call
			}
			log := a.log.WithField("expr", args[0])
			r, err := roots.Solve(roots.Method(method), p, a.rootOpts(), roots.Logger(log))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "x ~= %.8f\n", r.X)
			log.WithFields(logrus.Fields{"x": r.X, "fx": r.Fx, "iterations": r.Iter}).Info("found root")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&method, "method", "m", string(roots.MethodBisection), "method: "+methodNames())
	f.StringVar(&deriv, "deriv", "", "derivative of EXPR for newton")
	f.Float64Var(&p.A, "a", -10, "lower bound, or the initial point")
	f.Float64Var(&p.B, "b", 10, "upper bound")
	f.Float64Var(&p.Step, "step", 0.1, "initial step for scan")
	return cmd
}

func newDerivCommand(a *app) *cobra.Command {
	var (
		scheme string
		x, h   float64
	)
	cmd := &cobra.Command{
		Use:   "deriv EXPR",
		Short: "Approximate the derivative of an expression at a point",
		Long: `Approximate the derivative of an expression at a point.

A bare -x is the point flag. Write the expression -x as (-x) or after --.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := compile(args[0])
			if err != nil {
				return err
			}
			if h == 0 {
				h = a.cfg.Step
			}
			d, err := calculus.Derivative(calculus.Scheme(scheme), e.Call, x, h)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "f'(%.4f) ~= %.8f\n", x, d)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&scheme, "scheme", "s", string(calculus.SchemeCentral), "difference scheme: backward, forward, or central")
	f.Float64VarP(&x, "x", "x", 0, "point")
	f.Float64Var(&h, "h", 0, "step (default from config)")
	return cmd
}

func newIntegrateCommand(a *app) *cobra.Command {
	var (
		rules []string
		lo    float64
		hi    float64
		n     int
	)
	cmd := &cobra.Command{
		Use:   "integrate EXPR",
		Short: "Approximate the integral of an expression over [a, b]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := compile(args[0])
			if err != nil {
				return err
			}
			if n == 0 {
				n = a.cfg.Intervals
			}
			out := cmd.OutOrStdout()
			for _, r := range rules {
				v, err := calculus.Integrate(calculus.Rule(r), e.Call, lo, hi, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s result: %.8f\n", r, v)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&rules, "rule", "r", []string{string(calculus.RuleSimpson13)}, "rules: trapezoid, trapezoid-composite, simpson13, simpson38")
	f.Float64Var(&lo, "a", 0, "lower limit")
	f.Float64Var(&hi, "b", 1, "upper limit")
	f.IntVarP(&n, "n", "n", 0, "number of intervals (default from config)")
	return cmd
}
