package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEvalCommand(a *app) *cobra.Command {
	var verb string
	cmd := &cobra.Command{
		Use:   "eval EXPR [X...]",
		Short: "Evaluate an expression at each X, or at 0 if none is given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := compile(args[0])
			if err != nil {
				return err
			}
			xs, err := parseFloats(args[1:])
			if err != nil {
				return err
			}
			if len(xs) == 0 {
				xs = []float64{0}
			}
			a.log.WithField("rpn", e.String()).Debug("compiled")
			out := cmd.OutOrStdout()
			for _, x := range xs {
				fmt.Fprintf(out, verb+"\n", e.Call(x))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&verb, "fmt", "%g", "result formatting verb")
	return cmd
}

func newRPNCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rpn EXPR...",
		Short: "Print expressions in reverse Polish notation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, src := range args {
				e, err := compile(src)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}
