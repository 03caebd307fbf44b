// Package commands implements the numcalc command line.
package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/numcalc/internal/config"
	"github.com/zephyrtronium/numcalc/internal/logging"
	"github.com/zephyrtronium/numcalc/roots"
)

// app is the state shared by all subcommands. It is filled in before any
// subcommand runs.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *logrus.Logger
	cleanup func()
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, cleanup, err := logging.New(cfg.Logger)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.cleanup = cfg, log, cleanup
	return nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}

// rootOpts returns root-finding options from the configuration.
func (a *app) rootOpts() roots.Option {
	return roots.Preset(roots.Tol(a.cfg.Tolerance), roots.MaxIter(a.cfg.MaxIter), roots.Logger(a.log))
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"tol":        "tolerance",
	"max-iter":   "max_iter",
	"log-level":  "logger.level",
	"log-format": "logger.format",
}

// Command is the numcalc command line.
type Command struct {
	*cobra.Command
	a *app
}

// ExecuteArgs executes the command line with args. Arguments that begin
// with - but are not flags of the subcommand, like the expression -x^2 or the
// point -2, are passed to it as arguments. The log file, if any, is closed
// before ExecuteArgs returns, even when the command fails.
func (c *Command) ExecuteArgs(args []string) error {
	defer c.a.close()
	c.SetArgs(separate(c.Command, args))
	return c.Execute()
}

// NewRootCmd creates the root command
func NewRootCmd() *Command {
	a := &app{v: config.New()}
	rootCmd := &cobra.Command{
		Use:           "numcalc",
		Short:         "Compile expressions of x and solve, differentiate, integrate, and interpolate them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	f := rootCmd.PersistentFlags()
	f.StringVarP(&a.cfgFile, "config", "c", "", "config file (default numcalc.yaml in ., $HOME/.numcalc, or /etc/numcalc)")
	f.Float64("tol", roots.DefaultTol, "convergence tolerance of iterative methods")
	f.Int("max-iter", roots.DefaultMaxIter, "iteration limit of iterative methods")
	f.String("log-level", "info", "log level; debug traces each iteration")
	f.String("log-format", "text", "log format: text or json")
	for flag, key := range flagKeys {
		if err := a.v.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(
		newEvalCommand(a),
		newRPNCommand(),
		newRootCommand(a),
		newDerivCommand(a),
		newIntegrateCommand(a),
		newInterpCommand(),
		newMatrixCommand(a),
		newMenuCommand(a),
		newServeCommand(a),
		NewVersionCommand(),
	)

	return &Command{Command: rootCmd, a: a}
}
