// Package config loads numcalc configuration from defaults, an optional YAML
// file, NUMCALC_* environment variables, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrInvalid means a configuration value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the numcalc configuration.
type Config struct {
	// Tolerance is the convergence tolerance of iterative methods.
	Tolerance float64
	// MaxIter is the iteration limit of iterative methods.
	MaxIter int
	// Intervals is the default number of integration intervals.
	Intervals int
	// Step is the default difference step.
	Step   float64
	Logger *Logger
	Server *Server
	Viper  *viper.Viper
}

// Logger is the logger configuration.
type Logger struct {
	// Level is a logrus level name.
	Level string
	// Format is text or json.
	Format string
	// Output is stdout, stderr, or file.
	Output string
	// OutputFile is the log path when Output is file.
	OutputFile string
}

// Server is the HTTP server configuration.
type Server struct {
	Addr string
	// Mode is the gin mode: debug, release, or test.
	Mode string
	// MaxOrder is the largest matrix order the server accepts.
	MaxOrder int
	// MaxIter is the largest iteration limit a request may ask for.
	MaxIter int
	// MaxIntervals is the largest number of integration intervals a request
	// may ask for.
	MaxIntervals int
}

// New creates a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("tolerance", 1e-8)
	v.SetDefault("max_iter", 200)
	v.SetDefault("intervals", 100)
	v.SetDefault("step", 1e-5)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.output_file", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_order", 8)
	v.SetDefault("server.max_iter", 10000)
	v.SetDefault("server.max_intervals", 100000)

	v.SetEnvPrefix("numcalc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration into v. If configPath is empty, numcalc.yaml
// is searched for in the working directory, $HOME/.numcalc, and /etc/numcalc,
// and a missing file is not an error.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("numcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.numcalc")
		v.AddConfigPath("/etc/numcalc")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Tolerance: v.GetFloat64("tolerance"),
		MaxIter:   v.GetInt("max_iter"),
		Intervals: v.GetInt("intervals"),
		Step:      v.GetFloat64("step"),
		Logger:    getLoggerConfig(v),
		Server:    getServerConfig(v),
		Viper:     v,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      v.GetString("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}

func getServerConfig(v *viper.Viper) *Server {
	return &Server{
		Addr:         v.GetString("server.addr"),
		Mode:         v.GetString("server.mode"),
		MaxOrder:     v.GetInt("server.max_order"),
		MaxIter:      v.GetInt("server.max_iter"),
		MaxIntervals: v.GetInt("server.max_intervals"),
	}
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	switch {
	case !positive(c.Tolerance):
		return fmt.Errorf("%w: tolerance must be positive, have %g", ErrInvalid, c.Tolerance)
	case c.MaxIter <= 0:
		return fmt.Errorf("%w: max_iter must be positive, have %d", ErrInvalid, c.MaxIter)
	case c.Intervals <= 0:
		return fmt.Errorf("%w: intervals must be positive, have %d", ErrInvalid, c.Intervals)
	case !positive(c.Step):
		return fmt.Errorf("%w: step must be positive, have %g", ErrInvalid, c.Step)
	}
	if _, err := logrus.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("%w: logger.level: %v", ErrInvalid, err)
	}
	switch c.Logger.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logger.format must be text or json, have %q", ErrInvalid, c.Logger.Format)
	}
	switch c.Logger.Output {
	case "stdout", "stderr":
	case "file":
		if c.Logger.OutputFile == "" {
			return fmt.Errorf("%w: logger.output is file but logger.output_file is empty", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: logger.output must be stdout, stderr, or file, have %q", ErrInvalid, c.Logger.Output)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode must be debug, release, or test, have %q", ErrInvalid, c.Server.Mode)
	}
	switch {
	case c.Server.MaxOrder <= 0:
		return fmt.Errorf("%w: server.max_order must be positive, have %d", ErrInvalid, c.Server.MaxOrder)
	case c.Server.MaxIter <= 0:
		return fmt.Errorf("%w: server.max_iter must be positive, have %d", ErrInvalid, c.Server.MaxIter)
	case c.Server.MaxIntervals <= 0:
		return fmt.Errorf("%w: server.max_intervals must be positive, have %d", ErrInvalid, c.Server.MaxIntervals)
	}
	return nil
}
