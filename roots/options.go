package roots

import (
	"io"
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Option is an option for root finding.
type Option interface {
	option(settings) settings
}

type (
	tolopt  float64
	iteropt int
	logopt  struct {
		log logrus.FieldLogger
	}
)

// settings holds the parameters of a search. It is also an Option.
type settings struct {
	// tol is the tolerance on function values, bracket widths, and steps,
	// depending on the method.
	tol float64
	// maxIter is the maximum number of iterations before giving up.
	maxIter int
	// log receives a debug entry per iteration.
	log logrus.FieldLogger
}

const (
	// DefaultTol is the tolerance used without a Tol option.
	DefaultTol = 1e-8
	// DefaultMaxIter is the iteration limit used without a MaxIter option.
	DefaultMaxIter = 200
)

// discard is the logger used without a Logger option.
var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		s = opt.option(s)
	}
	if s.tol == 0 {
		s.tol = DefaultTol
	}
	if s.maxIter == 0 {
		s.maxIter = DefaultMaxIter
	}
	if s.log == nil {
		s.log = discard
	}
	return s
}

// Tol sets the convergence tolerance. Panics if tol is not positive and
// finite.
func Tol(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 1) {
		panic("roots: invalid tolerance " + strconv.FormatFloat(tol, 'g', -1, 64))
	}
	return tolopt(tol)
}

func (o tolopt) option(s settings) settings {
	s.tol = float64(o)
	return s
}

// MaxIter sets the maximum number of iterations. Panics if n is not positive.
func MaxIter(n int) Option {
	if n <= 0 {
		panic("roots: invalid iteration limit " + strconv.Itoa(n))
	}
	return iteropt(n)
}

func (o iteropt) option(s settings) settings {
	s.maxIter = int(o)
	return s
}

// Logger sets a logger to trace each iteration at debug level.
func Logger(log logrus.FieldLogger) Option {
	return logopt{log}
}

func (o logopt) option(s settings) settings {
	s.log = o.log
	return s
}

// Preset combines options into one, for applying the same configuration to
// many searches. Options applied after a preset override it.
func Preset(opts ...Option) Option {
	var s settings
	for _, opt := range opts {
		s = opt.option(s)
	}
	return &s
}

func (o *settings) option(s settings) settings {
	if o.tol != 0 {
		s.tol = o.tol
	}
	if o.maxIter != 0 {
		s.maxIter = o.maxIter
	}
	if o.log != nil {
		s.log = o.log
	}
	return s
}

// trace logs one iteration of a method.
func (s *settings) trace(method Method, iter int, fields logrus.Fields) {
	fields["method"] = method
	fields["iter"] = iter
	s.log.WithFields(fields).Debug("root iteration")
}
