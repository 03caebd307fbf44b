package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zephyrtronium/numcalc"
)

// compile compiles src and checks its function names. Errors name the kind
// of problem and its column.
func compile(src string) (*numcalc.Expr, error) {
	e, err := numcalc.Compile(src)
	if err == nil {
		err = e.Validate()
	}
	if err != nil {
		return nil, describe(src, err)
	}
	return e, nil
}

// describe annotates an expression error with its kind and column.
func describe(src string, err error) error {
	kind := numcalc.ErrorKind(err)
	if pos := numcalc.ErrorPos(err); pos > 0 {
		return fmt.Errorf("%s error in %q at column %d: %w", kind, src, pos, err)
	}
	return fmt.Errorf("%s error in %q: %w", kind, src, err)
}

// parseFloats parses each of ss as a number.
func parseFloats(ss []string) ([]float64, error) {
	r := make([]float64, len(ss))
	for i, s := range ss {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s, err)
		}
		r[i] = f
	}
	return r, nil
}
