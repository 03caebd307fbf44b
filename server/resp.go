package server

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zephyrtronium/numcalc"
	"github.com/zephyrtronium/numcalc/calculus"
	"github.com/zephyrtronium/numcalc/interp"
	"github.com/zephyrtronium/numcalc/linalg"
	"github.com/zephyrtronium/numcalc/roots"
)

// number is a float64 that encodes NaN and infinities as the JSON strings
// "NaN", "+Inf", and "-Inf".
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`), nil
	case math.IsInf(f, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Inf"`), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

func numbers(fs []float64) []number {
	r := make([]number, len(fs))
	for i, f := range fs {
		r[i] = number(f)
	}
	return r
}

func table(rows [][]float64) [][]number {
	r := make([][]number, len(rows))
	for i, row := range rows {
		r[i] = numbers(row)
	}
	return r
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
	// Kind classifies expression errors.
	Kind string `json:"kind,omitempty"`
	// Pos is the column of an expression error.
	Pos int `json:"pos,omitempty"`
}

// badInput lists errors that mean the request itself is wrong.
var badInput = []error{
	roots.ErrMethod,
	roots.ErrDerivative,
	roots.ErrStep,
	calculus.ErrStep,
	calculus.ErrScheme,
	calculus.ErrIntervals,
	calculus.ErrRule,
	interp.ErrLength,
	interp.ErrSpacing,
	linalg.ErrShape,
	linalg.ErrNotSymmetric,
	errLimit,
	errOp,
}

// status gives the HTTP status for an error. Expression errors and invalid
// parameters are 400. Methods that ran and failed are 422.
func status(err error) int {
	if numcalc.ErrorKind(err) != "" {
		return http.StatusBadRequest
	}
	for _, e := range badInput {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	return http.StatusUnprocessableEntity
}

// fail writes err as an error response.
func (h *Handler) fail(c *gin.Context, err error) {
	code := status(err)
	h.log.WithError(err).WithField("status", code).Warn("request failed")
	c.JSON(code, errorResponse{
		Error: err.Error(),
		Kind:  numcalc.ErrorKind(err),
		Pos:   numcalc.ErrorPos(err),
	})
}

// badRequest writes a request binding error.
func (h *Handler) badRequest(c *gin.Context, err error) {
	h.log.WithError(err).Warn("invalid request")
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// compile compiles src and checks that all its functions are known, so the
// result's Call method is safe to pass to the numerical methods.
func compile(src string) (*numcalc.Expr, error) {
	e, err := numcalc.Compile(src)
	if err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
