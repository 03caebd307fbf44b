package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/mat"

	"github.com/zephyrtronium/numcalc"
	"github.com/zephyrtronium/numcalc/calculus"
	"github.com/zephyrtronium/numcalc/interp"
	"github.com/zephyrtronium/numcalc/linalg"
	"github.com/zephyrtronium/numcalc/roots"
)

var (
	errLimit = errors.New("request exceeds the server limit")
	errOp    = errors.New("unknown matrix operation")
)

// limit rejects a requested size above most.
func limit(name string, n, most int) error {
	if n > most {
		return fmt.Errorf("%w: %s %d, limit %d", errLimit, name, n, most)
	}
	return nil
}

// Health reports that the server is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Functions lists the functions expressions can call.
func (h *Handler) Functions(c *gin.Context) {
	fs := numcalc.Funcs()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	c.JSON(http.StatusOK, gin.H{"functions": names})
}

type evalRequest struct {
	Expr string    `json:"expr" binding:"required"`
	X    []float64 `json:"x"`
}

type evalResponse struct {
	Source string   `json:"source"`
	RPN    string   `json:"rpn"`
	Values []number `json:"values"`
}

// Eval compiles an expression and evaluates it at each of the given points.
func (h *Handler) Eval(c *gin.Context) {
	var req evalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	e, err := compile(req.Expr)
	if err != nil {
		h.fail(c, err)
		return
	}
	ys := make([]float64, len(req.X))
	for i, x := range req.X {
		ys[i] = e.Call(x)
	}
	c.JSON(http.StatusOK, evalResponse{Source: e.Source(), RPN: e.String(), Values: numbers(ys)})
}

type rootsRequest struct {
	Method roots.Method `json:"method" binding:"required"`
	Expr   string       `json:"expr" binding:"required"`
	// Deriv is the derivative for Newton's method.
	Deriv string  `json:"derivative"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	// Step is the initial step of the scan method.
	Step    float64 `json:"step" binding:"gte=0"`
	Tol     float64 `json:"tol" binding:"gte=0"`
	MaxIter int     `json:"max_iter" binding:"gte=0"`
}

type rootsResponse struct {
	Method roots.Method `json:"method"`
	roots.Result
}

// Roots finds a root of an expression.
func (h *Handler) Roots(c *gin.Context) {
	var req rootsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := limit("max_iter", req.MaxIter, h.cfg.Server.MaxIter); err != nil {
		h.fail(c, err)
		return
	}
	e, err := compile(req.Expr)
	if err != nil {
		h.fail(c, err)
		return
	}
	p := roots.Problem{F: e.Call, A: req.A, B: req.B, Step: req.Step}
	if req.Deriv != "" {
		d, err := compile(req.Deriv)
		if err != nil {
			h.fail(c, fmt.Errorf("derivative: %w", err))
			return
		}
		p.DF = d.Call
	}

	opts := []roots.Option{h.roots, roots.Logger(h.log.WithField("expr", req.Expr))}
	if req.Tol > 0 {
		opts = append(opts, roots.Tol(req.Tol))
	}
	if req.MaxIter > 0 {
		opts = append(opts, roots.MaxIter(req.MaxIter))
	}
	r, err := roots.Solve(req.Method, p, opts...)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rootsResponse{Method: req.Method, Result: r})
}

type derivativeRequest struct {
	Expr   string          `json:"expr" binding:"required"`
	Scheme calculus.Scheme `json:"scheme"`
	X      float64         `json:"x"`
	// H is the step. Zero uses the configured step.
	H float64 `json:"h" binding:"gte=0"`
}

type derivativeResponse struct {
	Scheme calculus.Scheme `json:"scheme"`
	Value  number          `json:"value"`
}

// Derivative approximates the derivative of an expression at a point.
func (h *Handler) Derivative(c *gin.Context) {
	var req derivativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	e, err := compile(req.Expr)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Scheme == "" {
		req.Scheme = calculus.SchemeCentral
	}
	if req.H == 0 {
		req.H = h.cfg.Step
	}
	d, err := calculus.Derivative(req.Scheme, e.Call, req.X, req.H)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, derivativeResponse{Scheme: req.Scheme, Value: number(d)})
}

type integrateRequest struct {
	Expr string        `json:"expr" binding:"required"`
	Rule calculus.Rule `json:"rule"`
	A    float64       `json:"a"`
	B    float64       `json:"b"`
	// N is the number of intervals. Zero uses the configured count.
	N int `json:"n" binding:"gte=0"`
}

type integrateResponse struct {
	Rule  calculus.Rule `json:"rule"`
	N     int           `json:"n"`
	Value number        `json:"value"`
}

// Integrate approximates the integral of an expression over an interval.
func (h *Handler) Integrate(c *gin.Context) {
	var req integrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if err := limit("n", req.N, h.cfg.Server.MaxIntervals); err != nil {
		h.fail(c, err)
		return
	}
	e, err := compile(req.Expr)
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Rule == "" {
		req.Rule = calculus.RuleSimpson13
	}
	if req.N == 0 {
		req.N = h.cfg.Intervals
	}
	v, err := calculus.Integrate(req.Rule, e.Call, req.A, req.B, req.N)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, integrateResponse{Rule: req.Rule, N: req.N, Value: number(v)})
}

type interpolateRequest struct {
	Xs []float64 `json:"xs" binding:"required,min=1"`
	Ys []float64 `json:"ys" binding:"required,min=1"`
	X  []float64 `json:"x" binding:"required,min=1"`
}

type interpolateResponse struct {
	Values      []number   `json:"values"`
	Differences [][]number `json:"differences"`
}

// Interpolate evaluates the Gregory-Newton polynomial through a table at
// each of the given points.
func (h *Handler) Interpolate(c *gin.Context) {
	var req interpolateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	ys := make([]float64, len(req.X))
	for i, x := range req.X {
		y, err := interp.GregoryNewton(req.Xs, req.Ys, x)
		if err != nil {
			h.fail(c, err)
			return
		}
		ys[i] = y
	}
	c.JSON(http.StatusOK, interpolateResponse{
		Values:      numbers(ys),
		Differences: table(interp.ForwardDifferences(req.Ys)),
	})
}

type matrixRequest struct {
	// Op is determinant, cofactor, adjoint, inverse, cholesky, or
	// gauss-seidel.
	Op string      `json:"op" binding:"required"`
	A  [][]float64 `json:"a" binding:"required"`
	// B is the constant vector for cholesky and gauss-seidel.
	B []float64 `json:"b"`
	// Eps is the diagonal clamp for cholesky. Zero uses the configured
	// tolerance.
	Eps float64 `json:"eps" binding:"gte=0"`
	// Tol and MaxIter control gauss-seidel. Zero uses the configuration.
	Tol     float64 `json:"tol" binding:"gte=0"`
	MaxIter int     `json:"max_iter" binding:"gte=0"`
}

type matrixResponse struct {
	Determinant *number    `json:"determinant,omitempty"`
	Matrix      [][]number `json:"matrix,omitempty"`
	X           []number   `json:"x,omitempty"`
	Iterations  int        `json:"iterations,omitempty"`
}

// Matrix performs a dense linear algebra operation.
func (h *Handler) Matrix(c *gin.Context) {
	var req matrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	err := limit("order", len(req.A), h.cfg.Server.MaxOrder)
	if err == nil {
		err = limit("max_iter", req.MaxIter, h.cfg.Server.MaxIter)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	r, err := h.matrix(&req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *Handler) matrix(req *matrixRequest) (*matrixResponse, error) {
	a, err := linalg.FromRows(req.A)
	if err != nil {
		return nil, err
	}
	var m *mat.Dense
	switch req.Op {
	case "determinant":
		d, err := linalg.Determinant(a)
		if err != nil {
			return nil, err
		}
		n := number(d)
		return &matrixResponse{Determinant: &n}, nil
	case "cofactor":
		m, err = linalg.Cofactor(a)
	case "adjoint":
		m, err = linalg.Adjoint(a)
	case "inverse":
		m, err = linalg.Inverse(a)
	case "cholesky":
		eps := req.Eps
		if eps == 0 {
			eps = h.cfg.Tolerance
		}
		b, err := vector(req.B)
		if err != nil {
			return nil, err
		}
		x, err := linalg.Cholesky(a, b, eps)
		if err != nil {
			return nil, err
		}
		return &matrixResponse{X: numbers(x.RawVector().Data)}, nil
	case "gauss-seidel":
		tol, maxIter := req.Tol, req.MaxIter
		if tol == 0 {
			tol = h.cfg.Tolerance
		}
		if maxIter == 0 {
			maxIter = h.cfg.MaxIter
		}
		b, err := vector(req.B)
		if err != nil {
			return nil, err
		}
		x, iter, err := linalg.GaussSeidel(a, b, tol, maxIter)
		if err != nil {
			return nil, err
		}
		return &matrixResponse{X: numbers(x.RawVector().Data), Iterations: iter}, nil
	default:
		return nil, fmt.Errorf("%w %q", errOp, req.Op)
	}
	if err != nil {
		return nil, err
	}
	return &matrixResponse{Matrix: table(linalg.Rows(m))}, nil
}

// vector converts the constants of a system.
func vector(b []float64) (*mat.VecDense, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: no constants", linalg.ErrShape)
	}
	return mat.NewVecDense(len(b), b), nil
}
