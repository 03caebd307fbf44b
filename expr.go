package numcalc

import (
	"unicode/utf8"
)

// Expr is a compiled expression of the variable x. An Expr is immutable, so
// it is safe to evaluate concurrently.
type Expr struct {
	// src is the source text.
	src string
	// rpn is the compiled instruction sequence.
	rpn []token
	// depth is the maximum number of operands on the stack during
	// evaluation.
	depth int
}

// stackBuf is the operand stack size that evaluation can use without
// allocating.
const stackBuf = 16

// Compile compiles an expression. Function names are resolved when the
// expression is evaluated, so a call to an unknown function compiles
// successfully; use Validate to detect it up front.
func Compile(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &EmptyExpressionError{Col: utf8.RuneCountInString(src) + 1}
	}
	rpn, err := toRPN(toks)
	if err != nil {
		return nil, err
	}
	if len(rpn) == 0 {
		// Only parentheses, e.g. "()".
		return nil, &EmptyExpressionError{Col: toks[len(toks)-1].pos}
	}
	depth, err := check(rpn)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, rpn: rpn, depth: depth}, nil
}

// MustCompile is like Compile but panics if the expression does not compile.
func MustCompile(src string) *Expr {
	e, err := Compile(src)
	if err != nil {
		panic("numcalc: compiling " + src + ": " + err.Error())
	}
	return e
}

// Eval evaluates the expression with the variable x. The only possible error
// is *UnknownFunctionError. Domain problems like division by zero produce NaN
// or infinities rather than errors.
func (e *Expr) Eval(x float64) (float64, error) {
	var buf [stackBuf]float64
	stack := buf[:0]
	if e.depth > len(buf) {
		stack = make([]float64, 0, e.depth)
	}
	return eval(e.rpn, x, stack)
}

// Call evaluates the expression with the variable x. It panics if evaluation
// fails, which can only happen if the expression calls an unknown function
// and Validate would have reported it. Call is suitable for passing to
// numerical methods as a func(float64) float64.
func (e *Expr) Call(x float64) float64 {
	r, err := e.Eval(x)
	if err != nil {
		panic(err)
	}
	return r
}

// Validate returns an *UnknownFunctionError for the first call to an unknown
// function in the expression, or nil if all functions are known. If Validate
// returns nil, Call never panics.
func (e *Expr) Validate() error {
	for _, tok := range e.rpn {
		if tok.kind == tokenFunc && tok.fn == NoFunc {
			return &UnknownFunctionError{Col: tok.pos, Name: tok.text}
		}
	}
	return nil
}

// Source returns the text the expression was compiled from.
func (e *Expr) Source() string {
	return e.src
}

// String returns the compiled expression in reverse Polish notation, with
// tokens separated by spaces. Unary minus is written as neg.
func (e *Expr) String() string {
	return format(e.rpn)
}

// EvalString is a shortcut to compile and evaluate an expression once.
func EvalString(src string, x float64) (float64, error) {
	e, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(x)
}
