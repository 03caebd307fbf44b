package numcalc

import (
	"math"
	"strconv"
)

// token is a lexical token of an expression. After conversion to RPN, tokens
// are also the instructions of the evaluator.
type token struct {
	kind tokenKind
	// op is the operator of a tokenOp.
	op opKind
	// fn is the function of a tokenFunc. It is NoFunc if text does not name
	// a known function, which is an error only once the token is evaluated.
	fn Func
	// text is the source text of the token, or "*" for an implicit
	// multiplication.
	text string
	// num is the value of a tokenNum.
	num float64
	// pos is the rune column where the token starts, counting from 1.
	pos int
}

func (t token) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

// rpn is the token as it appears in a rendered RPN sequence.
func (t token) rpn() string {
	if t.kind == tokenOp {
		return t.op.String()
	}
	return t.text
}

// arity is the number of operands the token consumes when evaluated.
func (t token) arity() int {
	switch t.kind {
	case tokenFunc:
		return 1
	case tokenOp:
		if t.op == opNeg {
			return 1
		}
		return 2
	default:
		return 0
	}
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal or the constant e.
	tokenNum
	// tokenVar is the variable x.
	tokenVar
	// tokenOp is an operator, including implicit multiplication.
	tokenOp
	// tokenFunc is a function name.
	tokenFunc
	// tokenLParen is (.
	tokenLParen
	// tokenRParen is ).
	tokenRParen
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

type opKind int8

const (
	opNone opKind = iota
	opAdd
	opSub
	opMul
	opDiv
	opPow
	// opNeg is unary minus.
	opNeg
)

func (op opKind) String() string {
	switch op {
	case opAdd:
		return "+"
	case opSub:
		return "-"
	case opMul:
		return "*"
	case opDiv:
		return "/"
	case opPow:
		return "^"
	case opNeg:
		return "neg"
	default:
		return "opKind(" + strconv.Itoa(int(op)) + ")"
	}
}

// binop gets the binary operator for a rune. If r is not an operator, the
// result is opNone.
func binop(r rune) opKind {
	switch r {
	case '+':
		return opAdd
	case '-':
		return opSub
	case '*':
		return opMul
	case '/':
		return opDiv
	case '^':
		return opPow
	default:
		return opNone
	}
}

// apply computes a op b. For opNeg, b is ignored.
func (op opKind) apply(a, b float64) float64 {
	switch op {
	case opAdd:
		return a + b
	case opSub:
		return a - b
	case opMul:
		return a * b
	case opDiv:
		return a / b
	case opPow:
		return math.Pow(a, b)
	case opNeg:
		return -a
	default:
		panic("numcalc: apply of invalid operator " + op.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// yields returns whether an operator p on the operator stack must be moved
// to the output before pushing next.
func (p operator) yields(next operator) bool {
	if p.prec != next.prec {
		return p.prec > next.prec
	}
	return !next.right
}

// precedence gets the precedence of an operator kind.
func (op opKind) precedence() operator {
	switch op {
	case opAdd, opSub:
		return operator{1, false}
	case opMul, opDiv:
		return operator{2, false}
	case opPow:
		return operator{3, true}
	case opNeg:
		// Negation applies to the primary that follows it, so -x^2 is (-x)^2
		// and 2^-x is 2^(-x).
		return operator{4, true}
	default:
		panic("numcalc: precedence of invalid operator " + op.String())
	}
}
