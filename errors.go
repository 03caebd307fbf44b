package numcalc

import (
	"errors"
	"strconv"
)

// LexError indicates a character outside the expression alphabet. It
// implements InputError.
type LexError struct {
	// Col is the position of the character.
	Col int
	// Char is the unexpected character.
	Char rune
}

func (err *LexError) Error() string {
	return errpos(err.Col, "unexpected character "+strconv.QuoteRune(err.Char))
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParenError indicates unbalanced parentheses. It implements InputError.
type ParenError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Unclosed is true if the unmatched parenthesis is an open paren, false
	// if it is a close paren.
	Unclosed bool
}

func (err *ParenError) Error() string {
	if err.Unclosed {
		return errpos(err.Col, "unbalanced parentheses: ( with no )")
	}
	return errpos(err.Col, "unbalanced parentheses: ) with no (")
}

func (err *ParenError) Pos() int {
	return err.Col
}

// EmptyExpressionError indicates input with no expression in it. It
// implements InputError.
type EmptyExpressionError struct {
	// Col is the position where an expression was expected to end.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no expression at end")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// StackUnderflowError indicates an operator or function without enough
// operands, as in "2+" or "*3". Compile reports it for such inputs, so it
// never occurs when evaluating a compiled Expr. It implements InputError.
type StackUnderflowError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator or function name.
	Op string
	// Need and Have are the number of operands required and available.
	Need, Have int
}

func (err *StackUnderflowError) Error() string {
	return errpos(err.Col, "missing operand: "+strconv.Quote(err.Op)+" needs "+strconv.Itoa(err.Need)+" but has "+strconv.Itoa(err.Have))
}

func (err *StackUnderflowError) Pos() int {
	return err.Col
}

// MalformedExpressionError indicates an RPN sequence that does not reduce to
// exactly one value, as in "2 3". Like StackUnderflowError, Compile reports it
// and evaluation of a compiled Expr does not.
type MalformedExpressionError struct {
	// Residual is the number of values left after evaluation.
	Residual int
}

func (err *MalformedExpressionError) Error() string {
	if err.Residual == 0 {
		return "malformed expression: no value"
	}
	return "malformed expression: " + strconv.Itoa(err.Residual) + " values without operators between them"
}

// UnknownFunctionError is an error from evaluating a call to a function that
// is not one of the known Funcs. It implements InputError.
type UnknownFunctionError struct {
	// Col is the position of the function name.
	Col int
	// Name is the unknown name.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input, except MalformedExpressionError, implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*StackUnderflowError)(nil)
	_ InputError = (*UnknownFunctionError)(nil)
)

// ErrorKind classifies an error from Compile or Eval by a short name: lex,
// paren, empty, underflow, malformed, or unknown-function. Other errors,
// including nil, give the empty string.
func ErrorKind(err error) string {
	var (
		lex       *LexError
		paren     *ParenError
		empty     *EmptyExpressionError
		underflow *StackUnderflowError
		malformed *MalformedExpressionError
		unknown   *UnknownFunctionError
	)
	switch {
	case errors.As(err, &lex):
		return "lex"
	case errors.As(err, &paren):
		return "paren"
	case errors.As(err, &empty):
		return "empty"
	case errors.As(err, &underflow):
		return "underflow"
	case errors.As(err, &malformed):
		return "malformed"
	case errors.As(err, &unknown):
		return "unknown-function"
	default:
		return ""
	}
}

// ErrorPos returns the position of an InputError anywhere in err's chain, or
// 0 if there is none.
func ErrorPos(err error) int {
	var ie InputError
	if errors.As(err, &ie) {
		return ie.Pos()
	}
	return 0
}
