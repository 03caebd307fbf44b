package numcalc

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// maxIdent is the maximum number of letters in a single function name token.
// Longer runs of letters continue as another token.
const maxIdent = 7

// eof is returned by peek past the end of the input.
const eof rune = -1

type lexer struct {
	src  []rune
	k    int
	toks []token
	buf  strings.Builder
}

// tokenize scans the entire input into tokens. The result is nil with no
// error if the input contains only whitespace.
func tokenize(src string) ([]token, error) {
	l := lexer{src: []rune(src)}
	for {
		more, err := l.next()
		if err != nil {
			return nil, err
		}
		if !more {
			return l.toks, nil
		}
	}
}

// peek returns the rune n runes ahead of the next unread rune, or eof.
func (l *lexer) peek(n int) rune {
	if l.k+n >= len(l.src) {
		return eof
	}
	return l.src[l.k+n]
}

// readRune consumes and returns the next rune.
func (l *lexer) readRune() rune {
	r := l.peek(0)
	if r != eof {
		l.k++
	}
	return r
}

// col is the column of the next unread rune.
func (l *lexer) col() int {
	return l.k + 1
}

// emit appends a token.
func (l *lexer) emit(tok token) {
	l.toks = append(l.toks, tok)
}

// operand returns whether the lexer is at a position where an operand is
// expected, i.e. at the start of input or after an operator or open paren.
func (l *lexer) operand() bool {
	if len(l.toks) == 0 {
		return true
	}
	switch l.toks[len(l.toks)-1].kind {
	case tokenOp, tokenLParen:
		return true
	default:
		return false
	}
}

// next scans the next token. The result is false with no error at the end of
// the input.
func (l *lexer) next() (bool, error) {
	for unicode.IsSpace(l.peek(0)) {
		l.k++
	}
	pos := l.col()
	r := l.peek(0)
	switch {
	case r == eof:
		return false, nil
	case startsNumber(r, l.peek(1)):
		l.scanNum()
	case (r == '+' || r == '-') && l.operand() && startsNumber(l.peek(1), l.peek(2)):
		// Signed literal, e.g. 3*-2 or (-2).
		l.scanNum()
	case r == '+' && l.operand():
		// Unary plus is a no-op. The lexer is still expecting an operand.
		l.readRune()
		return true, nil
	case r == '-' && l.operand():
		l.readRune()
		l.emit(token{kind: tokenOp, op: opNeg, text: "-", pos: pos})
	case isLetter(r):
		l.scanIdent()
	case r == '(':
		l.readRune()
		l.emit(token{kind: tokenLParen, text: "(", pos: pos})
	case r == ')':
		l.readRune()
		l.emit(token{kind: tokenRParen, text: ")", pos: pos})
	default:
		op := binop(r)
		if op == opNone {
			return false, &LexError{Col: pos, Char: r}
		}
		l.readRune()
		l.emit(token{kind: tokenOp, op: op, text: string(r), pos: pos})
	}
	l.implicit()
	return true, nil
}

// implicit inserts a multiplication if the last token ends an operand and the
// next rune starts one, e.g. 2x, x(x+1), )(, and 2sin(x).
func (l *lexer) implicit() {
	switch l.toks[len(l.toks)-1].kind {
	case tokenNum, tokenVar, tokenRParen:
		r := l.peek(0)
		if isDigit(r) || isLetter(r) || r == '(' {
			l.emit(token{kind: tokenOp, op: opMul, text: "*", pos: l.col()})
		}
	}
}

// scanNum scans a decimal literal with an optional sign, fraction, and
// exponent. An exponent marker is only part of the literal if at least one
// digit follows it, so 2e is 2 followed by the constant e.
func (l *lexer) scanNum() {
	defer l.buf.Reset()
	pos := l.col()
	if r := l.peek(0); r == '+' || r == '-' {
		l.buf.WriteRune(l.readRune())
	}
	l.digits()
	if l.peek(0) == '.' {
		l.buf.WriteRune(l.readRune())
		l.digits()
	}
	if r := l.peek(0); r == 'e' || r == 'E' {
		n := 1
		if s := l.peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			for i := 0; i < n; i++ {
				l.buf.WriteRune(l.readRune())
			}
			l.digits()
		}
	}
	text := l.buf.String()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// The scanner only accepts valid literals.
		panic("numcalc: invalid number " + strconv.Quote(text) + ": " + err.Error())
	}
	l.emit(token{kind: tokenNum, text: text, num: v, pos: pos})
}

// digits scans a possibly empty run of decimal digits into the buffer.
func (l *lexer) digits() {
	for isDigit(l.peek(0)) {
		l.buf.WriteRune(l.readRune())
	}
}

// scanIdent scans a run of letters. A run naming a known function is a
// function token. Otherwise, x and e are single-letter operands, so that xe
// and xsin(x) are products, and any other run is a function name which fails
// when evaluated.
func (l *lexer) scanIdent() {
	defer l.buf.Reset()
	pos := l.col()
	for l.buf.Len() < maxIdent && isLetter(l.peek(0)) {
		l.buf.WriteRune(l.readRune())
	}
	name := l.buf.String()
	fn := LookupFunc(name)
	if fn == NoFunc {
		switch name[0] {
		case 'x':
			// Consume only the first letter. pos is one past its index.
			l.k = pos
			l.emit(token{kind: tokenVar, text: "x", pos: pos})
			return
		case 'e':
			l.k = pos
			l.emit(token{kind: tokenNum, text: "e", num: math.E, pos: pos})
			return
		}
	}
	l.emit(token{kind: tokenFunc, fn: fn, text: name, pos: pos})
}

// startsNumber returns whether r followed by s begins a numeric literal.
func startsNumber(r, s rune) bool {
	return isDigit(r) || r == '.' && isDigit(s)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
