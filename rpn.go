package numcalc

import (
	"strings"
)

// toRPN converts infix tokens to reverse Polish notation using the
// shunting-yard algorithm. Parentheses do not appear in the result.
func toRPN(toks []token) ([]token, error) {
	out := make([]token, 0, len(toks))
	var stack []token
	for _, tok := range toks {
		switch tok.kind {
		case tokenNum, tokenVar:
			out = append(out, tok)
		case tokenFunc, tokenLParen:
			// Functions are output once their argument group closes.
			stack = append(stack, tok)
		case tokenOp:
			if tok.op == opNeg {
				// Prefix operators have no left operand to wait on.
				stack = append(stack, tok)
				continue
			}
			prec := tok.op.precedence()
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.kind == tokenLParen {
					break
				}
				if top.kind == tokenOp && !top.op.precedence().yields(prec) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case tokenRParen:
			for {
				if len(stack) == 0 {
					return nil, &ParenError{Col: tok.pos}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == tokenLParen {
					break
				}
				out = append(out, top)
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == tokenFunc {
				// Bind the function to the group that just closed.
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
		default:
			panic("numcalc: unknown token: " + tok.String())
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind == tokenLParen {
			return nil, &ParenError{Col: top.pos, Unclosed: true}
		}
		out = append(out, top)
	}
	return out, nil
}

// check verifies that evaluating an RPN sequence never pops from an empty
// stack and leaves exactly one value. The result is the maximum stack depth
// evaluation reaches.
func check(rpn []token) (int, error) {
	n, depth := 0, 0
	for _, tok := range rpn {
		need := tok.arity()
		if n < need {
			return 0, &StackUnderflowError{Col: tok.pos, Op: tok.rpn(), Need: need, Have: n}
		}
		n += 1 - need
		if n > depth {
			depth = n
		}
	}
	if n != 1 {
		return 0, &MalformedExpressionError{Residual: n}
	}
	return depth, nil
}

// format renders an RPN sequence with tokens separated by spaces.
func format(rpn []token) string {
	var b strings.Builder
	for i, tok := range rpn {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.rpn())
	}
	return b.String()
}
