package numcalc

// eval runs an RPN sequence with the variable bound to x. stack is scratch
// space for operands; its contents are overwritten.
func eval(rpn []token, x float64, stack []float64) (float64, error) {
	stack = stack[:0]
	for _, tok := range rpn {
		switch tok.kind {
		case tokenNum:
			stack = append(stack, tok.num)
		case tokenVar:
			stack = append(stack, x)
		case tokenFunc:
			if tok.fn == NoFunc {
				return 0, &UnknownFunctionError{Col: tok.pos, Name: tok.text}
			}
			if len(stack) < 1 {
				return 0, &StackUnderflowError{Col: tok.pos, Op: tok.text, Need: 1}
			}
			top := &stack[len(stack)-1]
			*top = tok.fn.Apply(*top)
		case tokenOp:
			if tok.op == opNeg {
				if len(stack) < 1 {
					return 0, &StackUnderflowError{Col: tok.pos, Op: tok.rpn(), Need: 1}
				}
				top := &stack[len(stack)-1]
				*top = -*top
				continue
			}
			if len(stack) < 2 {
				return 0, &StackUnderflowError{Col: tok.pos, Op: tok.rpn(), Need: 2, Have: len(stack)}
			}
			// Pop the right operand, then apply to the left in place.
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			a := &stack[len(stack)-1]
			*a = tok.op.apply(*a, b)
		default:
			panic("numcalc: invalid token in RPN: " + tok.String())
		}
	}
	if len(stack) != 1 {
		return 0, &MalformedExpressionError{Residual: len(stack)}
	}
	return stack[0], nil
}
