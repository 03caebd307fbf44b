package numcalc

import (
	"math"
	"strconv"
)

// Func is one of the fixed set of functions an expression can call. Every
// Func is a function from reals to reals.
type Func uint8

const (
	// NoFunc is the result of looking up an unknown name.
	NoFunc Func = iota
	Sin
	Cos
	Tan
	Exp
	// Log is the natural logarithm.
	Log
	Sqrt
)

// Funcs returns the known functions.
func Funcs() []Func {
	return []Func{Sin, Cos, Tan, Exp, Log, Sqrt}
}

// LookupFunc gets the function with the given name. If there is no such
// function, the result is NoFunc.
func LookupFunc(name string) Func {
	switch name {
	case "sin":
		return Sin
	case "cos":
		return Cos
	case "tan":
		return Tan
	case "exp":
		return Exp
	case "log":
		return Log
	case "sqrt":
		return Sqrt
	default:
		return NoFunc
	}
}

// String returns the name by which expressions call f.
func (f Func) String() string {
	switch f {
	case NoFunc:
		return "<none>"
	case Sin:
		return "sin"
	case Cos:
		return "cos"
	case Tan:
		return "tan"
	case Exp:
		return "exp"
	case Log:
		return "log"
	case Sqrt:
		return "sqrt"
	default:
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
}

// Apply evaluates f at v. Arguments outside the function's domain produce NaN
// or infinities rather than errors. Panics if f is not a known function.
func (f Func) Apply(v float64) float64 {
	switch f {
	case Sin:
		return math.Sin(v)
	case Cos:
		return math.Cos(v)
	case Tan:
		return math.Tan(v)
	case Exp:
		return math.Exp(v)
	case Log:
		return math.Log(v)
	case Sqrt:
		return math.Sqrt(v)
	default:
		panic("numcalc: apply of unknown function " + f.String())
	}
}
