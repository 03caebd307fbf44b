// Package numcalc compiles single-variable arithmetic expressions into
// functions of x.
//
// The syntax is what you'd type into a calculator: "2x^2 - sin(x)/e" is
// 2·x² minus the sine of x over Euler's number. Adjacent operands multiply,
// so "2x", "x(x+1)", "(x+1)(x-1)", and "2sin(x)" all work. "^" is
// right-associative. The functions sin, cos, tan, exp, log (natural), and sqrt
// are available.
//
// Compiling an expression converts it to reverse Polish notation once. The
// resulting Expr can then be evaluated any number of times, from any number
// of goroutines. Out-of-domain arguments are not errors: 1/0 is +Inf and
// log(-1) is NaN, so that numerical methods can probe arbitrary points.
//
package numcalc
