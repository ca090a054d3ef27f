package operator

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrInvalidOperator = errors.New("invalid operator")
)

// Supported operator characters.
const (
	Add      = '+'
	Subtract = '-'
	Multiply = '*'
	Divide   = '/'
	Power    = '^'
)

// NotAnOperator is the precedence of anything that is not an operator.
const NotAnOperator = -1

// Precedence returns the binding strength of op.
// It is only used as a comparison key.
func Precedence(op rune) int {
	switch op {
	case Add, Subtract:
		return 1
	case Multiply, Divide:
		return 2
	case Power:
		return 3
	default:
		return NotAnOperator
	}
}

// IsOperator reports whether r is one of + - * / ^.
func IsOperator(r rune) bool {
	switch r {
	case Add, Subtract, Multiply, Divide, Power:
		return true
	default:
		return false
	}
}

// Apply computes left op right with native int64 arithmetic.
// Overflow wraps. Division truncates toward zero.
func Apply(op rune, left, right int64) (int64, error) {
	switch op {
	case Add:
		return left + right, nil
	case Subtract:
		return left - right, nil
	case Multiply:
		return left * right, nil
	case Divide:
		if right == 0 {
			return 0, ErrDivisionByZero
		}

		return left / right, nil
	case Power:
		return pow(left, right)
	default:
		return 0, fmt.Errorf("%w: '%c'", ErrInvalidOperator, op)
	}
}

// pow raises base to exp. A negative exponent yields the truncated value of
// the real result, so only bases 1 and -1 survive it.
func pow(base, exp int64) (int64, error) {
	if exp < 0 {
		switch base {
		case 0:
			return 0, ErrDivisionByZero
		case 1:
			return 1, nil
		case -1:
			if exp%2 == 0 {
				return 1, nil
			}

			return -1, nil
		default:
			return 0, nil
		}
	}

	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}

		base *= base
		exp >>= 1
	}

	return result, nil
}
