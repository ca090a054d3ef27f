package stepcalc

import (
	"github.com/shibukawa/stepcalc/operator"
	"github.com/shibukawa/stepcalc/postfix"
	"github.com/shibukawa/stepcalc/stack"
	"github.com/shibukawa/stepcalc/tokenizer"
)

// Error kinds an evaluation can fail with. Match them with errors.Is on
// Outcome.Err.
var (
	// Stack errors
	ErrStackOverflow  = stack.ErrStackOverflow
	ErrStackUnderflow = stack.ErrStackUnderflow
	ErrEmptyStack     = stack.ErrEmptyStack

	// Conversion errors
	ErrUnbalancedParentheses = postfix.ErrUnbalancedParentheses
	ErrUnmatchedClose        = postfix.ErrUnmatchedClose
	ErrMissingOpen           = postfix.ErrMissingOpen
	ErrUnclosedOpen          = postfix.ErrUnclosedOpen
	ErrInvalidCharacter      = tokenizer.ErrInvalidCharacter
	ErrInvalidNumber         = tokenizer.ErrInvalidNumber

	// Evaluation errors
	ErrDivisionByZero       = operator.ErrDivisionByZero
	ErrInvalidOperator      = operator.ErrInvalidOperator
	ErrInsufficientOperands = postfix.ErrInsufficientOperands
	ErrMalformedExpression  = postfix.ErrMalformedExpression
)
