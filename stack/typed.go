package stack

// Entry is an operator or parenthesis character tagged with the nesting
// level it was pushed at. Column is the 1-based source column, 0 if unknown.
type Entry struct {
	Value  rune
	Level  int
	Column int
}

// CharStack holds operator and parenthesis entries during conversion.
type CharStack = Bounded[Entry]

// IntStack holds operands during postfix evaluation.
type IntStack = Bounded[int64]

// NewCharStack creates a character stack. One entry per input character is
// always enough, so callers pass the expression length.
func NewCharStack(capacity int) *CharStack {
	return NewBounded[Entry](capacity)
}

// NewIntStack creates an operand stack.
func NewIntStack(capacity int) *IntStack {
	return NewBounded[int64](capacity)
}
