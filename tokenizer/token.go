package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidNumber    = errors.New("invalid number")
)

// TokenType represents the type of a token
type TokenType int

const (
	EOF           TokenType = iota
	WHITESPACE              // ' '
	NUMBER                  // run of ASCII digits
	OPENED_PARENS           // (
	CLOSED_PARENS           // )
	PLUS                    // +
	MINUS                   // -
	MULTIPLY                // *
	DIVIDE                  // /
	POWER                   // ^
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case NUMBER:
		return "NUMBER"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case MULTIPLY:
		return "MULTIPLY"
	case DIVIDE:
		return "DIVIDE"
	case POWER:
		return "POWER"
	default:
		return "UNKNOWN"
	}
}

// IsOperator reports whether the token type is one of the binary operators.
func (t TokenType) IsOperator() bool {
	return t >= PLUS && t <= POWER
}

// Position represents a position in the expression.
// Offset is the byte offset, Column is the 1-based rune index.
type Position struct {
	Offset int
	Column int
}

// Token represents a token
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}

// CharacterError reports a character the tokenizer does not recognize.
type CharacterError struct {
	Char     rune
	Position Position
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("%s: %c", ErrInvalidCharacter, e.Char)
}

func (e *CharacterError) Unwrap() error {
	return ErrInvalidCharacter
}
