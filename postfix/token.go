package postfix

import "strings"

// Kind distinguishes operand tokens from operator tokens.
type Kind int

const (
	Number Kind = iota
	Operator
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Operator:
		return "operator"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is one element of a postfix sequence.
// Level counts the parentheses still open when the token was finalized.
// Column is the 1-based column of the source character.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Level  int    `json:"level" yaml:"level"`
	Column int    `json:"column" yaml:"column"`
}

// Op returns the operator character of an Operator token.
func (t Token) Op() rune {
	for _, r := range t.Text {
		return r
	}

	return 0
}

// Format renders tokens as a space separated RPN string.
func Format(tokens []Token) string {
	var b strings.Builder

	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(t.Text)
	}

	return b.String()
}
