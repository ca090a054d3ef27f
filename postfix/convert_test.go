package postfix

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/stepcalc/tokenizer"
)

func num(text string, level, column int) Token {
	return Token{Kind: Number, Text: text, Level: level, Column: column}
}

func op(text string, level, column int) Token {
	return Token{Kind: Operator, Text: text, Level: level, Column: column}
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "precedence",
			input: "3 + 4 * 2",
			want:  []Token{num("3", 0, 1), num("4", 0, 5), num("2", 0, 9), op("*", 0, 7), op("+", 0, 3)},
		},
		{
			name:  "parenthesized groups",
			input: "(1 + 2) * (3 + 4)",
			want: []Token{
				num("1", 1, 2), num("2", 1, 6), op("+", 1, 4),
				num("3", 1, 12), num("4", 1, 16), op("+", 1, 14),
				op("*", 0, 9),
			},
		},
		{
			name:  "nested levels",
			input: "((12))",
			want:  []Token{num("12", 2, 3)},
		},
		{
			name:  "no spaces",
			input: "2*(3+4)^2",
			want: []Token{
				num("2", 0, 1), num("3", 1, 4), num("4", 1, 6), op("+", 1, 5),
				num("2", 0, 9), op("^", 0, 8), op("*", 0, 2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10 - 4 - 3", "10 4 - 3 -"},
		{"64 / 4 / 2", "64 4 / 2 /"},
		{"2 ^ 3 ^ 2", "2 3 ^ 2 ^"},
		{"1 + 2 * 3 ^ 2 - 4", "1 2 3 2 ^ * + 4 -"},
		{"(1 + (2 - 3)) * 4", "1 2 3 - + 4 *"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Convert(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, Format(got))
		})
	}
}

func TestConvertLevels(t *testing.T) {
	got, err := Convert("(1 + (2 - 3)) * 4")
	assert.NoError(t, err)

	levels := make(map[string]int)
	for _, tok := range got {
		if tok.Kind == Operator {
			levels[tok.Text] = tok.Level
		}
	}

	assert.Equal(t, map[string]int{"-": 2, "+": 1, "*": 0}, levels)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		message string
	}{
		{
			name:    "unclosed open",
			input:   "(1 + 2",
			wantErr: ErrUnclosedOpen,
			message: "unbalanced parentheses: '(' is never closed at column 1",
		},
		{
			name:    "unmatched close",
			input:   "1 + 2)",
			wantErr: ErrUnmatchedClose,
			message: "unbalanced parentheses: unexpected ')' at column 6",
		},
		{
			name:    "close before open",
			input:   ")(",
			wantErr: ErrUnmatchedClose,
			message: "unbalanced parentheses: unexpected ')' at column 1",
		},
		{
			name:    "invalid character",
			input:   "4 & 2",
			wantErr: ErrInvalidCharacter,
			message: "invalid character: &",
		},
		{
			name:    "unbalanced reported before later invalid character",
			input:   "1) & 2",
			wantErr: ErrUnbalancedParentheses,
			message: "unbalanced parentheses: unexpected ')' at column 2",
		},
		{
			name:    "decimal literal",
			input:   "1.5 + 2",
			wantErr: ErrInvalidCharacter,
			message: "invalid character: .",
		},
		{
			name:    "number out of range",
			input:   "9223372036854775808",
			wantErr: tokenizer.ErrInvalidNumber,
			message: "invalid number: 9223372036854775808 is out of range at column 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.input)
			assert.IsError(t, err, tt.wantErr)
			assert.EqualError(t, err, tt.message)
			assert.Zero(t, got)
		})
	}
}

func TestSubCasesAreUnbalanced(t *testing.T) {
	for _, err := range []error{ErrUnmatchedClose, ErrMissingOpen, ErrUnclosedOpen} {
		assert.IsError(t, err, ErrUnbalancedParentheses)
	}
}

func TestConvertOperatorsOnly(t *testing.T) {
	// Structural errors surface during evaluation, not conversion.
	got, err := Convert("+ *")
	assert.NoError(t, err)
	assert.Equal(t, "* +", Format(got))

	got, err = Convert("")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(got))
}

func TestKindMarshalText(t *testing.T) {
	text, err := Operator.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "operator", string(text))
	assert.Equal(t, '^', op("^", 0, 1).Op())
	assert.Equal(t, rune(0), Token{}.Op())
}
