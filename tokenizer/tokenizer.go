package tokenizer

import (
	"fmt"
	"iter"
	"strconv"
	"unicode/utf8"
)

// TokenIterator yields tokens lazily, so a failure surfaces only once the
// consumer reaches it.
type TokenIterator iter.Seq2[Token, error]

// ExpressionTokenizer splits an arithmetic expression into tokens
type ExpressionTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewExpressionTokenizer creates a new ExpressionTokenizer
func NewExpressionTokenizer(input string, options ...TokenizerOptions) *ExpressionTokenizer {
	opts := TokenizerOptions{SkipWhitespace: true}
	if len(options) > 0 {
		opts = options[0]
	}

	return &ExpressionTokenizer{input: input, options: opts}
}

// Tokens returns an iterator of tokens. Iteration stops after the first
// error or after the EOF token.
func (t *ExpressionTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		s := &scanner{input: t.input}
		s.readChar()

		for {
			token, err := s.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice, EOF included.
func (t *ExpressionTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, len(t.input)+1)

	for token, err := range t.Tokens() {
		if err != nil {
			return tokens, err
		}

		tokens = append(tokens, token)
	}

	return tokens, nil
}

type scanner struct {
	input   string
	offset  int // byte offset of current
	next    int // byte offset after current
	column  int // 1-based rune index of current
	current rune
}

func (s *scanner) readChar() {
	s.offset = s.next
	s.column++

	if s.next >= len(s.input) {
		s.current = 0
		return
	}

	r, size := utf8.DecodeRuneInString(s.input[s.next:])
	s.current = r
	s.next += size
}

func (s *scanner) position() Position {
	return Position{Offset: s.offset, Column: s.column}
}

func (s *scanner) single(typ TokenType) Token {
	token := Token{Type: typ, Value: string(s.current), Position: s.position()}
	s.readChar()

	return token
}

func (s *scanner) nextToken() (Token, error) {
	if s.offset >= len(s.input) {
		return Token{Type: EOF, Position: s.position()}, nil
	}

	switch s.current {
	case ' ':
		return s.readWhitespace(), nil
	case '(':
		return s.single(OPENED_PARENS), nil
	case ')':
		return s.single(CLOSED_PARENS), nil
	case '+':
		return s.single(PLUS), nil
	case '-':
		return s.single(MINUS), nil
	case '*':
		return s.single(MULTIPLY), nil
	case '/':
		return s.single(DIVIDE), nil
	case '^':
		return s.single(POWER), nil
	}

	if isDigit(s.current) {
		return s.readNumber()
	}

	return Token{}, &CharacterError{Char: s.current, Position: s.position()}
}

func (s *scanner) readWhitespace() Token {
	pos := s.position()
	start := s.offset

	for s.offset < len(s.input) && s.current == ' ' {
		s.readChar()
	}

	return Token{Type: WHITESPACE, Value: s.input[start:s.offset], Position: pos}
}

func (s *scanner) readNumber() (Token, error) {
	pos := s.position()
	start := s.offset

	for s.offset < len(s.input) && isDigit(s.current) {
		s.readChar()
	}

	value := s.input[start:s.offset]
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return Token{}, fmt.Errorf("%w: %s is out of range at column %d", ErrInvalidNumber, value, pos.Column)
	}

	return Token{Type: NUMBER, Value: value, Position: pos}, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
