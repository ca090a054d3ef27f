package crosscheck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/shibukawa/stepcalc"
	"github.com/shibukawa/stepcalc/tokenizer"
)

// Sentinel errors
var (
	ErrUnsupportedOperator = errors.New("cross-check cannot evaluate '^'")
	ErrOracle              = errors.New("CEL evaluation error")
	ErrUnexpectedType      = errors.New("CEL returned a non-integer value")
)

// Report compares a stepcalc outcome with the value CEL computes for the
// same expression.
type Report struct {
	Expression string `json:"expression" yaml:"expression"`
	CEL        string `json:"cel" yaml:"cel"`
	Expected   int64  `json:"expected" yaml:"expected"`
	OracleErr  string `json:"oracle_error,omitempty" yaml:"oracle_error,omitempty"`
	Actual     int64  `json:"actual" yaml:"actual"`
	ActualErr  string `json:"actual_error,omitempty" yaml:"actual_error,omitempty"`
	Match      bool   `json:"match" yaml:"match"`
}

// Checker evaluates expressions with CEL as an independent oracle.
// CEL has no power operator, so only + - * / expressions can be checked.
type Checker struct {
	env *cel.Env
}

// New creates a Checker.
func New() (*Checker, error) {
	env, err := cel.NewEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	return &Checker{env: env}, nil
}

// Translate rewrites expr in CEL syntax. Leading zeros are stripped because
// CEL reads them as octal.
func Translate(expr string) (string, error) {
	tokens, err := tokenizer.NewExpressionTokenizer(expr).AllTokens()
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		switch tok.Type {
		case tokenizer.EOF:
		case tokenizer.POWER:
			return "", fmt.Errorf("%w at column %d", ErrUnsupportedOperator, tok.Position.Column)
		case tokenizer.NUMBER:
			digits := strings.TrimLeft(tok.Value, "0")
			if digits == "" {
				digits = "0"
			}

			parts = append(parts, digits)
		default:
			parts = append(parts, tok.Value)
		}
	}

	return strings.Join(parts, " "), nil
}

// Eval computes expr with CEL.
func (c *Checker) Eval(expr string) (int64, error) {
	source, err := Translate(expr)
	if err != nil {
		return 0, err
	}

	return c.eval(source)
}

func (c *Checker) eval(source string) (int64, error) {
	ast, issues := c.env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return 0, fmt.Errorf("%w: %w", ErrOracle, issues.Err())
	}

	program, err := c.env.Program(ast)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	result, _, err := program.Eval(map[string]any{})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOracle, err)
	}

	value, ok := result.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrUnexpectedType, result.Value())
	}

	return value, nil
}

// Compare evaluates expr with CEL and checks it against outcome. Both sides
// failing counts as a match. It returns an error only when the expression
// cannot be translated for CEL.
func (c *Checker) Compare(expr string, outcome stepcalc.Outcome) (*Report, error) {
	source, err := Translate(expr)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Expression: expr,
		CEL:        source,
		Actual:     outcome.Result,
		ActualErr:  outcome.Error,
	}

	expected, err := c.eval(source)
	if err != nil {
		report.OracleErr = err.Error()
		report.Match = outcome.Failed()

		return report, nil
	}

	report.Expected = expected
	report.Match = !outcome.Failed() && expected == outcome.Result

	return report, nil
}
