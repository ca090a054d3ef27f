package evaluator

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/shibukawa/stepcalc/narration"
	"github.com/shibukawa/stepcalc/operator"
	"github.com/shibukawa/stepcalc/postfix"
	"github.com/shibukawa/stepcalc/stack"
	"github.com/shibukawa/stepcalc/tokenizer"
)

// Sentinel errors
var (
	ErrInsufficientOperands = postfix.ErrInsufficientOperands
	ErrMalformedExpression  = postfix.ErrMalformedExpression
)

// Step records one operator application.
// Sequence is the order of computation, which is not the order of narration.
type Step struct {
	Level    int    `json:"level" yaml:"level"`
	Sequence int    `json:"sequence" yaml:"sequence"`
	Operator string `json:"operator" yaml:"operator"`
	Left     int64  `json:"left" yaml:"left"`
	Right    int64  `json:"right" yaml:"right"`
	Value    int64  `json:"value" yaml:"value"`
	Text     string `json:"text" yaml:"text"`
}

// Result is the outcome of a successful evaluation.
// Steps holds the rendered narration, final line included; Records holds the
// same steps in narration order.
type Result struct {
	Value   int64
	Steps   []string
	Records []Step
}

// Option configures Evaluate.
type Option func(*options)

type options struct {
	catalog narration.Catalog
}

// WithCatalog narrates with c instead of the English catalog.
func WithCatalog(c narration.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// Evaluate computes a postfix token sequence and narrates every operator
// application. Steps are narrated innermost parenthesis first; steps at the
// same level keep the order they were computed in.
func Evaluate(tokens []postfix.Token, opts ...Option) (*Result, error) {
	o := options{catalog: narration.English}
	for _, opt := range opts {
		opt(&o)
	}

	operands := stack.NewIntStack(len(tokens))
	records := make([]Step, 0, len(tokens)/2)

	for _, tok := range tokens {
		switch tok.Kind {
		case postfix.Number:
			value, err := strconv.ParseInt(tok.Text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", tokenizer.ErrInvalidNumber, tok.Text)
			}

			if err := operands.Push(value); err != nil {
				return nil, err
			}
		case postfix.Operator:
			step, err := apply(operands, tok, len(records), o.catalog)
			if err != nil {
				return nil, err
			}

			records = append(records, step)
		default:
			return nil, fmt.Errorf("%w: unknown token kind %d", ErrMalformedExpression, tok.Kind)
		}
	}

	if operands.Size() != 1 {
		return nil, fmt.Errorf("%w: %d values left after evaluation", ErrMalformedExpression, operands.Size())
	}

	value, err := operands.Pop()
	if err != nil {
		return nil, err
	}

	Order(records)

	steps := make([]string, 0, len(records)+1)
	for i, r := range records {
		steps = append(steps, o.catalog.StepLine(i+1, r.Text))
	}

	steps = append(steps, o.catalog.FinalLine(value))

	return &Result{Value: value, Steps: steps, Records: records}, nil
}

func apply(operands *stack.IntStack, tok postfix.Token, sequence int, catalog narration.Catalog) (Step, error) {
	if operands.Size() < 2 {
		return Step{}, fmt.Errorf("%w: '%s' at column %d", ErrInsufficientOperands, tok.Text, tok.Column)
	}

	right, err := operands.Pop()
	if err != nil {
		return Step{}, err
	}

	left, err := operands.Pop()
	if err != nil {
		return Step{}, err
	}

	op := tok.Op()

	value, err := operator.Apply(op, left, right)
	if err != nil {
		return Step{}, err
	}

	if err := operands.Push(value); err != nil {
		return Step{}, err
	}

	description := narration.Describe(op, left, right)

	return Step{
		Level:    tok.Level,
		Sequence: sequence,
		Operator: tok.Text,
		Left:     left,
		Right:    right,
		Value:    value,
		Text:     catalog.Operation(op, tok.Level, description, value),
	}, nil
}

// Order sorts steps into narration order: deeper levels first, then by
// Sequence.
func Order(steps []Step) {
	slices.SortFunc(steps, func(a, b Step) int {
		if c := cmp.Compare(b.Level, a.Level); c != 0 {
			return c
		}

		return cmp.Compare(a.Sequence, b.Sequence)
	})
}
