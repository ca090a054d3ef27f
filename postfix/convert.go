package postfix

import (
	"errors"
	"fmt"

	"github.com/shibukawa/stepcalc/operator"
	"github.com/shibukawa/stepcalc/stack"
	"github.com/shibukawa/stepcalc/tokenizer"
)

// Sentinel errors
var (
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	ErrInvalidCharacter      = tokenizer.ErrInvalidCharacter

	// Sub-cases of ErrUnbalancedParentheses
	ErrUnmatchedClose = fmt.Errorf("%w: unexpected ')'", ErrUnbalancedParentheses)
	ErrMissingOpen    = fmt.Errorf("%w: '(' not found", ErrUnbalancedParentheses)
	ErrUnclosedOpen   = fmt.Errorf("%w: '(' is never closed", ErrUnbalancedParentheses)

	// Structural errors of a postfix sequence, detected while evaluating it
	ErrInsufficientOperands = errors.New("insufficient operands")
	ErrMalformedExpression  = errors.New("malformed expression")
)

// Convert turns an infix expression into postfix tokens tagged with their
// parenthesis nesting level.
//
// Operators of equal precedence pop each other, so every operator, '^'
// included, groups left to right: "2 ^ 3 ^ 2" is (2 ^ 3) ^ 2.
func Convert(expr string) ([]Token, error) {
	c := &converter{
		ops: stack.NewCharStack(len(expr)),
		out: make([]Token, 0, len(expr)),
	}

	for tok, err := range tokenizer.NewExpressionTokenizer(expr).Tokens() {
		if err != nil {
			return nil, err
		}

		column := tok.Position.Column

		switch {
		case tok.Type == tokenizer.EOF:
			if err := c.flush(); err != nil {
				return nil, err
			}
		case tok.Type == tokenizer.OPENED_PARENS:
			if err := c.ops.Push(stack.Entry{Value: '(', Level: c.level, Column: column}); err != nil {
				return nil, err
			}

			c.level++
		case tok.Type == tokenizer.CLOSED_PARENS:
			if err := c.closeParen(); err != nil {
				return nil, fmt.Errorf("%w at column %d", err, column)
			}
		case tok.Type.IsOperator():
			if err := c.pushOperator([]rune(tok.Value)[0], column); err != nil {
				return nil, err
			}
		case tok.Type == tokenizer.NUMBER:
			c.out = append(c.out, Token{Kind: Number, Text: tok.Value, Level: c.level, Column: column})
		}
	}

	return c.out, nil
}

type converter struct {
	ops   *stack.CharStack
	out   []Token
	level int
}

func (c *converter) closeParen() error {
	c.level--
	if c.level < 0 {
		return ErrUnmatchedClose
	}

	for !c.ops.IsEmpty() {
		top, err := c.ops.Peek()
		if err != nil {
			return err
		}

		if top.Value == '(' {
			break
		}

		if err := c.emitTop(); err != nil {
			return err
		}
	}

	top, err := c.ops.Peek()
	if err != nil || top.Value != '(' {
		return ErrMissingOpen
	}

	_, err = c.ops.Pop()

	return err
}

func (c *converter) pushOperator(op rune, column int) error {
	for !c.ops.IsEmpty() {
		top, err := c.ops.Peek()
		if err != nil {
			return err
		}

		if top.Value == '(' || operator.Precedence(top.Value) < operator.Precedence(op) {
			break
		}

		if err := c.emitTop(); err != nil {
			return err
		}
	}

	return c.ops.Push(stack.Entry{Value: op, Level: c.level, Column: column})
}

func (c *converter) flush() error {
	for !c.ops.IsEmpty() {
		top, err := c.ops.Peek()
		if err != nil {
			return err
		}

		if top.Value == '(' {
			return fmt.Errorf("%w at column %d", ErrUnclosedOpen, top.Column)
		}

		if err := c.emitTop(); err != nil {
			return err
		}
	}

	return nil
}

func (c *converter) emitTop() error {
	entry, err := c.ops.Pop()
	if err != nil {
		return err
	}

	c.out = append(c.out, Token{Kind: Operator, Text: string(entry.Value), Level: entry.Level, Column: entry.Column})

	return nil
}
