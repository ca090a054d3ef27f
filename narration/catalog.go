package narration

import (
	"errors"
	"fmt"

	"github.com/shibukawa/stepcalc/operator"
	"github.com/shibukawa/stepcalc/postfix"
	"github.com/shibukawa/stepcalc/stack"
	"github.com/shibukawa/stepcalc/tokenizer"
	"golang.org/x/text/language"
)

// Catalog holds the fixed message strings used to narrate an evaluation.
// Format strings take their arguments in the order documented per field.
type Catalog struct {
	Tag    language.Tag
	Labels operator.Labels

	InsideParenthesis string // description, result
	TopLevel          string // label, description, result
	Step              string // 1-based index, text
	Final             string // result
	Error             string // message

	// InvalidCharacter formats the offending character. Empty keeps the
	// error's own message.
	InvalidCharacter string
	// Errors is checked in order with errors.Is; the first match wins.
	Errors []ErrorText
}

// ErrorText replaces the message of errors matching Target.
type ErrorText struct {
	Target error
	Text   string
}

// English is the default catalog.
var English = Catalog{
	Tag:               language.English,
	Labels:            operator.EnglishLabels,
	InsideParenthesis: "Computed inside the parenthesis (%s) = %d",
	TopLevel:          "%s %s = %d",
	Step:              "Step %d: %s",
	Final:             "Final result: %d",
	Error:             "Error: %s",
}

// Spanish is the Spanish catalog, including translated error messages.
var Spanish = Catalog{
	Tag:               language.Spanish,
	Labels:            operator.SpanishLabels,
	InsideParenthesis: "Se realizó la operación dentro del paréntesis (%s) = %d",
	TopLevel:          "%s %s = %d",
	Step:              "Paso %d: %s",
	Final:             "Resultado final: %d",
	Error:             "Error: %s",
	InvalidCharacter:  "Carácter inválido: %c",
	Errors: []ErrorText{
		{Target: postfix.ErrMissingOpen, Text: "Paréntesis desbalanceados: '(' no encontrado"},
		{Target: postfix.ErrUnbalancedParentheses, Text: "Paréntesis desbalanceados"},
		{Target: operator.ErrDivisionByZero, Text: "División por cero"},
		{Target: operator.ErrInvalidOperator, Text: "Operador no válido"},
		{Target: postfix.ErrInsufficientOperands, Text: "Pila vacía o incompleta durante la evaluación"},
		{Target: postfix.ErrMalformedExpression, Text: "Expresión mal formada"},
		{Target: tokenizer.ErrInvalidNumber, Text: "Número fuera de rango"},
		{Target: stack.ErrStackOverflow, Text: "Desbordamiento de pila"},
		{Target: stack.ErrStackUnderflow, Text: "Subdesbordamiento de pila"},
		{Target: stack.ErrEmptyStack, Text: "Pila vacía"},
	},
}

// Describe renders "<left> <op> <right>".
func Describe(op rune, left, right int64) string {
	return fmt.Sprintf("%d %c %d", left, op, right)
}

// Operation narrates one operator application. Operations nested in
// parentheses use the parenthesis template, top-level ones the operator label.
func (c Catalog) Operation(op rune, level int, description string, result int64) string {
	if level > 0 {
		return fmt.Sprintf(c.InsideParenthesis, description, result)
	}

	return fmt.Sprintf(c.TopLevel, c.Labels.For(op), description, result)
}

// StepLine renders the n-th (1-based) narrated step.
func (c Catalog) StepLine(n int, text string) string {
	return fmt.Sprintf(c.Step, n, text)
}

// FinalLine renders the closing line of a narration.
func (c Catalog) FinalLine(result int64) string {
	return fmt.Sprintf(c.Final, result)
}

// ErrorMessage returns the catalog's wording for err.
func (c Catalog) ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var charErr *tokenizer.CharacterError
	if c.InvalidCharacter != "" && errors.As(err, &charErr) {
		return fmt.Sprintf(c.InvalidCharacter, charErr.Char)
	}

	for _, e := range c.Errors {
		if errors.Is(err, e.Target) {
			return e.Text
		}
	}

	return err.Error()
}

// ErrorLine renders the single narration line of a failed evaluation.
func (c Catalog) ErrorLine(message string) string {
	return fmt.Sprintf(c.Error, message)
}
