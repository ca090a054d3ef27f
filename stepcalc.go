package stepcalc

import (
	"github.com/go-logr/logr"
	"github.com/shibukawa/stepcalc/evaluator"
	"github.com/shibukawa/stepcalc/narration"
	"github.com/shibukawa/stepcalc/postfix"
)

// Outcome is the result of Evaluate. On failure Error is set, Steps holds a
// single error line and Result is zero.
type Outcome struct {
	Result  int64            `json:"result" yaml:"result"`
	Steps   []string         `json:"steps" yaml:"steps"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
	Records []evaluator.Step `json:"records,omitempty" yaml:"records,omitempty"`
	Err     error            `json:"-" yaml:"-"`
}

// Failed reports whether the outcome carries an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Option configures Evaluate.
type Option func(*settings)

type settings struct {
	catalog narration.Catalog
	logger  logr.Logger
}

// WithLocale narrates with the catalog matching a BCP 47 tag. Unsupported
// tags fall back to English.
func WithLocale(locale string) Option {
	return func(s *settings) {
		s.catalog = narration.ForLocale(locale)
	}
}

// WithCatalog narrates with a custom catalog.
func WithCatalog(c narration.Catalog) Option {
	return func(s *settings) {
		s.catalog = c
	}
}

// WithLogger sets the logger that receives V(1) diagnostics.
func WithLogger(logger logr.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// Evaluate converts an infix expression to postfix, evaluates it and narrates
// the steps. It never panics and never returns a partial result: any
// failure is reported through Outcome.Error.
func Evaluate(expr string, opts ...Option) Outcome {
	s := settings{catalog: narration.English, logger: logr.Discard()}
	for _, opt := range opts {
		opt(&s)
	}

	tokens, err := postfix.Convert(expr)
	if err != nil {
		return s.fail(expr, err)
	}

	s.logger.V(1).Info("converted expression", "expression", expr, "postfix", postfix.Format(tokens))

	result, err := evaluator.Evaluate(tokens, evaluator.WithCatalog(s.catalog))
	if err != nil {
		return s.fail(expr, err)
	}

	s.logger.V(1).Info("evaluated expression", "expression", expr, "result", result.Value, "steps", len(result.Records))

	return Outcome{
		Result:  result.Value,
		Steps:   result.Steps,
		Records: result.Records,
	}
}

func (s settings) fail(expr string, err error) Outcome {
	message := s.catalog.ErrorMessage(err)
	s.logger.V(1).Info("evaluation failed", "expression", expr, "error", err.Error())

	return Outcome{
		Error: message,
		Steps: []string{s.catalog.ErrorLine(message)},
		Err:   err,
	}
}

// Postfix returns the space separated postfix form of expr.
func Postfix(expr string) (string, error) {
	tokens, err := postfix.Convert(expr)
	if err != nil {
		return "", err
	}

	return postfix.Format(tokens), nil
}
