package casebook

import (
	"fmt"
	"slices"

	"github.com/shibukawa/stepcalc"
)

// CaseResult is the verdict for one case.
type CaseResult struct {
	Case     Case
	Outcome  stepcalc.Outcome
	Failures []string
}

// Passed reports whether every expectation held.
func (r CaseResult) Passed() bool {
	return len(r.Failures) == 0
}

// Summary aggregates the results of a document run.
type Summary struct {
	Title   string
	Total   int
	Passed  int
	Failed  int
	Results []CaseResult
}

// Run evaluates every case of doc. The document locale is applied before
// opts, so callers can override it.
func Run(doc *Document, opts ...stepcalc.Option) *Summary {
	options := make([]stepcalc.Option, 0, len(opts)+1)
	if doc.Locale != "" {
		options = append(options, stepcalc.WithLocale(doc.Locale))
	}

	options = append(options, opts...)

	summary := &Summary{Title: doc.Title, Total: len(doc.Cases)}

	for _, c := range doc.Cases {
		outcome := stepcalc.Evaluate(c.Expression, options...)
		result := CaseResult{Case: c, Outcome: outcome, Failures: check(c.Expected, outcome)}

		if result.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
		}

		summary.Results = append(summary.Results, result)
	}

	return summary
}

func check(expected Expectation, outcome stepcalc.Outcome) []string {
	var failures []string

	if expected.Error != "" {
		switch {
		case !outcome.Failed():
			failures = append(failures, fmt.Sprintf("expected error %q, got result %d", expected.Error, outcome.Result))
		case outcome.Error != expected.Error:
			failures = append(failures, fmt.Sprintf("expected error %q, got %q", expected.Error, outcome.Error))
		}
	}

	if expected.Result != nil {
		switch {
		case outcome.Failed():
			failures = append(failures, fmt.Sprintf("expected result %d, got error %q", *expected.Result, outcome.Error))
		case outcome.Result != *expected.Result:
			failures = append(failures, fmt.Sprintf("expected result %d, got %d", *expected.Result, outcome.Result))
		}
	}

	if len(expected.Steps) > 0 && !slices.Equal(expected.Steps, outcome.Steps) {
		failures = append(failures, fmt.Sprintf("expected steps %q, got %q", expected.Steps, outcome.Steps))
	}

	return failures
}
