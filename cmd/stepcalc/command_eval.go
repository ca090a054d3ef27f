package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/stepcalc"
	"github.com/shibukawa/stepcalc/crosscheck"
	"github.com/shibukawa/stepcalc/evaluator"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Expressions []string `arg:"" optional:"" help:"Expressions to evaluate (reads one per line from stdin when omitted)"`
	CrossCheck  bool     `help:"Compare results with CEL (overrides config)"`
}

// evalRecord is the machine readable form of one evaluation
type evalRecord struct {
	Expression string             `json:"expression" yaml:"expression"`
	Postfix    string             `json:"postfix,omitempty" yaml:"postfix,omitempty"`
	Result     *int64             `json:"result,omitempty" yaml:"result,omitempty"`
	Steps      []string           `json:"steps" yaml:"steps"`
	Error      string             `json:"error,omitempty" yaml:"error,omitempty"`
	Records    []evaluator.Step   `json:"records,omitempty" yaml:"records,omitempty"`
	CrossCheck *crosscheck.Report `json:"cross_check,omitempty" yaml:"cross_check,omitempty"`
}

// Run executes the eval command
func (cmd *EvalCmd) Run(ctx *Context) error {
	expressions := cmd.Expressions
	if len(expressions) == 0 {
		var err error

		expressions, err = readExpressions(ctx.Stdin)
		if err != nil {
			return err
		}
	}

	if len(expressions) == 0 {
		return ErrNoExpressions
	}

	var checker *crosscheck.Checker

	if cmd.CrossCheck || ctx.Config.CrossCheck {
		var err error

		checker, err = crosscheck.New()
		if err != nil {
			return err
		}
	}

	records := make([]evalRecord, 0, len(expressions))
	failed := 0
	mismatched := 0

	for _, expr := range expressions {
		record := evaluate(ctx, expr, checker)
		if record.Error != "" {
			failed++
		}

		if record.CrossCheck != nil && !record.CrossCheck.Match {
			mismatched++
		}

		records = append(records, record)
	}

	if !ctx.Quiet {
		if err := writeRecords(ctx.Stdout, ctx.Config.Output, records); err != nil {
			return err
		}
	}

	switch {
	case mismatched > 0:
		return fmt.Errorf("%w: %d of %d expressions", ErrCrossCheckFailed, mismatched, len(records))
	case failed > 0:
		return fmt.Errorf("%w: %d of %d", ErrEvaluationFailed, failed, len(records))
	}

	return nil
}

// evaluate runs one expression and optionally cross-checks it
func evaluate(ctx *Context, expr string, checker *crosscheck.Checker) evalRecord {
	outcome := stepcalc.Evaluate(expr, ctx.options()...)

	record := evalRecord{
		Expression: expr,
		Steps:      outcome.Steps,
		Records:    outcome.Records,
	}

	if outcome.Failed() {
		record.Error = outcome.Error
	} else {
		result := outcome.Result
		record.Result = &result
		// Conversion succeeded, so Postfix cannot fail here
		record.Postfix, _ = stepcalc.Postfix(expr)
	}

	if checker == nil {
		return record
	}

	report, err := checker.Compare(expr, outcome)
	if err != nil {
		// Expressions CEL cannot express are reported but not compared
		ctx.Logger.V(1).Info("cross-check skipped", "expression", expr, "reason", err.Error())
		return record
	}

	record.CrossCheck = report

	return record
}

// readExpressions reads one expression per non-empty line
func readExpressions(r io.Reader) ([]string, error) {
	var expressions []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		expressions = append(expressions, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expressions: %w", err)
	}

	return expressions, nil
}

// writeRecords renders records in the requested output format
func writeRecords(w io.Writer, format string, records []evalRecord) error {
	switch format {
	case stepcalc.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(records); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case stepcalc.OutputYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		for i, record := range records {
			if i > 0 {
				fmt.Fprintln(w)
			}

			writeText(w, record)
		}
	}

	return nil
}

// writeText prints the narration of one record
func writeText(w io.Writer, record evalRecord) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(record.Expression))

	if record.Postfix != "" {
		fmt.Fprintf(w, "  postfix: %s\n", record.Postfix)
	}

	for _, step := range record.Steps {
		if record.Error != "" {
			fmt.Fprintf(w, "  %s\n", color.RedString(step))
			continue
		}

		fmt.Fprintf(w, "  %s\n", step)
	}

	if report := record.CrossCheck; report != nil {
		if report.Match {
			fmt.Fprintf(w, "  %s CEL agrees (%s)\n", color.GreenString("✓"), report.CEL)
		} else {
			fmt.Fprintf(w, "  %s CEL disagrees: %s = %d\n", color.RedString("✗"), report.CEL, report.Expected)
		}
	}
}
