package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/shibukawa/stepcalc"
	"github.com/shibukawa/stepcalc/testhelper"
)

func newTestContext(t *testing.T, output string) (*Context, *bytes.Buffer) {
	t.Helper()

	color.NoColor = true

	var stdout bytes.Buffer

	return &Context{
		Config: &stepcalc.Config{
			Locale:   "en",
			Output:   output,
			LogLevel: "info",
			CaseDir:  "../../casebook/testdata",
		},
		Logger: logr.Discard(),
		Stdout: &stdout,
		Stdin:  strings.NewReader(""),
	}, &stdout
}

func TestEvalCmd(t *testing.T) {
	t.Run("TextOutput", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)

		cmd := &EvalCmd{Expressions: []string{"2*(3+4)"}}
		assert.NoError(t, cmd.Run(ctx))

		expected := strings.Join([]string{
			"2*(3+4)",
			"  postfix: 2 3 4 + *",
			"  Step 1: Computed inside the parenthesis (3 + 4) = 7",
			"  Step 2: Multiplied 2 * 7 = 14",
			"  Final result: 14",
			"",
		}, "\n")
		assert.Equal(t, expected, stdout.String())
	})

	t.Run("JSONOutput", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputJSON)

		cmd := &EvalCmd{Expressions: []string{"1+2", "2^3"}}
		assert.NoError(t, cmd.Run(ctx))

		var records []evalRecord
		assert.NoError(t, json.Unmarshal(stdout.Bytes(), &records))
		assert.Equal(t, 2, len(records))
		assert.Equal(t, int64(3), *records[0].Result)
		assert.Equal(t, "1 2 +", records[0].Postfix)
		assert.Equal(t, int64(8), *records[1].Result)
		assert.Equal(t, "^", records[1].Records[0].Operator)
	})

	t.Run("YAMLOutput", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputYAML)

		cmd := &EvalCmd{Expressions: []string{"7"}}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "result: 7\n")
		assert.Contains(t, stdout.String(), "Final result: 7")
	})

	t.Run("FailureIsReportedAndReturned", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)

		cmd := &EvalCmd{Expressions: []string{"1+2", "4/0"}}
		err := cmd.Run(ctx)
		assert.True(t, errors.Is(err, ErrEvaluationFailed))
		assert.Contains(t, stdout.String(), "  Error: division by zero\n")
		assert.Contains(t, stdout.String(), "  Final result: 3\n")
	})

	t.Run("ReadsStdin", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)
		ctx.Stdin = strings.NewReader("# comment\n1+1\n\n  3*3  \n")

		cmd := &EvalCmd{}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "Final result: 2")
		assert.Contains(t, stdout.String(), "Final result: 9")
	})

	t.Run("NoExpressions", func(t *testing.T) {
		ctx, _ := newTestContext(t, stepcalc.OutputText)

		cmd := &EvalCmd{}
		assert.IsError(t, cmd.Run(ctx), ErrNoExpressions)
	})

	t.Run("Spanish", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)
		ctx.Config.Locale = "es"

		cmd := &EvalCmd{Expressions: []string{"(2+3)*4"}}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "Paso 1: Se realizó la operación dentro del paréntesis (2 + 3) = 5")
		assert.Contains(t, stdout.String(), "Resultado final: 20")
	})

	t.Run("CrossCheck", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)

		cmd := &EvalCmd{Expressions: []string{"10-4*2", "2^2"}, CrossCheck: true}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "CEL agrees (10 - 4 * 2)")
		assert.Equal(t, 1, strings.Count(stdout.String(), "CEL agrees"))
	})

	t.Run("Quiet", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)
		ctx.Quiet = true

		cmd := &EvalCmd{Expressions: []string{"1+1"}}
		assert.NoError(t, cmd.Run(ctx))
		assert.Equal(t, "", stdout.String())
	})
}

func TestPostfixCmd(t *testing.T) {
	ctx, stdout := newTestContext(t, stepcalc.OutputText)

	cmd := &PostfixCmd{Expressions: []string{"3+4*2", "(1"}}
	err := cmd.Run(ctx)
	assert.True(t, errors.Is(err, ErrEvaluationFailed))
	assert.Contains(t, stdout.String(), "3+4*2 => 3 4 2 * +\n")
	assert.Contains(t, stdout.String(), "(1: unbalanced parentheses")
}

func TestTestCmd(t *testing.T) {
	t.Run("ConfiguredCaseDir", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)

		cmd := &TestCmd{}
		assert.NoError(t, cmd.Run(ctx))
		assert.Contains(t, stdout.String(), "=== Test Summary ===")
		assert.Contains(t, stdout.String(), "Documents: 2")
		assert.Contains(t, stdout.String(), "Cases: 7 total, 7 passed, 0 failed")
		assert.Contains(t, stdout.String(), "All tests passed!")
	})

	t.Run("FailingCase", func(t *testing.T) {
		ctx, stdout := newTestContext(t, stepcalc.OutputText)

		path := testhelper.WriteFile(t, "broken.md", testhelper.TrimIndent(t, `
			# Broken

			## wrong sum

			~~~expr
			1+1
			~~~

			~~~yaml
			result: 3
			~~~
			`))

		cmd := &TestCmd{Paths: []string{path}}
		err := cmd.Run(ctx)
		assert.True(t, errors.Is(err, ErrCasesFailed))
		assert.Contains(t, stdout.String(), "FAIL wrong sum (line 3)")
		assert.Contains(t, stdout.String(), "expected result 3, got 2")
		assert.Contains(t, stdout.String(), "Some tests failed!")
	})

	t.Run("EmptyDirectory", func(t *testing.T) {
		ctx, _ := newTestContext(t, stepcalc.OutputText)

		cmd := &TestCmd{Paths: []string{t.TempDir()}}
		assert.True(t, errors.Is(cmd.Run(ctx), ErrNoCaseFiles))
	})
}

func TestApplyOverrides(t *testing.T) {
	config := &stepcalc.Config{Locale: "en", Output: "text", LogLevel: "info"}

	assert.NoError(t, applyOverrides(config, "es", "json", true))
	assert.Equal(t, "es", config.Locale)
	assert.Equal(t, "json", config.Output)
	assert.False(t, config.IsColorEnabled())

	err := applyOverrides(config, "", "xml", false)
	assert.True(t, errors.Is(err, stepcalc.ErrConfigValidation))
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		_, cleanup, err := newLogger(level, false)
		assert.NoError(t, err)
		cleanup()
	}

	logger, cleanup, err := newLogger("info", true)
	assert.NoError(t, err)
	assert.True(t, logger.V(1).Enabled())
	cleanup()

	_, _, err = newLogger("trace", false)
	assert.Error(t, err)
}
