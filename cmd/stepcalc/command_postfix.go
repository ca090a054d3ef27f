package main

import (
	"fmt"

	"github.com/shibukawa/stepcalc"
)

// PostfixCmd represents the postfix command
type PostfixCmd struct {
	Expressions []string `arg:"" help:"Expressions to convert"`
}

// Run executes the postfix command
func (cmd *PostfixCmd) Run(ctx *Context) error {
	failed := 0

	for _, expr := range cmd.Expressions {
		rpn, err := stepcalc.Postfix(expr)
		if err != nil {
			failed++

			if !ctx.Quiet {
				fmt.Fprintf(ctx.Stdout, "%s: %v\n", expr, err)
			}

			continue
		}

		if !ctx.Quiet {
			fmt.Fprintf(ctx.Stdout, "%s => %s\n", expr, rpn)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrEvaluationFailed, failed, len(cmd.Expressions))
	}

	return nil
}
