package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/shibukawa/stepcalc"
	"github.com/shibukawa/stepcalc/casebook"
)

// TestCmd represents the test command
type TestCmd struct {
	Paths []string `arg:"" optional:"" help:"Case documents or directories (defaults to case_dir from config)"`
}

// Run executes the test command
func (cmd *TestCmd) Run(ctx *Context) error {
	paths := cmd.Paths
	if len(paths) == 0 {
		paths = []string{ctx.Config.CaseDir}
	}

	files, err := findCaseFiles(paths)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("%w in %v", ErrNoCaseFiles, paths)
	}

	opts := []stepcalc.Option{stepcalc.WithLogger(ctx.Logger)}
	if ctx.LocaleFlag != "" {
		opts = append(opts, stepcalc.WithLocale(ctx.LocaleFlag))
	}

	var summaries []fileSummary

	for _, file := range files {
		summary, err := runCaseFile(file, opts)
		if err != nil {
			return err
		}

		summaries = append(summaries, fileSummary{Path: file, Summary: summary})
	}

	out := ctx.Stdout
	if ctx.Quiet {
		out = io.Discard
	}

	failed := printSummary(out, summaries, ctx.Verbose)
	if failed > 0 {
		return fmt.Errorf("%w: %d", ErrCasesFailed, failed)
	}

	return nil
}

type fileSummary struct {
	Path    string
	Summary *casebook.Summary
}

func runCaseFile(path string, opts []stepcalc.Option) (*casebook.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := casebook.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return casebook.Run(doc, opts...), nil
}

// findCaseFiles expands directories into the markdown files they contain
func findCaseFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(path, "*.md"))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}

		sort.Strings(matches)
		files = append(files, matches...)
	}

	return files, nil
}

// printSummary prints per case verdicts followed by totals and returns the
// number of failed cases
func printSummary(w io.Writer, summaries []fileSummary, verbose bool) int {
	total, passed, failed := 0, 0, 0

	for _, fs := range summaries {
		s := fs.Summary
		total += s.Total
		passed += s.Passed
		failed += s.Failed

		title := s.Title
		if title == "" {
			title = fs.Path
		}

		fmt.Fprintf(w, "%s (%s)\n", color.New(color.Bold).Sprint(title), fs.Path)

		for _, result := range s.Results {
			if result.Passed() {
				if verbose {
					fmt.Fprintf(w, "  %s %s\n", color.GreenString("PASS"), result.Case.Name)
				}

				continue
			}

			fmt.Fprintf(w, "  %s %s (line %d)\n", color.RedString("FAIL"), result.Case.Name, result.Case.Line)

			for _, failure := range result.Failures {
				fmt.Fprintf(w, "    %s\n", failure)
			}
		}
	}

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "=== Test Summary ===\n")
	fmt.Fprintf(w, "Documents: %d\n", len(summaries))
	fmt.Fprintf(w, "Cases: %d total, %d passed, %d failed\n", total, passed, failed)

	if failed == 0 {
		fmt.Fprintf(w, "\nAll tests passed! ✅\n")
	} else {
		fmt.Fprintf(w, "\nSome tests failed! ❌\n")
	}

	return failed
}
