package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/shibukawa/stepcalc"
)

// Context represents the global context for commands
type Context struct {
	Config  *stepcalc.Config
	Verbose bool
	Quiet   bool
	Logger  logr.Logger
	Stdout  io.Writer
	Stdin   io.Reader

	// LocaleFlag holds --locale when given; it outranks document locales
	LocaleFlag string
}

// options returns the evaluation options derived from the configuration
func (c *Context) options() []stepcalc.Option {
	return []stepcalc.Option{
		stepcalc.WithLocale(c.Config.Locale),
		stepcalc.WithLogger(c.Logger),
	}
}

// CLI represents the command-line interface
var CLI struct {
	Config  string     `help:"Configuration file path" default:"stepcalc.yaml"`
	Verbose bool       `help:"Enable verbose output" short:"v"`
	Quiet   bool       `help:"Suppress output" short:"q"`
	Locale  string     `help:"Narration locale such as en or es (overrides config)"`
	Output  string     `help:"Output format: text, json or yaml (overrides config)" short:"o"`
	NoColor bool       `help:"Disable colored output"`
	Eval    EvalCmd    `cmd:"" help:"Evaluate expressions and narrate the steps"`
	Postfix PostfixCmd `cmd:"" help:"Show the postfix form of expressions"`
	Test    TestCmd    `cmd:"" help:"Run markdown case documents"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "stepcalc v0.1.0")
	return nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("stepcalc"),
		kong.Description("Evaluate integer arithmetic and explain every step"),
	)

	appCtx, cleanup, err := newContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	err = kctx.Run(appCtx)
	if err != nil {
		if !appCtx.Quiet {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		cleanup()
		os.Exit(1)
	}
}

// newContext loads configuration, applies flag overrides and builds the logger
func newContext() (*Context, func(), error) {
	config, err := stepcalc.LoadConfig(CLI.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := applyOverrides(config, CLI.Locale, CLI.Output, CLI.NoColor); err != nil {
		return nil, nil, err
	}

	if !config.IsColorEnabled() {
		color.NoColor = true
	}

	logger, cleanup, err := newLogger(config.LogLevel, CLI.Verbose)
	if err != nil {
		return nil, nil, err
	}

	return &Context{
		Config:  config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Logger:  logger,
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,

		LocaleFlag: CLI.Locale,
	}, cleanup, nil
}

// applyOverrides applies command line flags on top of the loaded configuration
func applyOverrides(config *stepcalc.Config, locale, output string, noColor bool) error {
	if locale != "" {
		config.Locale = locale
	}

	if output != "" {
		config.Output = output
	}

	if noColor {
		disabled := false
		config.Color = &disabled
	}

	return stepcalc.ValidateConfig(config)
}
