// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the xcsummary CLI. The root command
// summarizes one .xcresult bundle; subcommands list the run history and
// print the version.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/xcsummary/internal/config"
	"github.com/pdiddy/xcsummary/internal/xcresult"
)

// version is set at build time via ldflags.
var version = "dev"

// Exit codes.
const (
	exitOK            = 0
	exitUsage         = 2
	exitToolFailed    = 3
	exitReadFailed    = 4
	exitBundleMissing = exitUsage
)

var (
	// settings holds the resolved flags, environment, and config file values.
	settings = viper.New()

	logger = zap.NewNop()
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// rootCmd summarizes a single bundle.
var rootCmd = &cobra.Command{
	Use:   "xcsummary <bundle.xcresult>",
	Short: "Summarize an Xcode test result bundle as Markdown",
	Long: `xcsummary reads the test-results summary of an .xcresult bundle through
xcrun xcresulttool and prints it as a Markdown section: overall result, test
counts, bundle path, run title, environment, and up to 20 failing tests.

The section is meant to be appended to a larger report, e.g. a CI job summary:

  xcsummary --kind "Unit Tests" build/Unit.xcresult >> "$GITHUB_STEP_SUMMARY"

Settings come from flags, XCSUMMARY_* environment variables, or xcsummary.yaml
in the working directory or ~/.config/xcsummary/.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l

		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Init(settings, cfgFile)
		if err != nil {
			return withCode(exitUsage, err)
		}
		if used != "" {
			logger.Debug("using config file", zap.String("path", used))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runSummarize,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./xcsummary.yaml or ~/.config/xcsummary/xcsummary.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().String("history-db", "", "history database path (default .xcsummary/history.db)")

	rootCmd.Flags().String("kind", config.DefaultKind, `report section label (e.g. "Unit Tests", "UI Tests")`)
	rootCmd.Flags().String("format", "markdown", "output format: markdown, json, or yaml")
	rootCmd.Flags().String("lang", "en", "label language for Markdown output: en or pt-BR")
	rootCmd.Flags().String("xcrun", xcresult.DefaultXcrun, "xcrun binary used to run xcresulttool")
	rootCmd.Flags().Bool("record", false, "append the summary to the history database")

	bindFlag(config.KeyKind, rootCmd.Flags().Lookup("kind"))
	bindFlag(config.KeyFormat, rootCmd.Flags().Lookup("format"))
	bindFlag(config.KeyLang, rootCmd.Flags().Lookup("lang"))
	bindFlag(config.KeyXcrun, rootCmd.Flags().Lookup("xcrun"))
	bindFlag(config.KeyRecord, rootCmd.Flags().Lookup("record"))
	bindFlag(config.KeyHistoryDB, rootCmd.PersistentFlags().Lookup("history-db"))
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := settings.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

// newLogger builds the stderr logger; verbose lowers the level to debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}

// execute runs the CLI with args and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return exitCode(rootCmd.Execute(), stderr)
}

// exitCode reports err on stderr and maps it to an exit code. Errors that
// carry no code are usage errors from flag or argument parsing.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintf(stderr, "xcsummary: %v\n", err)

	var toolErr *xcresult.ToolError
	if errors.As(err, &toolErr) {
		if out := strings.TrimRight(toolErr.Output, "\n"); out != "" {
			fmt.Fprintln(stderr, out)
		}
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
