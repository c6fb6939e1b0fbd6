// =============================================================================
// Tabular Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself; the other commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   converter <input_file> <output_file> <input_format> <output_format>
//   ├── preview (converter preview <input_file> <input_format>)
//   ├── config  (converter config)
//   └── version (converter version)
//
// CONFIGURATION:
//   Every setting can come from a flag, a CONVERTER_* environment variable or
//   converter.yaml. See internal/config for the precedence rules.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/converter"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	// cfgFile is the path given with --config. Empty means converter.yaml
	// in the working directory, if present.
	cfgFile string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "converter <input_file> <output_file> <input_format> <output_format>",
		Short: "Convert data files between CSV, Excel, JSON, and SQL formats",
		Long: `Convert a tabular dataset from one format to another.

Formats: csv, excel, json, sql. For sql, the file arguments are ignored and
--sql_table plus --db_uri select the table instead.

Example Usage:
  converter people.csv people.json csv json
  converter report.xlsx report.csv excel csv --sheet Summary
  converter people.json - json sql --sql_table people --db_uri sqlite:///people.db
  converter - export.csv sql csv --sql_table public.orders --db_uri postgresql://app@db/shop`,

		Args:              validateConvertArgs,
		ValidArgsFunction: completeConvertArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.cfgFile, "config", "", "Path to a YAML configuration file (default: converter.yaml if present)")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	pf.String("log-format", config.DefaultLogFormat, "Log format: text, json")

	// Input settings, shared with preview and reported by config.
	pf.String("sql_table", "", "Table name for SQL input/output")
	pf.String("db_uri", "", "Database URI for SQL input/output")
	pf.String("csv-delimiter", config.DefaultDelimiter, "CSV field delimiter (a character, or tab, pipe, semicolon)")
	pf.String("csv-encoding", config.DefaultEncoding, "CSV character encoding, e.g. UTF-8, ISO-8859-1, Windows-1252")
	pf.String("sheet", "", "Excel worksheet to read or write (default: first sheet / Sheet1)")

	// ==========================================================================
	// OUTPUT FLAGS
	// ==========================================================================

	f := rootCmd.Flags()
	f.String("if-exists", config.DefaultIfExists, "What to do when the SQL output table exists: replace, append, fail")
	f.Int("json-indent", 0, "Indent JSON output by this many spaces (0 writes compact JSON)")

	rootCmd.AddCommand(
		newPreviewCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
// Errors are printed to stderr and the process exits with status 1.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// ARGUMENT VALIDATION
// =============================================================================

// checkFormatArg validates a positional format argument.
func checkFormatArg(name, value string) error {
	if _, err := converter.ParseFormat(value); err != nil {
		return fmt.Errorf("argument %s: invalid choice: %q (choose from %s)",
			name, value, strings.Join(converter.FormatNames(), ", "))
	}
	return nil
}

func validateConvertArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("requires 4 arguments: <input_file> <output_file> <input_format> <output_format>, received %d", len(args))
	}
	if err := checkFormatArg("input_format", args[2]); err != nil {
		return err
	}
	return checkFormatArg("output_format", args[3])
}

// completeConvertArgs completes file names for the first two positions and
// format names for the last two.
func completeConvertArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0, 1:
		return nil, cobra.ShellCompDirectiveDefault
	case 2, 3:
		return converter.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}
