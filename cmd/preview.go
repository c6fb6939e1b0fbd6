// =============================================================================
// Tabular Converter - Preview Command
// =============================================================================
//
// This file defines the 'preview' command, which reads an input with the
// same readers as a conversion and prints its first rows as a table.
//
// COMMAND USAGE:
//   converter preview <input_file> <input_format> [--rows N]
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/converter"
	"github.com/ginjaninja78/tabular-converter/internal/dataset"
	"github.com/ginjaninja78/tabular-converter/internal/logging"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	previewCmd := &cobra.Command{
		Use:   "preview <input_file> <input_format>",
		Short: "Show the first rows of an input as a table",
		Long: `Read an input exactly as a conversion would and print its first rows.

Example Usage:
  converter preview people.csv csv
  converter preview report.xlsx excel --sheet Summary --rows 5
  converter preview - sql --sql_table people --db_uri sqlite:///people.db`,

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("requires 2 arguments: <input_file> <input_format>, received %d", len(args))
			}
			return checkFormatArg("input_format", args[1])
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return converter.FormatNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ctx, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			ds, err := converter.New(logging.FromContext(ctx)).Load(ctx, converter.Request{
				InputPath:   args[0],
				InputFormat: args[1],
				SQLTable:    cfg.SQLTable,
				DBURI:       cfg.DBURI,
				Options:     converter.OptionsFromConfig(cfg),
			})
			if err != nil {
				return err
			}

			renderPreview(cmd.OutOrStdout(), ds, cfg.Preview.Rows)
			return nil
		},
	}

	previewCmd.Flags().Int("rows", config.DefaultPreviewRows, "Maximum number of rows to show")

	return previewCmd
}

// renderPreview prints up to limit rows followed by the dataset's shape.
func renderPreview(w io.Writer, ds *dataset.Dataset, limit int) {
	if ds.Width() > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)

		header := make(table.Row, ds.Width())
		for j, name := range ds.Columns() {
			header[j] = name
		}
		t.AppendHeader(header)

		for i := 0; i < ds.Len() && i < limit; i++ {
			row := make(table.Row, ds.Width())
			for j, v := range ds.Row(i) {
				row[j] = previewCell(v)
			}
			t.AppendRow(row)
		}

		t.Render()
	}

	_, _ = fmt.Fprintf(w, "(%d rows, %d columns)\n", ds.Len(), ds.Width())
}

func previewCell(v any) string {
	if v == nil {
		return "NULL"
	}
	return dataset.FormatText(v)
}
