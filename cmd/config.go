// =============================================================================
// Tabular Converter - Config Command
// =============================================================================
//
// This file defines the 'config' command, which prints the configuration a
// conversion would run with, after all layers are merged. Passwords in
// db_uri are masked.
//
// COMMAND USAGE:
//   converter config [--config FILE] [any setting flag]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/tabular-converter/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(out, "# loaded from %s\n", cfg.File)
			}

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(cfg.Redacted()); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
