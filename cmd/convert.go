// =============================================================================
// Tabular Converter - Convert Command
// =============================================================================
//
// This file implements the conversion run by the root command.
//
// PROCESSING PIPELINE:
//   1. Load configuration (defaults, file, environment, flags)
//   2. Set up logging on stderr with a fresh run_id
//   3. Convert the input to the output format
//   4. Print the success line on stdout
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/tabular-converter/internal/config"
	"github.com/ginjaninja78/tabular-converter/internal/converter"
	"github.com/ginjaninja78/tabular-converter/internal/logging"
	"github.com/ginjaninja78/tabular-converter/pkg/utils"
)

func runConvert(cmd *cobra.Command, opts *rootOptions, args []string) error {
	cfg, ctx, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	conv := converter.New(logging.FromContext(ctx))
	result, err := conv.Convert(ctx, converter.Request{
		InputPath:    args[0],
		OutputPath:   args[1],
		InputFormat:  args[2],
		OutputFormat: args[3],
		SQLTable:     cfg.SQLTable,
		DBURI:        cfg.DBURI,
		Options:      converter.OptionsFromConfig(cfg),
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message())
	return nil
}

// setup loads the configuration and returns a context whose logger carries
// this run's id.
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, context.Context, error) {
	cfg, err := config.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger := logging.Setup(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRun(logging.NewContext(ctx, logger), utils.NewRunID())

	if cfg.File != "" {
		logging.FromContext(ctx).Debug("using config file", slog.String("path", cfg.File))
	}
	return cfg, ctx, nil
}
