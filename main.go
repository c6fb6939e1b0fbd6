// =============================================================================
// Tabular Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Tabular Converter CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   converter <input_file> <output_file> <input_format> <output_format>
//   converter preview <input_file> <input_format>
//   converter config
//   converter version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/tabular-converter/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// builds and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
