// =============================================================================
// Tabular Converter - File Utilities
// =============================================================================
//
// Small helpers shared by the format packages and the CLI:
//   - Output file creation (parent directories are created on demand)
//   - File existence and size checks used for logging
//   - Run identifiers attached to every conversion's log lines
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILES
// =============================================================================

// CreateOutputFile creates or truncates the file at path.
//
// Missing parent directories are created first, so an output path like
// "out/2024/people.csv" works without preparing the tree.
//
// RETURNS:
//   - The open file. The caller must Close it.
//   - An error if the directory or file cannot be created.
func CreateOutputFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, nil
}

// =============================================================================
// FILE INFORMATION
// =============================================================================

// FileExists checks if a regular file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// FileSize returns the size of a file in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to stat file: %w", err)
	}
	return info.Size(), nil
}

// =============================================================================
// RUN IDENTIFIERS
// =============================================================================

// NewRunID returns a random identifier for one conversion run.
func NewRunID() string {
	return uuid.New().String()
}
