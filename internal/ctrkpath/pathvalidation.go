// Package ctrkpath validates filesystem paths the CLI writes to, so a
// malformed -archive flag can't be used to write outside the working
// directory or the temp directory.
package ctrkpath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePathWithinDirectory checks that filePath, once resolved, does not
// escape dir.
func ValidatePathWithinDirectory(filePath, dir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("ctrkpath: resolve absolute path: %w", err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("ctrkpath: resolve directory: %w", err)
	}

	relPath, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return fmt.Errorf("ctrkpath: path is outside directory: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) || filepath.IsAbs(relPath) {
		return fmt.Errorf("ctrkpath: path traversal detected: %s attempts to escape %s", filePath, dir)
	}
	return nil
}

// ValidateOutputPath validates a path the CLI intends to write to (the
// archive database or an exported file). It must resolve within either the
// temp directory or the current working directory.
func ValidateOutputPath(filePath string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("ctrkpath: get working directory: %w", err)
	}

	if err := ValidatePathWithinDirectory(filePath, os.TempDir()); err == nil {
		return nil
	}
	return ValidatePathWithinDirectory(filePath, cwd)
}
