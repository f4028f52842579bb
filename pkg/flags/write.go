// File: pkg/flags/write.go
package flags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// ErrWrite is returned when the flag list cannot be written.
var ErrWrite = errors.New("failed to write flags")

// Render writes the flags one per line, without a trailing newline.
func Render(w io.Writer, flags []string) error {
	if _, err := io.WriteString(w, strings.Join(flags, "\n")); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Write replaces the file at path with the rendered flags and returns the
// number of flags written.
func Write(path string, flags []string, logger *zap.Logger) (int, error) {
	logger.Debug("Writing compile flags", zap.String("output", path), zap.Int("flags", len(flags)))

	if err := os.WriteFile(path, []byte(strings.Join(flags, "\n")), 0644); err != nil {
		logger.Error("Failed to write compile flags", zap.String("output", path), zap.Error(err))
		return 0, fmt.Errorf("%w to %s: %v", ErrWrite, path, err)
	}

	logger.Debug("Successfully wrote file", zap.String("output", path))
	return len(flags), nil
}
