// Package generate runs the descriptor to compile_flags.txt pipeline.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"uvflags/pkg/config"
	"uvflags/pkg/flags"
	"uvflags/pkg/keil"

	"go.uber.org/zap"
)

// Options controls where a run reads from and writes to.
type Options struct {
	WorkDir string    // Base for ProjectDir and Output; the process working directory when empty.
	DryRun  bool      // Render to Stdout instead of writing Output.
	Stdout  io.Writer // Destination for DryRun output.
}

// Result summarises a completed run.
type Result struct {
	Descriptor string   // Parsed descriptor.
	Candidates []string // All descriptors that matched.
	Flags      []string // Generated flag list.
	Output     string   // Written file; empty for a dry run.
}

// Run locates and parses the descriptor, synthesizes the flag list and writes it.
// Nothing is written unless every earlier stage succeeded.
func Run(ctx context.Context, cfg *config.Config, opts Options, logger *zap.Logger) (*Result, error) {
	startTime := time.Now()

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		logger.Error("Failed to resolve working directory", zap.Error(err))
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	logger.Info("Starting flag generation", zap.String("workDir", workDir))

	loc, err := keil.Locate(underWorkDir(workDir, cfg.ProjectDir), cfg.Pattern, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to locate project: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := keil.ParseFile(loc.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	if settings.Empty() {
		logger.Warn("Descriptor has no include paths or defines", zap.String("descriptor", loc.Path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Descriptor: loc.Path,
		Candidates: loc.Candidates,
		Flags:      flags.Synthesize(settings, loc.Path, workDir, cfg),
	}

	if opts.DryRun {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		if err := flags.Render(out, result.Flags); err != nil {
			return nil, err
		}
	} else {
		output := underWorkDir(workDir, cfg.Output)
		if _, err := flags.Write(output, result.Flags, logger); err != nil {
			return nil, err
		}
		result.Output = output
	}

	logger.Info("Flag generation completed",
		zap.String("descriptor", result.Descriptor),
		zap.Int("flags", len(result.Flags)),
		zap.Duration("elapsed", time.Since(startTime)))
	return result, nil
}

// underWorkDir anchors a relative configured path at workDir.
func underWorkDir(workDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
