package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"uvflags/pkg/config"
	"uvflags/pkg/flags"
	"uvflags/pkg/generate"
	"uvflags/pkg/keil"
	"uvflags/pkg/logging"
	"uvflags/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debug      bool
	configPath string
	projectDir string
	pattern    string
	output     string
	dryRun     bool
)

// RootCmd is the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "uvflags",
	Short: "uvflags generates compile_flags.txt from a Keil uVision project",
	Long: `uvflags reads the include paths and defines of a Keil MDK-ARM project (*.uvprojx)
and writes them as compile_flags.txt for clangd and other clang-based tools.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Setup(debug, "uvflags", version.Version); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		result, err := generate.Run(cmd.Context(), cfg, generate.Options{
			DryRun: dryRun,
			Stdout: cmd.OutOrStdout(),
		}, logging.Logger)
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		}
		report(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	RootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML file overriding the built-in toolchain settings")
	RootCmd.Flags().StringVar(&projectDir, "project-dir", config.DefaultProjectDir, "Directory searched for the project file")
	RootCmd.Flags().StringVar(&pattern, "pattern", config.DefaultPattern, "Glob used to find the project file")
	RootCmd.Flags().StringVarP(&output, "output", "o", config.DefaultOutput, "File the flags are written to")
	RootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the flags instead of writing them")
}

// loadConfig applies explicitly set flags on top of the config file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("project-dir") {
		cfg.ProjectDir = projectDir
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = pattern
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	return cfg, cfg.Validate()
}

func report(w io.Writer, result *generate.Result) {
	if len(result.Candidates) > 1 {
		fmt.Fprintf(w, "Warning: found %d project files %v, using the first: %s\n",
			len(result.Candidates), result.Candidates, result.Descriptor)
	}
	fmt.Fprintf(w, "Using project file: %s\n", result.Descriptor)
	fmt.Fprintf(w, "Success! Wrote %d flags to %s\n", len(result.Flags), result.Output)
}

// describe turns a pipeline error into the message shown to the user.
func describe(err error) string {
	switch {
	case errors.Is(err, keil.ErrNotFound):
		return fmt.Sprintf("Error: no project file found (%v)", err)
	case errors.Is(err, keil.ErrParse):
		return fmt.Sprintf("Error: failed to parse project XML: %v", err)
	case errors.Is(err, flags.ErrWrite):
		return fmt.Sprintf("Error: could not write output: %v", err)
	case errors.Is(err, config.ErrConfig):
		return fmt.Sprintf("Error: %v", err)
	case errors.Is(err, context.Canceled):
		return "Interrupted"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

// Execute runs the root command and prints any failure to standard output.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(RootCmd.OutOrStdout(), describe(err))
		if logging.Logger != nil {
			logging.Logger.Debug("uvflags execution failed", zap.Error(err))
		}
	}
	return err
}
