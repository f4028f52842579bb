// Package config holds the toolchain constants used to build compile flags.
// The compiled-in defaults reproduce a stock MDK5 installation; an optional
// TOML file can override them when the toolchain lives elsewhere.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrConfig is returned for unreadable or invalid configuration files.
var ErrConfig = errors.New("invalid configuration")

const (
	DefaultProjectDir = "MDK-ARM"
	DefaultPattern    = "*.uvprojx"
	DefaultOutput     = "compile_flags.txt"
)

// Config holds every setting the generator depends on.
type Config struct {
	ProjectDir     string   `toml:"project_dir"`     // Directory searched for the descriptor, relative to the working directory.
	Pattern        string   `toml:"pattern"`         // Glob matched inside ProjectDir.
	Output         string   `toml:"output"`          // Output file, relative to the working directory.
	SystemIncludes []string `toml:"system_includes"` // Compiler include directories, kept absolute.
	BaseFlags      []string `toml:"base_flags"`      // Flags emitted before anything derived from the project.
	ExtraFlags     []string `toml:"extra_flags"`     // Appended after BaseFlags.
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ProjectDir: DefaultProjectDir,
		Pattern:    DefaultPattern,
		Output:     DefaultOutput,
		SystemIncludes: []string{
			`F:\MDK5\ARM\ARMCC\include`,
			`F:\MDK5\ARM\ARMCC\include\rw`,
		},
		BaseFlags: []string{
			"-xc",
			"-std=c99",
			"--target=arm-none-eabi",
			"-fms-extensions",
			"-fdeclspec",
			// ARMCC keywords mapped to something clang accepts.
			"-D__forceinline=inline",
			"-D__irq=",
			"-D__value_in_regs=",
			"-D__weak=__attribute__((weak))",
			"-D__packed=__attribute__((__packed__))",
			"-D__align(x)=",
			"-D__int64=long long",
			"-D__svc(x)=",
			"-D__declspec(x)=",
			"-D__asm(x)=",
			"-D__inline=inline",
		},
	}
}

// Load returns the defaults overlaid with the TOML file at path.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfig, path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file %s: %v", ErrConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the locations needed for a run are set.
func (c *Config) Validate() error {
	switch {
	case c.ProjectDir == "":
		return fmt.Errorf("%w: project_dir must not be empty", ErrConfig)
	case c.Pattern == "":
		return fmt.Errorf("%w: pattern must not be empty", ErrConfig)
	case c.Output == "":
		return fmt.Errorf("%w: output must not be empty", ErrConfig)
	}
	return nil
}

// Baseline returns BaseFlags followed by ExtraFlags.
func (c *Config) Baseline() []string {
	flags := make([]string, 0, len(c.BaseFlags)+len(c.ExtraFlags))
	flags = append(flags, c.BaseFlags...)
	return append(flags, c.ExtraFlags...)
}
