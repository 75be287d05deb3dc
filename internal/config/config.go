// Package config holds runtime configuration: defaults, environment
// binding, and validation. Flags are declared by the CLI; this package
// owns the merged view (flags over RENAMER_* environment variables over
// defaults) via viper.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides: RENAMER_DRY_RUN, RENAMER_VERBOSE...
const EnvPrefix = "RENAMER"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig]
// and then overlaid by [FromViper] before being passed (by pointer) to
// packages that need it.
type Config struct {
	// TargetPath is the directory to process: a local path or an
	// rclone-style remote spec such as "gdrive:Photos". Set from the
	// positional argument, never from the environment.
	TargetPath string

	// Behavior flags.
	DryRun    bool
	Recursive bool // Default: true. Cleared by --recursive=false.
	CheckOnly bool // Run --check diagnostics and exit.

	// Remote backend.
	RclonePath string // Optional override for the rclone binary.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the stock defaults: recursive
// descent on, everything else off.
func DefaultConfig() Config {
	return Config{
		Recursive: true,
		ColorMode: ColorAuto,
	}
}

// BindFlags connects a parsed flag set to viper and enables RENAMER_*
// environment overrides. Flag keys map to env names with dashes folded
// to underscores ("dry-run" -> RENAMER_DRY_RUN).
func BindFlags(flags *pflag.FlagSet) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	return viper.BindPFlags(flags)
}

// FromViper materializes the merged configuration after flag parsing.
func FromViper() Config {
	cfg := DefaultConfig()
	cfg.DryRun = viper.GetBool("dry-run")
	cfg.Recursive = viper.GetBool("recursive")
	cfg.CheckOnly = viper.GetBool("check")
	cfg.RclonePath = viper.GetString("rclone-path")
	cfg.Verbose = viper.GetBool("verbose")
	cfg.ColorMode = ColorMode(viper.GetString("color"))
	cfg.LogFile = viper.GetString("log")
	return cfg
}

// NormalizeTarget strips trailing slashes from a directory argument.
// The filesystem root "/" and bare remote roots like "gdrive:" are
// returned unchanged so we don't produce an empty or different path.
func NormalizeTarget(path string) string {
	if path == "/" || strings.HasSuffix(path, ":") {
		return path
	}
	return strings.TrimRight(path, "/")
}

// Validate checks enum fields and, when not in CheckOnly mode, requires
// a target path.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.CheckOnly {
		return nil
	}
	if c.TargetPath == "" {
		return errors.New("need a target directory (local path or remote:path)")
	}
	return nil
}
