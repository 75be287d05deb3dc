// Command renamer is the CLI entrypoint for the safe filename sanitizer.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check) or the rename batch against a local directory or
// an rclone-style remote.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlexGiov/file-renamer/internal/check"
	"github.com/AlexGiov/file-renamer/internal/config"
	"github.com/AlexGiov/file-renamer/internal/display"
	"github.com/AlexGiov/file-renamer/internal/engine"
	"github.com/AlexGiov/file-renamer/internal/fileops"
	"github.com/AlexGiov/file-renamer/internal/logging"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "2.0.0"
	commit  = "unknown"
)

// exitInterrupted is the conventional exit code for SIGINT (128 + 2).
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	code := 0

	rootCmd := &cobra.Command{
		Use:   "renamer [flags] <directory>",
		Short: "Sanitize unsafe filenames in a local or remote directory",
		Long: `Renamer walks a directory, replaces cross-platform-unsafe characters in
filenames, resolves name collisions by content hash, and records every
rename in a per-directory audit sidecar.

The target is a local path or an rclone-style remote such as
"gdrive:Photos/2024". Remote targets are driven through the rclone
binary; run --check to verify your rclone setup.`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper()
			if len(args) == 1 {
				cfg.TargetPath = config.NormalizeTarget(args[0])
			}
			code = execute(&cfg)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolP("dry-run", "d", false, "preview renames without changing anything")
	flags.Bool("recursive", true, "descend into subdirectories")
	flags.BoolP("verbose", "v", false, "debug-level output")
	flags.Bool("check", false, "run system diagnostics and exit")
	flags.String("rclone-path", "", "rclone binary used for remote targets")
	flags.String("log", "", "append run output to this file")
	flags.String("color", "auto", "color output: auto, always or never")

	if err := config.BindFlags(flags); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	return code
}

func execute(cfg *config.Config) int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all output goes
	// through the logger for consistent formatting and log-file capture.
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renamer: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(cfg.RclonePath, log) {
			return 1
		}
		return 0
	}

	log.Info("=== Renamer v%s (%s) ===", version, commit)
	log.Info("Target: %s", cfg.TargetPath)
	if fileops.IsRemotePath(cfg.TargetPath) {
		log.Info("Backend: remote (rclone)")
	} else {
		log.Info("Backend: local")
	}
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be renamed")
	}
	log.Info("")

	// Backend wiring includes the rclone pre-flight for remote targets.
	eng, err := engine.NewFromPath(cfg.TargetPath, cfg, log)
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// batch stops between files without leaving partial state.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run the batch and report.
	start := time.Now()
	results, runErr := eng.Run(ctx, cfg.TargetPath, engine.Options{
		Recursive: cfg.Recursive,
		DryRun:    cfg.DryRun,
	})
	stats := engine.Collect(results)
	display.PrintSummary(stats, time.Since(start), cfg.DryRun)

	if runErr != nil {
		log.Error("Completed with directory errors: %v", runErr)
	}
	if ctx.Err() != nil {
		return exitInterrupted
	}
	if runErr != nil || stats.Errors > 0 {
		return 1
	}
	return 0
}
