// Package check provides sync-tool diagnostics (--check mode) and the
// pre-flight validation that runs before any remote rename is attempted.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/AlexGiov/file-renamer/internal/fileops"
)

// Sentinel errors returned by Preflight when the sync tool is unusable.
var (
	ErrRcloneNotFound    = errors.New("rclone not found on PATH (install rclone or pass --rclone-path)")
	ErrRcloneNotRunnable = errors.New("rclone found but 'rclone version' failed")
)

// Logger is the minimal logging interface needed by RunCheck.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: reports rclone availability,
// its version, and the configured remotes. Informational only; returns
// false if rclone is unusable.
func RunCheck(binary string, log Logger) bool {
	log.Info("=== System Check ===")
	binary = resolveBinary(binary)

	path, err := exec.LookPath(binary)
	if err != nil {
		log.Error("rclone not found (%s)", binary)
		return false
	}
	log.Success("rclone: %s", path)

	out, err := exec.Command(binary, "version").Output()
	if err != nil {
		log.Error("rclone version failed: %v", err)
		return false
	}
	log.Info("  %s", firstLine(string(out)))

	remotes, err := exec.Command(binary, "listremotes").Output()
	if err != nil {
		log.Warn("Could not list remotes: %v", err)
		return true
	}
	names := strings.Fields(string(remotes))
	if len(names) == 0 {
		log.Warn("No remotes configured (run 'rclone config')")
		return true
	}
	log.Info("Configured remotes:")
	for _, name := range names {
		log.Info("  %s", name)
	}
	return true
}

// Preflight verifies the sync tool exists and runs before a remote batch
// starts. A failure here aborts the whole run; it is never reported
// per-file.
func Preflight(binary string) error {
	binary = resolveBinary(binary)
	if _, err := exec.LookPath(binary); err != nil {
		return ErrRcloneNotFound
	}
	if !runSilent(binary, "version") {
		return ErrRcloneNotRunnable
	}
	return nil
}

func resolveBinary(binary string) string {
	if binary == "" {
		return fileops.DefaultRcloneBinary
	}
	return binary
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
