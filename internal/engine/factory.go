package engine

import (
	"fmt"

	"github.com/AlexGiov/file-renamer/internal/check"
	"github.com/AlexGiov/file-renamer/internal/config"
	"github.com/AlexGiov/file-renamer/internal/fileops"
	"github.com/AlexGiov/file-renamer/internal/hashing"
	"github.com/AlexGiov/file-renamer/internal/sidecar"
)

// NewFromPath builds a ready-to-run engine for target. Backend selection
// is pure string inspection: an rclone-style "remote:path" gets the
// remote backend with MD5 hashing (what cloud providers report), any
// other path gets the local backend with SHA-256. Remote wiring runs the
// rclone pre-flight before returning, so a missing binary fails the run
// up front rather than per-file.
func NewFromPath(target string, cfg *config.Config, log Logger) (*Engine, error) {
	var ops fileops.Interface
	var hasher hashing.Computer

	if fileops.IsRemotePath(target) {
		if err := check.Preflight(cfg.RclonePath); err != nil {
			return nil, fmt.Errorf("remote target %s: %w", target, err)
		}
		ops = fileops.NewRemote(cfg.RclonePath)
		hasher = hashing.NewMD5()
	} else {
		ops = fileops.NewLocal()
		hasher = hashing.NewSHA256()
	}

	return New(ops, hasher, sidecar.NewManager(ops), log, cfg.Verbose), nil
}
