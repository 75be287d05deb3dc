// Package engine orchestrates the rename batch: enumerate a directory,
// sanitize each filename, classify collisions by content hash, move files
// through the backend, and record every rename in the directory's sidecar.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlexGiov/file-renamer/internal/fileops"
	"github.com/AlexGiov/file-renamer/internal/hashing"
	"github.com/AlexGiov/file-renamer/internal/sanitize"
	"github.com/AlexGiov/file-renamer/internal/sidecar"
)

// Logger is the minimal logging interface the engine needs. Defined here
// (rather than importing the logging package) so the engine stays
// testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Options controls one batch run.
type Options struct {
	Recursive bool
	DryRun    bool
}

// Engine applies the rename algorithm over one backend. Instances are
// self-contained and cheap to construct; nothing is shared between runs.
type Engine struct {
	ops      fileops.Interface
	hasher   hashing.Computer
	sidecars *sidecar.Manager
	log      Logger
	verbose  bool
}

// New wires an engine from its injected capabilities.
func New(ops fileops.Interface, hasher hashing.Computer, sidecars *sidecar.Manager, log Logger, verbose bool) *Engine {
	return &Engine{ops: ops, hasher: hasher, sidecars: sidecars, log: log, verbose: verbose}
}

// Run processes dir and returns one Result per file entry encountered.
// Directories are containers only: they are never renamed and never
// produce a Result. Files in a directory are processed (and their sidecar
// written) before descending into subdirectories, so each sidecar stays
// self-contained. The returned error joins directory-level failures
// (unlistable directories); per-file errors live on their Result.
func (e *Engine) Run(ctx context.Context, dir string, opts Options) ([]Result, error) {
	var results []Result
	var errs []error
	e.processDir(ctx, dir, opts, &results, &errs)
	return results, errors.Join(errs...)
}

func (e *Engine) processDir(ctx context.Context, dir string, opts Options, results *[]Result, errs *[]error) {
	entries, err := e.ops.List(ctx, dir)
	if err != nil {
		e.log.Error("Cannot list %s: %v", dir, err)
		*errs = append(*errs, err)
		return
	}

	firstInDir := len(*results)
	var pending []sidecar.Entry

	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if entry.Name == sidecar.Filename {
			continue
		}
		// On cancellation, stop taking new entries but still flush the
		// sidecar below: renames already performed must stay audited.
		if ctx.Err() != nil {
			e.log.Warn("Interrupted")
			break
		}

		res, audit := e.processFile(ctx, dir, entry.Name, opts.DryRun)
		*results = append(*results, res)
		if audit != nil {
			pending = append(pending, *audit)
		}
	}

	// One sidecar write per directory, detached from cancellation so an
	// interrupt never leaves performed renames unaudited. Failure does not
	// undo the moves: the affected results are re-marked as
	// renamed-but-unaudited.
	if !opts.DryRun && len(pending) > 0 {
		if _, err := e.sidecars.Append(context.WithoutCancel(ctx), dir, pending); err != nil {
			e.log.Warn("Sidecar write failed in %s: %v (files renamed, audit entry missing)", dir, err)
			for i := firstInDir; i < len(*results); i++ {
				if (*results)[i].Kind == KindRenamed {
					(*results)[i].Kind = KindUnaudited
					(*results)[i].Err = err.Error()
				}
			}
		}
	}

	if !opts.Recursive {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		e.processDir(ctx, e.ops.Join(dir, entry.Name), opts, results, errs)
	}
}

// processFile runs the per-entry state machine: sanitize, collision-check,
// move, hash. The returned sidecar entry is non-nil only for a performed
// (non-dry-run) rename.
func (e *Engine) processFile(ctx context.Context, dir, name string, dryRun bool) (Result, *sidecar.Entry) {
	start := time.Now()
	path := e.ops.Join(dir, name)
	done := func(r Result) Result {
		r.Original = name
		r.OriginalPath = path
		r.Timing = Timing{Start: start, End: time.Now()}
		return r
	}

	if sanitize.IsSystemFile(name) {
		e.log.Debug(e.verbose, "Skip (system file): %s", name)
		return done(Result{Kind: KindSystemFile}), nil
	}

	safe := sanitize.Sanitize(name)
	if safe == name {
		e.log.Debug(e.verbose, "Already safe: %s", name)
		return done(Result{Kind: KindAlreadySafe}), nil
	}
	newPath := e.ops.Join(dir, safe)

	exists, err := e.ops.Exists(ctx, newPath)
	if err != nil {
		e.log.Error("Cannot check %s: %v", newPath, err)
		return done(Result{Kind: KindIOFailure, Err: err.Error()}), nil
	}

	if exists {
		return e.classifyCollision(ctx, done, path, newPath, name, safe), nil
	}

	if dryRun {
		e.log.Info("[DRY] Would rename: %s -> %s", name, safe)
		return done(Result{Kind: KindRenamed, NewName: safe, NewPath: newPath}), nil
	}

	if err := e.ops.Move(ctx, path, newPath); err != nil {
		e.log.Error("Rename failed: %s: %v", name, err)
		return done(Result{Kind: KindIOFailure, Err: err.Error()}), nil
	}

	hash, err := e.hashAt(ctx, newPath)
	if err != nil {
		// The move itself succeeded; only the audit record is missing.
		e.log.Warn("Renamed %s -> %s but could not hash for audit: %v", name, safe, err)
		return done(Result{Kind: KindUnaudited, NewName: safe, NewPath: newPath, Err: err.Error()}), nil
	}

	e.log.Success("Renamed: %s -> %s", name, safe)
	return done(Result{Kind: KindRenamed, NewName: safe, NewPath: newPath, Hash: hash}),
		&sidecar.Entry{Original: name, Renamed: safe, Hash: hash, Algorithm: e.hasher.Algorithm()}
}

// classifyCollision decides duplicate vs conflict by hashing both sides.
// In neither case is anything moved or deleted.
func (e *Engine) classifyCollision(ctx context.Context, done func(Result) Result, path, newPath, name, safe string) Result {
	srcHash, err := e.hashAt(ctx, path)
	if err != nil {
		e.log.Error("Cannot hash %s: %v", name, err)
		return done(Result{Kind: KindHashFailure, Err: err.Error()})
	}
	dstHash, err := e.hashAt(ctx, newPath)
	if err != nil {
		e.log.Error("Cannot hash %s: %v", newPath, err)
		return done(Result{Kind: KindHashFailure, Err: err.Error()})
	}

	if srcHash == dstHash {
		e.log.Info("Skip (duplicate of %s): %s", safe, name)
		return done(Result{Kind: KindCollisionMatch, NewName: safe, Hash: srcHash})
	}

	e.log.Warn("Conflict: %s wants name %s, which exists with different content", name, safe)
	return done(Result{
		Kind:    KindCollisionConflict,
		NewName: safe,
		Hash:    srcHash,
		Err:     fmt.Sprintf("destination %s exists with different content (%s vs %s)", safe, srcHash, dstHash),
	})
}

// hashAt streams the file at path through the configured hasher.
func (e *Engine) hashAt(ctx context.Context, path string) (string, error) {
	rc, err := e.ops.OpenRead(ctx, path)
	if err != nil {
		return "", err
	}
	sum, err := e.hasher.Sum(rc)
	closeErr := rc.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", closeErr
	}
	return sum, nil
}
