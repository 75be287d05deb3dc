package engine

import "time"

// Kind classifies the outcome of processing one file entry.
type Kind string

const (
	// KindRenamed: the file was moved to its safe name and audited.
	KindRenamed Kind = "renamed"
	// KindAlreadySafe: sanitization was a no-op, nothing touched.
	KindAlreadySafe Kind = "already-safe"
	// KindSystemFile: OS artifact, excluded from renaming.
	KindSystemFile Kind = "system-file"
	// KindCollisionMatch: destination exists with identical content; the
	// entry is a duplicate and is skipped without error.
	KindCollisionMatch Kind = "collision-match"
	// KindCollisionConflict: destination exists with different content;
	// skipped and reported as a per-file error, nothing touched.
	KindCollisionConflict Kind = "collision-conflict"
	// KindIOFailure: a list/move/read primitive failed for this file.
	KindIOFailure Kind = "io-failure"
	// KindHashFailure: source content could not be read for hashing.
	KindHashFailure Kind = "hash-failure"
	// KindUnaudited: the move succeeded but the audit record could not be
	// written. The data is safe; the sidecar is missing this mapping.
	KindUnaudited Kind = "renamed-unaudited"
)

// Timing captures wall-clock bounds of one file operation. Observability
// only; never used for control flow.
type Timing struct {
	Start time.Time
	End   time.Time
}

// Duration returns the elapsed time of the operation.
func (t Timing) Duration() time.Duration { return t.End.Sub(t.Start) }

// Result is the immutable outcome record for one file entry. NewName and
// NewPath are empty whenever the file was not (and would not be) moved.
type Result struct {
	Kind         Kind
	Original     string
	NewName      string
	OriginalPath string
	NewPath      string
	Hash         string
	Err          string
	Timing       Timing
}

// Renamed reports whether the file was moved (or would be, in dry-run).
func (r Result) Renamed() bool {
	return r.Kind == KindRenamed || r.Kind == KindUnaudited
}

// Success reports whether the entry completed without a per-file error.
// Renamed always implies Success.
func (r Result) Success() bool {
	switch r.Kind {
	case KindCollisionConflict, KindIOFailure, KindHashFailure:
		return false
	}
	return true
}

// Stats aggregates a batch of results. Derived, never mutated: recompute
// with [Collect] from the result sequence.
type Stats struct {
	Total       int
	Renamed     int
	AlreadySafe int
	SystemFiles int
	Duplicates  int
	Unaudited   int
	Errors      int
}

// Collect derives Stats from a result sequence.
func Collect(results []Result) Stats {
	var s Stats
	s.Total = len(results)
	for _, r := range results {
		switch r.Kind {
		case KindRenamed:
			s.Renamed++
		case KindUnaudited:
			s.Renamed++
			s.Unaudited++
		case KindAlreadySafe:
			s.AlreadySafe++
		case KindSystemFile:
			s.SystemFiles++
		case KindCollisionMatch:
			s.Duplicates++
		}
		if !r.Success() {
			s.Errors++
		}
	}
	return s
}
