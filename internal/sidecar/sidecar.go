// Package sidecar manages the per-directory audit file that records every
// original → renamed mapping together with a content hash.
//
// One document lives in each processed directory under [Filename]. Writes
// always go read-merge-replace through the backend's atomic WriteFile, so
// a crash mid-write can never corrupt an existing audit trail. Because all
// I/O goes through [fileops.Interface], the same manager serves the local
// and the remote backend.
package sidecar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/AlexGiov/file-renamer/internal/fileops"
)

// Filename is the fixed, well-known sidecar name inside each directory.
const Filename = ".renamed_files.json"

// ErrMalformed marks a sidecar that exists but cannot be parsed. Callers
// must treat this differently from an absent sidecar: overwriting a
// corrupt audit trail would destroy history.
var ErrMalformed = errors.New("malformed sidecar")

// Entry is one original → renamed mapping.
type Entry struct {
	Original  string `json:"original"`
	Renamed   string `json:"renamed"`
	Hash      string `json:"hash"`
	Algorithm string `json:"hash_algorithm"`
}

// entryWire adds the legacy digest field name accepted on read. Older
// sidecars wrote "md5_hash"; canonical output is "hash".
type entryWire struct {
	Original  string `json:"original"`
	Renamed   string `json:"renamed"`
	Hash      string `json:"hash"`
	LegacyMD5 string `json:"md5_hash"`
	Algorithm string `json:"hash_algorithm"`
}

// UnmarshalJSON reads both the canonical and the legacy field layout.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.Original = w.Original
	e.Renamed = w.Renamed
	e.Algorithm = w.Algorithm
	e.Hash = w.Hash
	if e.Hash == "" && w.LegacyMD5 != "" {
		e.Hash = w.LegacyMD5
		if e.Algorithm == "" {
			e.Algorithm = "md5"
		}
	}
	return nil
}

// Document is one directory's audit file: the time of the last write and
// the mappings in rename order.
type Document struct {
	Timestamp time.Time `json:"timestamp"`
	Mappings  []Entry   `json:"mappings"`
}

// Manager reads and appends sidecar documents through a fileops backend.
type Manager struct {
	ops fileops.Interface
	now func() time.Time
}

// NewManager returns a manager writing through ops.
func NewManager(ops fileops.Interface) *Manager {
	return &Manager{ops: ops, now: time.Now}
}

// Path returns the sidecar location for dir.
func (m *Manager) Path(dir string) string {
	return m.ops.Join(dir, Filename)
}

// Read loads dir's sidecar. A missing sidecar returns (nil, nil); content
// that exists but does not parse returns an [ErrMalformed] error.
func (m *Manager) Read(ctx context.Context, dir string) (*Document, error) {
	path := m.Path(dir)
	ok, err := m.ops.Exists(ctx, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	rc, err := m.ops.OpenRead(ctx, path)
	if err != nil {
		return nil, err
	}
	data, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read sidecar %s: %w", path, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("read sidecar %s: %w", path, closeErr)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &doc, nil
}

// Append merges entries into dir's document, refreshes the timestamp, and
// writes the whole document back atomically. The merged document is
// returned. A malformed existing sidecar aborts the append.
func (m *Manager) Append(ctx context.Context, dir string, entries []Entry) (*Document, error) {
	doc, err := m.Read(ctx, dir)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &Document{}
	}

	doc.Mappings = append(doc.Mappings, entries...)
	doc.Timestamp = m.now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sidecar for %s: %w", dir, err)
	}
	if err := m.ops.WriteFile(ctx, m.Path(dir), data); err != nil {
		return nil, err
	}
	return doc, nil
}
