// Package fileops defines the primitive file capabilities the rename engine
// needs — list, exists, move, read, write — with one implementation per
// backend: the local filesystem and an rclone-managed remote.
//
// The engine only ever sees [Interface]; everything subprocess-shaped stays
// inside the remote backend.
package fileops

import (
	"context"
	"io"
	"strings"
)

// Entry is one directory listing item.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Interface is the capability set both backends provide. Paths are passed
// in each backend's native form: filesystem paths for local, rclone
// "remote:path" specs for remote. Move must only be called for a
// destination the caller has checked does not exist.
type Interface interface {
	// List returns the immediate entries of dir, sorted by name.
	List(ctx context.Context, dir string) ([]Entry, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Move renames from to to within the same backend.
	Move(ctx context.Context, from, to string) error

	// OpenRead opens path for streaming reads.
	OpenRead(ctx context.Context, path string) (io.ReadCloser, error)

	// WriteFile atomically replaces path with data, writing through a
	// temporary file so a crash never leaves a partial file behind.
	WriteFile(ctx context.Context, path string, data []byte) error

	// Join appends a name to a directory path using the backend's separator.
	Join(dir, name string) string
}

// IsRemotePath reports whether path is an rclone remote spec of the form
// "name:rest". A name must be at least two characters (so drive letters
// stay local), start with a letter, contain no separators, and the colon
// must not be immediately followed by a separator. Pure string decision,
// no I/O.
func IsRemotePath(path string) bool {
	idx := strings.Index(path, ":")
	if idx < 2 {
		return false
	}
	name := path[:idx]
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '_' || r == '-'):
		default:
			return false
		}
	}
	rest := path[idx+1:]
	if strings.HasPrefix(rest, "/") || strings.HasPrefix(rest, `\`) {
		return false
	}
	return true
}
