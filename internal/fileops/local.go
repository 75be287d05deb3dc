package fileops

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local implements [Interface] directly on the filesystem. UNC paths work
// unmodified: only basenames are ever sanitized, so the leading separator
// sequence of the root is never touched.
type Local struct{}

// NewLocal returns the local filesystem backend.
func NewLocal() *Local { return &Local{} }

func (l *Local) List(_ context.Context, dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		e := Entry{Name: de.Name(), IsDir: de.IsDir()}
		if !de.IsDir() {
			if info, err := de.Info(); err == nil {
				e.Size = info.Size()
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (l *Local) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// Move renames from to to. os.Rename would silently replace an existing
// destination on POSIX systems, so an occupied destination is rejected
// here as well as by the engine's collision check.
func (l *Local) Move(_ context.Context, from, to string) error {
	if _, err := os.Stat(to); err == nil {
		return fmt.Errorf("move %s: destination %s already exists", from, to)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("move %s -> %s: %w", from, to, err)
	}
	return nil
}

func (l *Local) OpenRead(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes data to a temporary file in the target directory and
// renames it over path, so readers never observe a partial file.
func (l *Local) WriteFile(_ context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (l *Local) Join(dir, name string) string {
	return filepath.Join(dir, name)
}
