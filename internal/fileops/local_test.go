package fileops

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLocalList(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "b.txt"), "bb")
	writeTestFile(t, filepath.Join(dir, "a.txt"), "a")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := NewLocal().List(context.Background(), dir)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []Entry{
		{Name: "a.txt", Size: 1},
		{Name: "b.txt", Size: 2},
		{Name: "sub", IsDir: true},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestLocalListMissingDir(t *testing.T) {
	_, err := NewLocal().List(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("List() on missing directory succeeded")
	}
}

func TestLocalExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeTestFile(t, path, "x")

	ops := NewLocal()
	ctx := context.Background()
	if ok, err := ops.Exists(ctx, path); err != nil || !ok {
		t.Errorf("Exists(existing) = %v, %v", ok, err)
	}
	if ok, err := ops.Exists(ctx, filepath.Join(dir, "missing")); err != nil || ok {
		t.Errorf("Exists(missing) = %v, %v", ok, err)
	}
}

func TestLocalMove(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "old name.txt")
	to := filepath.Join(dir, "new_name.txt")
	writeTestFile(t, from, "content")

	ops := NewLocal()
	if err := ops.Move(context.Background(), from, to); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if _, err := os.Stat(from); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	got, err := os.ReadFile(to)
	if err != nil || string(got) != "content" {
		t.Errorf("destination content = %q, %v", got, err)
	}
}

func TestLocalMoveRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "a.txt")
	to := filepath.Join(dir, "b.txt")
	writeTestFile(t, from, "A")
	writeTestFile(t, to, "B")

	if err := NewLocal().Move(context.Background(), from, to); err == nil {
		t.Fatal("Move() onto existing destination succeeded")
	}
	got, _ := os.ReadFile(to)
	if string(got) != "B" {
		t.Errorf("destination was overwritten: %q", got)
	}
}

func TestLocalOpenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	writeTestFile(t, path, "stream me")

	rc, err := NewLocal().OpenRead(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenRead() error = %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil || string(got) != "stream me" {
		t.Errorf("read %q, %v", got, err)
	}
}

func TestLocalWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	ops := NewLocal()
	ctx := context.Background()

	if err := ops.WriteFile(ctx, path, []byte("first")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := ops.WriteFile(ctx, path, []byte("second")); err != nil {
		t.Fatalf("WriteFile() replace error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	// No temp files may remain after a successful write.
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}
