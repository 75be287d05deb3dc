package fileops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"
)

// DefaultRcloneBinary is used when no override is configured.
const DefaultRcloneBinary = "rclone"

// Remote implements [Interface] by shelling out to rclone, one invocation
// per logical operation. All parsing and quoting concerns live here; the
// engine never sees subprocess details.
//
// Renames use copy + verify + delete rather than moveto: some remotes
// report success on moveto before the destination is durable, and a copy
// that can be verified never leaves the source unaccounted for.
type Remote struct {
	binary string
}

// NewRemote returns the rclone backend. An empty binary falls back to
// [DefaultRcloneBinary] resolved on PATH.
func NewRemote(binary string) *Remote {
	if binary == "" {
		binary = DefaultRcloneBinary
	}
	return &Remote{binary: binary}
}

// Binary returns the rclone executable this backend invokes.
func (r *Remote) Binary() string { return r.binary }

// run executes one rclone invocation and returns its stdout. A non-zero
// exit is returned as an error tagged with the attempted command and the
// last stderr line, never swallowed.
func (r *Remote) run(ctx context.Context, stdin io.Reader, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rclone %s: %w: %s",
			strings.Join(args, " "), err, lastLine(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// lastLine extracts the final non-empty line of rclone stderr, which is
// where rclone puts the actionable message.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return "(no stderr)"
}

// listItem mirrors the fields of rclone lsjson output this backend uses.
type listItem struct {
	Name  string `json:"Name"`
	Size  int64  `json:"Size"`
	IsDir bool   `json:"IsDir"`
}

func (r *Remote) List(ctx context.Context, dir string) ([]Entry, error) {
	out, err := r.run(ctx, nil, "lsjson", "--max-depth", "1", dir)
	if err != nil {
		return nil, err
	}
	entries, err := parseListing(out)
	if err != nil {
		return nil, fmt.Errorf("rclone lsjson %s: %w", dir, err)
	}
	return entries, nil
}

// parseListing decodes lsjson output into sorted entries.
func parseListing(out []byte) ([]Entry, error) {
	var items []listItem
	if err := json.Unmarshal(out, &items); err != nil {
		return nil, fmt.Errorf("unparsable listing: %w", err)
	}
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, Entry{Name: it.Name, IsDir: it.IsDir, Size: it.Size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Exists probes path with lsf. rclone exits non-zero for missing objects,
// which is reported as absence, not as an operation error.
func (r *Remote) Exists(ctx context.Context, path string) (bool, error) {
	out, err := r.run(ctx, nil, "lsf", "--files-only", path)
	if err != nil {
		return false, nil
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

func (r *Remote) Move(ctx context.Context, from, to string) error {
	if _, err := r.run(ctx, nil, "copyto", from, to); err != nil {
		return err
	}
	ok, err := r.Exists(ctx, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("rclone copyto %s %s: copy verification failed, source kept", from, to)
	}
	if _, err := r.run(ctx, nil, "deletefile", from); err != nil {
		return err
	}
	return nil
}

// OpenRead streams path through "rclone cat". The returned closer waits
// for the subprocess and surfaces its exit error.
func (r *Remote) OpenRead(ctx context.Context, path string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, r.binary, "cat", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	pipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("rclone cat %s: %w", path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("rclone cat %s: %w", path, err)
	}
	return &catStream{path: path, pipe: pipe, cmd: cmd, stderr: &stderr}, nil
}

// catStream adapts a running "rclone cat" into an io.ReadCloser.
type catStream struct {
	path   string
	pipe   io.ReadCloser
	cmd    *exec.Cmd
	stderr *bytes.Buffer
}

func (c *catStream) Read(p []byte) (int, error) { return c.pipe.Read(p) }

func (c *catStream) Close() error {
	c.pipe.Close()
	if err := c.cmd.Wait(); err != nil {
		return fmt.Errorf("rclone cat %s: %w: %s", c.path, err, lastLine(c.stderr.String()))
	}
	return nil
}

// WriteFile rcats data to a temporary object next to path, then moves it
// into place so an interrupted upload cannot corrupt an existing file.
func (r *Remote) WriteFile(ctx context.Context, path string, data []byte) error {
	tmp := path + ".tmp"
	if _, err := r.run(ctx, bytes.NewReader(data), "rcat", tmp); err != nil {
		return err
	}
	if _, err := r.run(ctx, nil, "moveto", tmp, path); err != nil {
		return err
	}
	return nil
}

// Join appends name to an rclone path spec. Directly after the remote
// colon no slash is inserted ("gdrive:" + "Photos" = "gdrive:Photos").
func (r *Remote) Join(dir, name string) string {
	if dir == "" || strings.HasSuffix(dir, ":") || strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}
