package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"interlace/internal/segment"
)

// workspace is the per-run scratch area under the configured temp root. Each
// run gets its own directory so concurrent runs against different outputs
// never collide; the lock file serializes runs that share a temp root.
type workspace struct {
	runID string
	root  string
	dir   string
	lock  *flock.Flock
}

func newWorkspace(tempRoot string) (*workspace, error) {
	if err := os.MkdirAll(tempRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}

	lock := flock.New(filepath.Join(tempRoot, ".interlace.lock"))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock temp root: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("temp root %s is locked by another run", tempRoot)
	}

	runID := uuid.NewString()
	dir := filepath.Join(tempRoot, runID)
	for _, sub := range []string{"left", "right"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			_ = lock.Unlock()
			return nil, fmt.Errorf("create workspace: %w", err)
		}
	}

	return &workspace{runID: runID, root: tempRoot, dir: dir, lock: lock}, nil
}

// channelPath returns the isolated full-channel file for one side.
func (w *workspace) channelPath(ch segment.Channel) string {
	return filepath.Join(w.dir, ch.String()+".wav")
}

// segmentPath returns the render destination for one scheduled segment.
func (w *workspace) segmentPath(ch segment.Channel, index int) string {
	return filepath.Join(w.dir, ch.String(), fmt.Sprintf("segment_%04d.wav", index))
}

// scratchOutput returns the in-workspace path the final encode writes to
// before being moved into place.
func (w *workspace) scratchOutput(ext string) string {
	return filepath.Join(w.dir, "output"+ext)
}

// writeManifest emits the concat demuxer list for the interleaved plan.
func (w *workspace) writeManifest(plan []segment.RenderedSegment) (string, error) {
	var builder strings.Builder
	for _, entry := range plan {
		builder.WriteString("file '")
		builder.WriteString(escapeConcatPath(entry.Path))
		builder.WriteString("'\n")
	}

	path := filepath.Join(w.dir, "concat.txt")
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return "", fmt.Errorf("write concat manifest: %w", err)
	}
	return path, nil
}

// cleanup releases the temp root lock and, unless keep is set, removes the
// run directory.
func (w *workspace) cleanup(keep bool) error {
	var removeErr error
	if !keep {
		removeErr = os.RemoveAll(w.dir)
	}
	if err := w.lock.Unlock(); err != nil && removeErr == nil {
		removeErr = err
	}
	return removeErr
}

// escapeConcatPath quotes a path for the concat demuxer's single-quoted
// syntax. A literal quote closes the string, emits an escaped quote, and
// reopens.
func escapeConcatPath(path string) string {
	return strings.ReplaceAll(path, "'", `'\''`)
}
