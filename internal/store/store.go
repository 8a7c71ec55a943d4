// Package store persists workspace snapshots as JSON files. Writes are
// atomic: a temp file in the target directory is renamed over the
// destination, so readers never observe a partial snapshot.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/liquidframes/motioncore/internal/workspace"
)

// ErrSnapshotNotFound reports that no snapshot exists at the given path.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const (
	// DefaultFileName is the workspace file under the config directory.
	DefaultFileName = "workspace.json"

	exportPrefix = "liquid-frames-motion-"
	exportSuffix = ".json"
	exportStamp  = "2006-01-02-150405"
)

// DefaultPath resolves the conventional workspace location under the
// user's config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "liquidframes", DefaultFileName), nil
}

// #region load-save

// Load reads and decodes the snapshot at path. A missing file is
// reported as ErrSnapshotNotFound; callers fall back to defaults.
func Load(path string) (workspace.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return workspace.Snapshot{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, path)
		}
		return workspace.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return workspace.DecodeSnapshot(data)
}

// Save encodes the snapshot and writes it atomically to path, creating
// parent directories as needed.
func Save(s workspace.Snapshot, path string) error {
	data, err := workspace.EncodeSnapshot(s)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// SaveText writes already-rendered text (a markdown gate report, an
// exported payload) with the same atomic discipline.
func SaveText(text, path string) error {
	return writeAtomic(path, []byte(text))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// #endregion load-save

// #region export

// ExportFileName builds the timestamped export name.
func ExportFileName(at time.Time) string {
	return exportPrefix + at.Format(exportStamp) + exportSuffix
}

// Export writes the snapshot to a timestamped file in dir and returns
// the full path.
func Export(s workspace.Snapshot, dir string, at time.Time) (string, error) {
	path := filepath.Join(dir, ExportFileName(at))
	if err := Save(s, path); err != nil {
		return "", err
	}
	return path, nil
}

// LatestExport finds the newest export in dir by its name stamp.
// Returns ErrSnapshotNotFound when no export exists.
func LatestExport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no exports in %s", ErrSnapshotNotFound, dir)
		}
		return "", fmt.Errorf("scan exports: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, exportPrefix) || !strings.HasSuffix(name, exportSuffix) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no exports in %s", ErrSnapshotNotFound, dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// #endregion export
