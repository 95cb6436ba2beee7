package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/curvemark/internal/domain"
)

// SnapshotFile implements ports.MarkerPublisher by keeping a JSON file in
// sync with the markers currently on display. A clear directive empties it.
type SnapshotFile struct {
	path string
}

// NewSnapshotFile creates a publisher writing to path.
func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Name identifies the publisher in logs and metrics.
func (s *SnapshotFile) Name() string {
	return "snapshot"
}

// Publish replaces the snapshot atomically.
func (s *SnapshotFile) Publish(ctx context.Context, b domain.MarkerBatch) error {
	if b.IsClear() {
		b = domain.MarkerBatch{}
	}
	data, err := domain.EncodeBatch(b)
	if err != nil {
		return err
	}
	return writeAtomic(s.path, data)
}

// Load reads the current snapshot.
// Returns an empty batch and nil error if no snapshot exists.
func (s *SnapshotFile) Load() (domain.MarkerBatch, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.MarkerBatch{}, nil
		}
		return domain.MarkerBatch{}, err
	}
	return domain.DecodeBatch(data)
}

// Path returns the snapshot file location.
func (s *SnapshotFile) Path() string {
	return s.path
}

// writeAtomic writes to a temp file in the target directory, then renames it.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
