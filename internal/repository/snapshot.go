package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"wow-tracker/internal/config"
	"wow-tracker/internal/domain"
)

const snapshotFile = "snapshot.json"

// SnapshotRepository persists the aggregate snapshot, overwritten each run.
type SnapshotRepository struct {
	dir    string
	logger zerolog.Logger
}

func NewSnapshotRepository(cfg *config.Config, logger zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{dir: cfg.DataDir, logger: logger}
}

func (r *SnapshotRepository) Save(snap *domain.Snapshot) error {
	path := filepath.Join(r.dir, snapshotFile)
	if err := writeJSONAtomic(path, snap); err != nil {
		return err
	}
	r.logger.Info().Str("path", path).Int("results", len(snap.Results)).Msg("snapshot written")
	return nil
}

// Load reads the latest snapshot, for serving. A missing snapshot is an
// error: there is nothing to serve until the first run completes.
func (r *SnapshotRepository) Load() (*domain.Snapshot, error) {
	path := filepath.Join(r.dir, snapshotFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &snap, nil
}
