package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"wow-tracker/internal/config"
	"wow-tracker/internal/domain"
)

const (
	dailyFile      = "daily_history.json"
	experienceFile = "experience_history.json"
)

// HistoryRepository persists the two history documents as plain JSON files.
// Documents are loaded once at the start of a run and written back, stamped
// with an update instant, after all characters have been processed.
type HistoryRepository struct {
	dir    string
	logger zerolog.Logger
}

func NewHistoryRepository(cfg *config.Config, logger zerolog.Logger) *HistoryRepository {
	return &HistoryRepository{dir: cfg.DataDir, logger: logger}
}

// LoadDaily reads the daily level document. A missing file yields an empty
// document; an unreadable or malformed one is an error that aborts the run.
func (r *HistoryRepository) LoadDaily() (*domain.DailyHistory, error) {
	doc := domain.NewDailyHistory()
	if err := r.load(dailyFile, doc); err != nil {
		return nil, err
	}
	if doc.ByID == nil {
		doc.ByID = make(map[string][]domain.DailyLevelPoint)
	}
	return doc, nil
}

// LoadExperience reads the experience document, with the same missing-file
// semantics as LoadDaily.
func (r *HistoryRepository) LoadExperience() (*domain.ExperienceHistory, error) {
	doc := domain.NewExperienceHistory()
	if err := r.load(experienceFile, doc); err != nil {
		return nil, err
	}
	if doc.ByID == nil {
		doc.ByID = make(map[string][]domain.ExperiencePoint)
	}
	return doc, nil
}

func (r *HistoryRepository) SaveDaily(doc *domain.DailyHistory, now time.Time) error {
	doc.Version = 1
	doc.UpdatedAt = now.UTC()
	return r.save(dailyFile, doc)
}

func (r *HistoryRepository) SaveExperience(doc *domain.ExperienceHistory, now time.Time) error {
	doc.Version = 1
	doc.UpdatedAt = now.UTC()
	return r.save(experienceFile, doc)
}

func (r *HistoryRepository) load(name string, dst any) error {
	path := filepath.Join(r.dir, name)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		r.logger.Debug().Str("path", path).Msg("history file absent, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (r *HistoryRepository) save(name string, doc any) error {
	if err := writeJSONAtomic(filepath.Join(r.dir, name), doc); err != nil {
		return err
	}
	r.logger.Debug().Str("file", name).Msg("history document written")
	return nil
}

// writeJSONAtomic writes to a sibling temp file and renames it over the
// target so a crash mid-write never leaves a truncated document.
func writeJSONAtomic(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
