package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wow-tracker/internal/config"
	"wow-tracker/internal/domain"
)

func newTestRepos(t *testing.T) (*HistoryRepository, *SnapshotRepository, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{DataDir: dir}
	logger := zerolog.Nop()
	return NewHistoryRepository(cfg, logger), NewSnapshotRepository(cfg, logger), dir
}

func TestLoadMissingFilesYieldEmptyDocuments(t *testing.T) {
	histories, _, _ := newTestRepos(t)

	daily, err := histories.LoadDaily()
	require.NoError(t, err)
	assert.Equal(t, 1, daily.Version)
	assert.NotNil(t, daily.ByID)
	assert.Empty(t, daily.ByID)

	experience, err := histories.LoadExperience()
	require.NoError(t, err)
	assert.Equal(t, 1, experience.Version)
	assert.NotNil(t, experience.ByID)
}

func TestHistoryRoundTrip(t *testing.T) {
	histories, _, _ := newTestRepos(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	daily := domain.NewDailyHistory()
	daily.ByID["netherwind-thrall"] = []domain.DailyLevelPoint{
		{Date: "2024-03-09", Level: 41},
		{Date: "2024-03-10", Level: 42},
	}
	require.NoError(t, histories.SaveDaily(daily, now))

	experience := domain.NewExperienceHistory()
	experience.ByID["netherwind-thrall"] = []domain.ExperiencePoint{
		{T: now.Add(-time.Hour).UnixMilli(), XP: 123456},
	}
	require.NoError(t, histories.SaveExperience(experience, now))

	gotDaily, err := histories.LoadDaily()
	require.NoError(t, err)
	assert.Equal(t, daily.ByID, gotDaily.ByID)
	assert.Equal(t, now, gotDaily.UpdatedAt)

	gotExp, err := histories.LoadExperience()
	require.NoError(t, err)
	assert.Equal(t, experience.ByID, gotExp.ByID)
}

func TestDocumentFieldNamesPreserved(t *testing.T) {
	histories, snapshots, dir := newTestRepos(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	daily := domain.NewDailyHistory()
	daily.ByID["realm-name"] = []domain.DailyLevelPoint{{Date: "2024-03-10", Level: 7}}
	require.NoError(t, histories.SaveDaily(daily, now))

	raw, err := os.ReadFile(filepath.Join(dir, dailyFile))
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "version")
	assert.Contains(t, doc, "updated_at")
	assert.Contains(t, doc, "by_id")

	require.NoError(t, snapshots.Save(&domain.Snapshot{
		GeneratedAt: now,
		Region:      "us",
		Results:     []domain.Result{},
	}))
	raw, err = os.ReadFile(filepath.Join(dir, snapshotFile))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "generated_at")
	assert.Contains(t, doc, "region")
	assert.Contains(t, doc, "results")
}

func TestCorruptHistoryFileIsAnError(t *testing.T) {
	histories, _, dir := newTestRepos(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, dailyFile), []byte("{not json"), 0o644))

	_, err := histories.LoadDaily()
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	_, snapshots, _ := newTestRepos(t)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	level := 42
	snap := &domain.Snapshot{
		GeneratedAt: now,
		Region:      "eu",
		Results: []domain.Result{
			{ID: "netherwind-thrall", Name: "Thrall", Realm: "Netherwind", Level: &level, OK: true},
		},
	}
	require.NoError(t, snapshots.Save(snap))

	got, err := snapshots.Load()
	require.NoError(t, err)
	assert.Equal(t, snap.Region, got.Region)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "netherwind-thrall", got.Results[0].ID)
	require.NotNil(t, got.Results[0].Level)
	assert.Equal(t, 42, *got.Results[0].Level)
}
