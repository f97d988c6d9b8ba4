package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("BLIZZARD_CLIENT_ID", "")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "")

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLIZZARD_CLIENT_ID")
}

func TestLoadAppliesDefaults(t *testing.T) {
	roster := writeRoster(t, `{
		"region": "us",
		"characters": [{"name": "Pip", "realm": "netherwind"}]
	}`)
	t.Setenv("BLIZZARD_CLIENT_ID", "id")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "secret")
	t.Setenv("CONFIG_PATH", roster)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "us", cfg.Region)
	assert.Equal(t, "en_US", cfg.Locale)
	assert.Equal(t, []string{"profile-classic1x-us", "profile-classic-us"}, cfg.Namespaces)
	require.Len(t, cfg.Characters, 1)
	assert.Equal(t, "netherwind-pip", cfg.Characters[0].Identity())
}

func TestLoadRejectsEmptyRoster(t *testing.T) {
	roster := writeRoster(t, `{"region": "eu", "characters": []}`)
	t.Setenv("BLIZZARD_CLIENT_ID", "id")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "secret")
	t.Setenv("CONFIG_PATH", roster)

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one character")
}

func TestLoadMissingRosterFileIsFatal(t *testing.T) {
	t.Setenv("BLIZZARD_CLIENT_ID", "id")
	t.Setenv("BLIZZARD_CLIENT_SECRET", "secret")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.json"))

	_, err := Load(zerolog.Nop())
	require.Error(t, err)
}
