package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"wow-tracker/internal/domain"
)

type Config struct {
	ClientID     string
	ClientSecret string

	Region     string
	Locale     string
	Namespaces []string
	Characters []domain.CharacterRef

	DataDir    string
	ServerPort string
	LogLevel   string
}

// rosterFile is the on-disk shape of the tracker configuration file.
type rosterFile struct {
	Region     string                `json:"region"`
	Locale     string                `json:"locale"`
	Namespaces []string              `json:"namespaces"`
	Characters []domain.CharacterRef `json:"characters"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		ClientID:     getEnv("BLIZZARD_CLIENT_ID", ""),
		ClientSecret: getEnv("BLIZZARD_CLIENT_SECRET", ""),
		DataDir:      getEnv("DATA_DIR", "data"),
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("BLIZZARD_CLIENT_ID and BLIZZARD_CLIENT_SECRET are required")
	}

	rosterPath := getEnv("CONFIG_PATH", "config.json")
	roster, err := loadRoster(rosterPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster config %s: %w", rosterPath, err)
	}

	cfg.Region = roster.Region
	cfg.Locale = roster.Locale
	cfg.Namespaces = roster.Namespaces
	cfg.Characters = roster.Characters

	if cfg.Region == "" {
		return nil, fmt.Errorf("roster config: region is required")
	}
	if len(cfg.Characters) == 0 {
		return nil, fmt.Errorf("roster config: at least one character is required")
	}
	if cfg.Locale == "" {
		cfg.Locale = "en_US"
	}
	if len(cfg.Namespaces) == 0 {
		cfg.Namespaces = []string{
			"profile-classic1x-" + cfg.Region,
			"profile-classic-" + cfg.Region,
		}
	}

	logger.Info().
		Str("region", cfg.Region).
		Str("locale", cfg.Locale).
		Strs("namespaces", cfg.Namespaces).
		Int("characters", len(cfg.Characters)).
		Str("data_dir", cfg.DataDir).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func loadRoster(path string) (*rosterFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var roster rosterFile
	if err := json.Unmarshal(raw, &roster); err != nil {
		return nil, fmt.Errorf("failed to parse roster config: %w", err)
	}
	return &roster, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
