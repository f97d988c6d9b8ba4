package main

import (
	"context"
	"fmt"
	"time"
	"wow-tracker/internal/config"
	"wow-tracker/internal/constants"
	fxmodules "wow-tracker/internal/fx"
	"wow-tracker/internal/repository"
	"wow-tracker/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runTracker),
	).Run()
}

func runTracker(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	svc *service.SnapshotService,
	histories *repository.HistoryRepository,
	snapshots *repository.SnapshotRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := runOnce(svc, histories, snapshots, cfg, logger); err != nil {
					logger.Error().Err(err).Msg("run failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
	})
}

// runOnce executes a single tracker run: load both history documents, fetch
// and assemble every configured character, persist the updated documents
// and the snapshot. Load failures abort before any fetch is issued.
func runOnce(
	svc *service.SnapshotService,
	histories *repository.HistoryRepository,
	snapshots *repository.SnapshotRepository,
	cfg *config.Config,
	logger zerolog.Logger,
) error {
	runID := uuid.New().String()
	log := logger.With().Str("run_id", runID).Logger()

	now := time.Now()
	log.Info().
		Str("region", cfg.Region).
		Int("characters", len(cfg.Characters)).
		Msg("run starting")

	daily, err := histories.LoadDaily()
	if err != nil {
		return fmt.Errorf("failed to load daily history: %w", err)
	}
	experience, err := histories.LoadExperience()
	if err != nil {
		return fmt.Errorf("failed to load experience history: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.RunTimeout)
	defer cancel()
	// tag every downstream run event with the run_id
	ctx = log.WithContext(ctx)

	snap := svc.Run(ctx, cfg.Characters, cfg.Region, daily, experience, now)

	if err := histories.SaveDaily(daily, now); err != nil {
		return fmt.Errorf("failed to save daily history: %w", err)
	}
	if err := histories.SaveExperience(experience, now); err != nil {
		return fmt.Errorf("failed to save experience history: %w", err)
	}
	if err := snapshots.Save(snap); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	log.Info().
		Time("generated_at", snap.GeneratedAt).
		Dur("duration", time.Since(now)).
		Msg("run completed")
	return nil
}
