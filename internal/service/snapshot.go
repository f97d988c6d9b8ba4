package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"wow-tracker/internal/api"
	"wow-tracker/internal/constants"
	"wow-tracker/internal/domain"
	"wow-tracker/internal/history"
	"wow-tracker/internal/leveling"
	"wow-tracker/internal/sparkline"
)

// ProfileFetcher resolves one character to a profile, applying the
// configured namespace fallback internally.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, realm, name string) api.FetchResult
}

// SnapshotService assembles one run: it fans out fetches for every
// configured character, then folds the outcomes into the history documents
// and produces the aggregate snapshot. The caller owns loading the
// documents before the run and persisting them after it.
type SnapshotService struct {
	fetcher ProfileFetcher
	logger  zerolog.Logger
}

func NewSnapshotService(fetcher ProfileFetcher, logger zerolog.Logger) *SnapshotService {
	return &SnapshotService{fetcher: fetcher, logger: logger}
}

// runLogger prefers the logger carried in ctx (tagged with the run_id by
// the caller) so every event of one run correlates; it falls back to the
// injected logger when the context carries none.
func (s *SnapshotService) runLogger(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}

// Run fetches all characters concurrently, then applies store updates
// sequentially in configuration order. One character's failure never
// aborts the others: it is surfaced as an ok:false record and its stored
// history is left untouched.
func (s *SnapshotService) Run(ctx context.Context, chars []domain.CharacterRef, region string, daily *domain.DailyHistory, exp *domain.ExperienceHistory, now time.Time) *domain.Snapshot {
	log := s.runLogger(ctx)
	outcomes := make([]api.FetchResult, len(chars))

	g, gctx := errgroup.WithContext(ctx)
	for i, ch := range chars {
		i, ch := i, ch
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, constants.ExternalAPITimeout)
			defer cancel()
			outcomes[i] = s.fetcher.FetchProfile(fetchCtx, ch.Realm, ch.Name)
			return nil
		})
	}
	// fetch goroutines never return errors; failures live in the outcomes
	_ = g.Wait()

	results := make([]domain.Result, len(chars))
	for i, ch := range chars {
		results[i] = s.assemble(log, ch, outcomes[i], daily, exp, now)
	}

	log.Info().
		Int("characters", len(chars)).
		Int("failed", countFailed(results)).
		Msg("run assembled")

	return &domain.Snapshot{
		GeneratedAt: now.UTC(),
		Region:      region,
		Results:     results,
	}
}

// assemble folds one fetch outcome into the history documents and builds
// the character's result record. Map writes happen here, on a single
// goroutine, after the concurrent fetch phase has completed.
func (s *SnapshotService) assemble(log zerolog.Logger, ch domain.CharacterRef, outcome api.FetchResult, daily *domain.DailyHistory, exp *domain.ExperienceHistory, now time.Time) domain.Result {
	id := ch.Identity()

	if !outcome.OK {
		log.Warn().
			Str("id", id).
			Int("status", outcome.Status).
			Str("detail", outcome.Detail).
			Msg("character fetch failed, keeping stored history")
		return domain.Result{
			ID:    id,
			Name:  ch.Name,
			Realm: ch.Realm,
			Error: &domain.FetchError{Status: outcome.Status, Detail: outcome.Detail},
		}
	}

	p := outcome.Profile
	today := now.UTC().Format(constants.DateLayout)
	windowStart := now.UTC().Add(-constants.DeltaWindow).Format(constants.DateLayout)
	dailyCutoff := now.UTC().Add(-constants.DailyRetention).Format(constants.DateLayout)

	series := daily.ByID[id]
	series = history.UpsertDaily(series, today, p.Level)
	series = history.PruneDaily(series, dailyCutoff)
	daily.ByID[id] = series
	delta := history.WindowedDelta(series, windowStart, p.Level)

	points := exp.ByID[id]
	if total, ok := leveling.TotalExperience(p.Level, p.Experience); ok {
		points = history.PushExperiencePoint(points, now.UnixMilli(), total)
	}
	points = history.PruneExperience(points, now.Add(-constants.ExperienceRetention).UnixMilli())
	exp.ByID[id] = points
	spark, gained := sparkline.Build(points, now)

	meta := leveling.XPMeta(p.Level, p.Experience)

	level := p.Level
	xp := p.Experience

	log.Debug().
		Str("id", id).
		Int("level", level).
		Msg("character assembled")

	return domain.Result{
		ID:           id,
		Name:         p.Name,
		Realm:        p.RealmName,
		Level:        &level,
		LevelDelta7d: delta,
		XP:           &xp,
		XPToNext:     meta.XPToNext,
		XPPercent:    meta.XPPercent,
		Spark7d:      spark,
		XPGained7d:   gained,
		Class:        p.Class,
		Race:         p.Race,
		OK:           true,
	}
}

func countFailed(results []domain.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
