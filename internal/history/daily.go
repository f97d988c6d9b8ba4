package history

import (
	"sort"

	"wow-tracker/internal/domain"
)

// UpsertDaily records the level observed on date, replacing any existing
// point for the same date. The returned series holds at most one point per
// date, sorted ascending. Repeated calls with the same date and level are
// idempotent.
func UpsertDaily(series []domain.DailyLevelPoint, date string, level int) []domain.DailyLevelPoint {
	for i := range series {
		if series[i].Date == date {
			series[i].Level = level
			return series
		}
	}
	series = append(series, domain.DailyLevelPoint{Date: date, Level: level})
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// PruneDaily drops all points dated strictly before cutoff.
func PruneDaily(series []domain.DailyLevelPoint, cutoff string) []domain.DailyLevelPoint {
	kept := series[:0]
	for _, p := range series {
		if p.Date >= cutoff {
			kept = append(kept, p)
		}
	}
	return kept
}

// WindowedDelta returns currentLevel minus the baseline level, or nil when
// no baseline resolves. The baseline is the last point dated at or before
// windowStart; a character observed for less than the window falls back to
// its earliest point at or after windowStart, so it still gets a delta
// measured from first observation.
func WindowedDelta(series []domain.DailyLevelPoint, windowStart string, currentLevel int) *int {
	var baseline *domain.DailyLevelPoint
	for i := range series {
		if series[i].Date <= windowStart {
			baseline = &series[i]
		}
	}
	if baseline == nil {
		for i := range series {
			if series[i].Date >= windowStart {
				baseline = &series[i]
				break
			}
		}
	}
	if baseline == nil {
		return nil
	}
	delta := currentLevel - baseline.Level
	return &delta
}
