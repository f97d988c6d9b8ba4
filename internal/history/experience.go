package history

import (
	"math"

	"wow-tracker/internal/constants"
	"wow-tracker/internal/domain"
)

// PushExperiencePoint appends a cumulative-experience sample at t (epoch
// milliseconds). If the last point lies strictly within the coalescing
// window the sample overwrites it in place, so rapid re-runs do not pile up
// near-duplicate points; a gap of the full window or more appends. The
// series stays sorted by construction.
func PushExperiencePoint(series []domain.ExperiencePoint, t int64, xp float64) []domain.ExperiencePoint {
	if n := len(series); n > 0 && t-series[n-1].T < constants.CoalesceWindow.Milliseconds() {
		series[n-1].T = t
		series[n-1].XP = xp
		return series
	}
	return append(series, domain.ExperiencePoint{T: t, XP: xp})
}

// PruneExperience drops points older than cutoff (epoch milliseconds) and
// points carrying a non-finite experience value.
func PruneExperience(series []domain.ExperiencePoint, cutoff int64) []domain.ExperiencePoint {
	kept := series[:0]
	for _, p := range series {
		if p.T < cutoff || math.IsNaN(p.XP) || math.IsInf(p.XP, 0) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
