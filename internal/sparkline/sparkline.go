// Package sparkline reconstructs a fixed-resolution experience-gain series
// from irregular cumulative-experience samples.
package sparkline

import (
	"math"
	"sort"
	"time"

	"wow-tracker/internal/constants"
	"wow-tracker/internal/domain"
)

// Build bins the samples inside [now - window, now] into
// constants.SparklineBins values normalized to 0..100, and returns the raw
// experience gained over the window. Each bin takes the most recent sample
// at or before its end instant, carried forward across empty bins —
// cumulative experience only increases between samples, so a step function
// is the correct reconstruction and nothing is interpolated.
//
// Fewer than 2 in-window samples yields (nil, nil): a single sample cannot
// distinguish a flat week from a missing one.
func Build(series []domain.ExperiencePoint, now time.Time) ([]int, *float64) {
	endMs := now.UnixMilli()
	startMs := now.Add(-constants.SparklineWindow).UnixMilli()

	var pts []domain.ExperiencePoint
	for _, p := range series {
		if p.T < startMs || p.T > endMs {
			continue
		}
		if math.IsNaN(p.XP) || math.IsInf(p.XP, 0) {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, nil
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].T < pts[j].T })

	bins := constants.SparklineBins
	binWidth := float64(endMs-startMs) / float64(bins)
	raw := make([]float64, bins)
	defined := make([]bool, bins)

	idx := 0
	var last float64
	haveLast := false
	for i := 0; i < bins; i++ {
		binEnd := startMs + int64(math.Ceil(float64(i+1)*binWidth))
		if i == bins-1 {
			binEnd = endMs
		}
		for idx < len(pts) && pts[idx].T <= binEnd {
			last = pts[idx].XP
			haveLast = true
			idx++
		}
		if haveLast {
			raw[i] = last
			defined[i] = true
		}
	}

	first := 0
	for first < bins && !defined[first] {
		first++
	}
	gained := raw[bins-1] - raw[first]

	// Bins before the first sample have no observation; backfill them so
	// the output is always a full-length array.
	for i := 0; i < first; i++ {
		raw[i] = raw[first]
	}

	min, max := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	spark := make([]int, bins)
	if max == min {
		for i := range spark {
			spark[i] = 50
		}
		return spark, &gained
	}
	for i, v := range raw {
		spark[i] = int(math.Round(100 * (v - min) / (max - min)))
	}
	return spark, &gained
}
