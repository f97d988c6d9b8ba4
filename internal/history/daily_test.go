package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wow-tracker/internal/domain"
)

func daily(points ...domain.DailyLevelPoint) []domain.DailyLevelPoint {
	return points
}

func TestUpsertDailyAppendsSorted(t *testing.T) {
	series := daily()
	series = UpsertDaily(series, "2024-01-10", 12)
	series = UpsertDaily(series, "2024-01-05", 10)
	series = UpsertDaily(series, "2024-01-07", 11)

	require.Len(t, series, 3)
	assert.Equal(t, "2024-01-05", series[0].Date)
	assert.Equal(t, "2024-01-07", series[1].Date)
	assert.Equal(t, "2024-01-10", series[2].Date)
}

func TestUpsertDailyLastWriteWins(t *testing.T) {
	series := daily()
	series = UpsertDaily(series, "2024-01-05", 10)
	series = UpsertDaily(series, "2024-01-05", 14)

	require.Len(t, series, 1)
	assert.Equal(t, 14, series[0].Level)

	// identical call is a no-op
	series = UpsertDaily(series, "2024-01-05", 14)
	require.Len(t, series, 1)
	assert.Equal(t, 14, series[0].Level)
}

func TestPruneDaily(t *testing.T) {
	series := daily(
		domain.DailyLevelPoint{Date: "2024-01-01", Level: 5},
		domain.DailyLevelPoint{Date: "2024-02-01", Level: 10},
		domain.DailyLevelPoint{Date: "2024-03-01", Level: 15},
	)

	pruned := PruneDaily(series, "2024-02-01")
	require.Len(t, pruned, 2)
	assert.Equal(t, "2024-02-01", pruned[0].Date)

	// pruning again with an earlier cutoff is a no-op
	again := PruneDaily(pruned, "2024-01-15")
	assert.Equal(t, pruned, again)
}

func TestWindowedDeltaBaselineBeforeWindow(t *testing.T) {
	series := daily(
		domain.DailyLevelPoint{Date: "2024-01-01", Level: 10},
		domain.DailyLevelPoint{Date: "2024-01-10", Level: 15},
	)

	delta := WindowedDelta(series, "2024-01-05", 20)
	require.NotNil(t, delta)
	assert.Equal(t, 10, *delta)
}

func TestWindowedDeltaFallbackToEarliestInWindow(t *testing.T) {
	// observed for less than the window: measure from first observation
	series := daily(
		domain.DailyLevelPoint{Date: "2024-01-08", Level: 12},
		domain.DailyLevelPoint{Date: "2024-01-10", Level: 15},
	)

	delta := WindowedDelta(series, "2024-01-05", 18)
	require.NotNil(t, delta)
	assert.Equal(t, 6, *delta)
}

func TestWindowedDeltaPicksLastPointBeforeWindowStart(t *testing.T) {
	series := daily(
		domain.DailyLevelPoint{Date: "2024-01-01", Level: 5},
		domain.DailyLevelPoint{Date: "2024-01-04", Level: 8},
		domain.DailyLevelPoint{Date: "2024-01-09", Level: 12},
	)

	delta := WindowedDelta(series, "2024-01-05", 12)
	require.NotNil(t, delta)
	assert.Equal(t, 4, *delta)
}

func TestWindowedDeltaEmptySeries(t *testing.T) {
	assert.Nil(t, WindowedDelta(nil, "2024-01-05", 20))
	assert.Nil(t, WindowedDelta(daily(), "2024-01-05", 20))
}
