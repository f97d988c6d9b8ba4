package constants

import "time"

const (
	// DailyRetention is how long daily level points are kept before pruning.
	DailyRetention = 90 * 24 * time.Hour

	// ExperienceRetention must exceed SparklineWindow so a full window of
	// samples survives pruning.
	ExperienceRetention = 10 * 24 * time.Hour

	// CoalesceWindow merges experience samples recorded within this span
	// of each other into a single point.
	CoalesceWindow = 60 * time.Second
)

const (
	SparklineWindow = 7 * 24 * time.Hour
	SparklineBins   = 56
	DeltaWindow     = 7 * 24 * time.Hour
)

const DateLayout = "2006-01-02"

const (
	ExternalAPITimeout = 10 * time.Second
	TokenTimeout       = 10 * time.Second
	RunTimeout         = 60 * time.Second
	TokenExpirySlack   = 1 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
