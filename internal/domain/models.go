package domain

import (
	"strings"
	"time"
)

// CharacterRef identifies a character as configured: name plus realm slug.
type CharacterRef struct {
	Name  string `json:"name"`
	Realm string `json:"realm"`
}

// Identity returns the stable store key for this character. It is derived
// from the lower-cased realm slug and name so it survives capitalization
// changes in API responses.
func (c CharacterRef) Identity() string {
	return strings.ToLower(c.Realm) + "-" + strings.ToLower(c.Name)
}

// CharacterProfile is the validated shape of one profile API response.
type CharacterProfile struct {
	Name       string
	Level      int
	Experience float64
	RealmName  string
	RealmSlug  string
	Class      string
	Race       string
}

// DailyLevelPoint records the level observed for one calendar day (UTC).
type DailyLevelPoint struct {
	Date  string `json:"date"`
	Level int    `json:"level"`
}

// ExperiencePoint records cumulative experience at an instant
// (epoch milliseconds).
type ExperiencePoint struct {
	T  int64   `json:"t"`
	XP float64 `json:"xp"`
}

// FetchError carries the terminal status and detail of a failed fetch.
type FetchError struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

// Result is one character's outcome for a run. Derived metrics that could
// not be computed are nil and serialize as JSON null.
type Result struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Realm        string      `json:"realm"`
	Level        *int        `json:"level"`
	LevelDelta7d *int        `json:"level_delta_7d"`
	XP           *float64    `json:"xp"`
	XPToNext     *float64    `json:"xp_to_next"`
	XPPercent    *float64    `json:"xp_percent"`
	Spark7d      []int       `json:"spark_7d"`
	XPGained7d   *float64    `json:"xp_gained_7d"`
	Class        string      `json:"class"`
	Race         string      `json:"race"`
	OK           bool        `json:"ok"`
	Error        *FetchError `json:"error,omitempty"`
}

// Snapshot is the aggregate output of one run, overwritten each time.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`
	Region      string    `json:"region"`
	Results     []Result  `json:"results"`
}

// DailyHistory is the persisted daily level document.
type DailyHistory struct {
	Version   int                          `json:"version"`
	UpdatedAt time.Time                    `json:"updated_at"`
	ByID      map[string][]DailyLevelPoint `json:"by_id"`
}

// ExperienceHistory is the persisted experience document.
type ExperienceHistory struct {
	Version   int                          `json:"version"`
	UpdatedAt time.Time                    `json:"updated_at"`
	ByID      map[string][]ExperiencePoint `json:"by_id"`
}

// NewDailyHistory returns an empty document at the current schema version.
func NewDailyHistory() *DailyHistory {
	return &DailyHistory{Version: 1, ByID: make(map[string][]DailyLevelPoint)}
}

// NewExperienceHistory returns an empty document at the current schema version.
func NewExperienceHistory() *ExperienceHistory {
	return &ExperienceHistory{Version: 1, ByID: make(map[string][]ExperiencePoint)}
}
