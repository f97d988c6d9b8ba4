package leveling

import "math"

// MaxLevel is the level cap; a character at MaxLevel has no next level.
const MaxLevel = 60

// xpToNext[level] is the experience required to advance from level to
// level+1. Index 0 is unused; levels 1..59 are populated. Data matches
// the classic 1.x leveling curve.
var xpToNext = [MaxLevel]float64{
	0,      // 0 (unused)
	400,    // 1
	900,    // 2
	1400,   // 3
	2100,   // 4
	2800,   // 5
	3600,   // 6
	4500,   // 7
	5400,   // 8
	6500,   // 9
	7600,   // 10
	8800,   // 11
	10100,  // 12
	11400,  // 13
	12900,  // 14
	14400,  // 15
	16000,  // 16
	17700,  // 17
	19400,  // 18
	21300,  // 19
	23200,  // 20
	25200,  // 21
	27300,  // 22
	29400,  // 23
	31700,  // 24
	34000,  // 25
	36400,  // 26
	38900,  // 27
	41400,  // 28
	44300,  // 29
	47400,  // 30
	50800,  // 31
	54500,  // 32
	58600,  // 33
	62800,  // 34
	67100,  // 35
	71600,  // 36
	76100,  // 37
	80800,  // 38
	85700,  // 39
	90700,  // 40
	95800,  // 41
	101000, // 42
	106300, // 43
	111800, // 44
	117500, // 45
	123200, // 46
	129100, // 47
	135100, // 48
	141200, // 49
	147500, // 50
	153900, // 51
	160400, // 52
	167100, // 53
	173900, // 54
	180800, // 55
	187900, // 56
	195000, // 57
	202300, // 58
	209800, // 59
}

// cumulativeStart[level] is the total experience consumed by all levels
// before level. cumulativeStart[1] is 0 and the table is monotonically
// non-decreasing.
var cumulativeStart [MaxLevel + 1]float64

func init() {
	for l := 1; l < MaxLevel; l++ {
		cumulativeStart[l+1] = cumulativeStart[l] + xpToNext[l]
	}
}

// XPToNext returns the experience required to reach level+1. ok is false
// for levels outside 1..59 (level 60 has no next level).
func XPToNext(level int) (float64, bool) {
	if level < 1 || level >= MaxLevel {
		return 0, false
	}
	return xpToNext[level], true
}

// Meta describes progress within the current level. Nil fields mean the
// value could not be derived.
type Meta struct {
	XPToNext  *float64
	XPPercent *float64
}

// XPMeta derives level-progress metadata from a level and the experience
// earned into that level. At the level cap the character is treated as
// maxed: no next-level requirement, percent pinned to 1.
func XPMeta(level int, experience float64) Meta {
	if level >= MaxLevel {
		one := 1.0
		return Meta{XPPercent: &one}
	}

	required, ok := XPToNext(level)
	if !ok || required <= 0 {
		return Meta{}
	}
	toNext := required
	if math.IsNaN(experience) || math.IsInf(experience, 0) {
		return Meta{XPToNext: &toNext}
	}

	percent := experience / required
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	return Meta{XPToNext: &toNext, XPPercent: &percent}
}

// TotalExperience returns cumulative experience across all levels:
// the start-of-level offset plus the experience earned into the current
// level. This is the monotone quantity the experience history stores —
// raw into-level experience resets to 0 on level-up and cannot be
// compared across samples. ok is false when level is not positive.
func TotalExperience(level int, experience float64) (float64, bool) {
	if level < 1 {
		return 0, false
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	if math.IsNaN(experience) || math.IsInf(experience, 0) {
		experience = 0
	}
	return cumulativeStart[level] + experience, true
}
