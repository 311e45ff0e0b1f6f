// Package progression holds the pure level, XP, streak, milestone and trend rules.
// Nothing here touches storage; callers persist the returned snapshots.
package progression

import "math"

const xpPerLevelUnit = 100

// Level is floor(sqrt(xp/100))+1, never below 1.
func Level(totalXP int64) int {
	if totalXP <= 0 {
		return 1
	}
	lvl := int(math.Sqrt(float64(totalXP)/xpPerLevelUnit)) + 1
	// Guard float rounding at exact squares.
	for lvl > 1 && XPRequiredFor(lvl-1) > totalXP {
		lvl--
	}
	for XPRequiredFor(lvl) <= totalXP {
		lvl++
	}
	return lvl
}

// XPRequiredFor is the cumulative XP needed to leave level, i.e. to reach level+1.
func XPRequiredFor(level int) int64 {
	if level <= 0 {
		return 0
	}
	l := int64(level)
	return l * l * xpPerLevelUnit
}

// ProgressPercent is the truncated percentage between the thresholds bracketing level, clamped to [0,100].
func ProgressPercent(totalXP int64, level int) int {
	prev := XPRequiredFor(level - 1)
	next := XPRequiredFor(level)
	if next-prev <= 0 {
		return 0
	}
	pct := int(float64(totalXP-prev) / float64(next-prev) * 100)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

type LevelInfo struct {
	Level           int   `json:"level"`
	TotalXP         int64 `json:"total_xp"`
	XPForNextLevel  int64 `json:"xp_for_next_level"`
	ProgressPercent int   `json:"progress_percent"`
}

func Describe(totalXP int64) LevelInfo {
	lvl := Level(totalXP)
	return LevelInfo{
		Level:           lvl,
		TotalXP:         totalXP,
		XPForNextLevel:  XPRequiredFor(lvl),
		ProgressPercent: ProgressPercent(totalXP, lvl),
	}
}
