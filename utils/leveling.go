package utils

// levelThresholds is the ascending XP floor per level; index i is the
// minimum XP for level i+1.
var levelThresholds = []int{
	0,    // level 1
	100,  // level 2
	300,  // level 3
	600,  // level 4
	1000, // level 5
	1500, // level 6
	2200, // level 7
	3000, // level 8
	4000, // level 9
	5200, // level 10
}

// extrapolationStep is the constant XP delta per level past the table.
const extrapolationStep = 1500

// LevelForXP maps cumulative XP to a level: the highest level whose
// threshold is <= xp. Total over all inputs and monotonic in xp.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	last := len(levelThresholds) - 1
	if xp >= levelThresholds[last] {
		return len(levelThresholds) + (xp-levelThresholds[last])/extrapolationStep
	}
	for i := last; i >= 0; i-- {
		if xp >= levelThresholds[i] {
			return i + 1
		}
	}
	return 1
}

// XPThresholdForLevel returns the minimum XP for a level. Levels past
// the table extend linearly by extrapolationStep.
func XPThresholdForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(levelThresholds) {
		return levelThresholds[level-1]
	}
	last := levelThresholds[len(levelThresholds)-1]
	return last + extrapolationStep*(level-len(levelThresholds))
}

// ProgressPercent returns how far xp has advanced through a level,
// rounded and clamped to [0,100].
func ProgressPercent(xp, level int) int {
	lo := XPThresholdForLevel(level)
	hi := XPThresholdForLevel(level + 1)
	if hi <= lo {
		return 0
	}
	pct := (100*(xp-lo) + (hi-lo)/2) / (hi - lo)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// LevelThresholds returns a copy of the threshold table for clients.
func LevelThresholds() []int {
	out := make([]int, len(levelThresholds))
	copy(out, levelThresholds)
	return out
}
