package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXPTableBoundaries(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(99))
	assert.Equal(t, 2, LevelForXP(100))
	assert.Equal(t, 2, LevelForXP(299))
	assert.Equal(t, 3, LevelForXP(300))
	assert.Equal(t, 10, LevelForXP(5200))
}

func TestLevelForXPExtrapolation(t *testing.T) {
	assert.Equal(t, 10, LevelForXP(6699))
	assert.Equal(t, 11, LevelForXP(6700))
	assert.Equal(t, 12, LevelForXP(8200))
}

func TestLevelForXPNegativeClampsToOne(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(-50))
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20000; xp += 7 {
		level := LevelForXP(xp)
		assert.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		prev = level
	}
}

func TestXPThresholdForLevelRoundTrip(t *testing.T) {
	for level := 1; level <= 20; level++ {
		threshold := XPThresholdForLevel(level)
		assert.Equal(t, level, LevelForXP(threshold), "level=%d", level)
		if threshold > 0 {
			assert.Equal(t, level-1, LevelForXP(threshold-1), "level=%d", level)
		}
	}
}

func TestProgressPercentBounds(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 1))
	assert.Equal(t, 99, ProgressPercent(99, 1))
	assert.Equal(t, 50, ProgressPercent(50, 1))

	// Out-of-band inputs stay clamped.
	assert.Equal(t, 0, ProgressPercent(-10, 1))
	assert.Equal(t, 100, ProgressPercent(10000, 1))
}

func TestLevelThresholdsReturnsCopy(t *testing.T) {
	a := LevelThresholds()
	a[0] = 999
	b := LevelThresholds()
	assert.Equal(t, 0, b[0])
}
