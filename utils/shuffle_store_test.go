package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func uniqueUser(t *testing.T) string {
	return fmt.Sprintf("user-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestShuffleCountStartsAtZero(t *testing.T) {
	assert.Equal(t, 0, ShuffleCount(uniqueUser(t), "2025-03-10"))
}

func TestRecordShuffleIncrements(t *testing.T) {
	user := uniqueUser(t)
	RecordShuffle(user, "2025-03-10")
	assert.Equal(t, 1, ShuffleCount(user, "2025-03-10"))

	RecordShuffle(user, "2025-03-10")
	assert.Equal(t, 2, ShuffleCount(user, "2025-03-10"))

	// A different day is a separate counter.
	assert.Equal(t, 0, ShuffleCount(user, "2025-03-11"))
}

func TestMergedShuffleCountTakesMaximum(t *testing.T) {
	user := uniqueUser(t)

	// Authoritative ahead of the mirror.
	assert.Equal(t, 2, MergedShuffleCount(2, user, "2025-03-10"))

	// Mirror ahead of the authoritative count.
	RecordShuffle(user, "2025-03-10")
	assert.Equal(t, 1, MergedShuffleCount(0, user, "2025-03-10"))

	// Unreadable authoritative counter (-1) still enforces the mirror.
	assert.Equal(t, 1, MergedShuffleCount(-1, user, "2025-03-10"))
}
