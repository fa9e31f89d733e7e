package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawahq/sawa/models"
)

func intPtr(n int) *int { return &n }

func TestMergeRitualStepsKeepsStoredProgress(t *testing.T) {
	current := models.RitualResponse{Mood: "good", Energy: 7, Vibe: "cozy"}

	merged, completed := mergeRitualSteps(current, "", nil, "")
	assert.Equal(t, "good", merged.Mood)
	assert.Equal(t, 7, merged.Energy)
	assert.Equal(t, "cozy", merged.Vibe)
	assert.True(t, completed)
}

func TestMergeRitualStepsLowEnergySurvivesMerge(t *testing.T) {
	// An exhausted-but-honest 1 is a real submission, not an omission.
	current := models.RitualResponse{Mood: "tired", Vibe: "quiet"}

	merged, completed := mergeRitualSteps(current, "", intPtr(1), "")
	assert.Equal(t, 1, merged.Energy)
	assert.True(t, completed)

	// A later partial update must not reset it.
	merged, completed = mergeRitualSteps(merged, "good", nil, "")
	assert.Equal(t, 1, merged.Energy)
	assert.Equal(t, "good", merged.Mood)
	assert.True(t, completed)
}

func TestMergeRitualStepsIncompleteWithoutEnergy(t *testing.T) {
	merged, completed := mergeRitualSteps(models.RitualResponse{}, "great", nil, "playful")
	assert.Equal(t, 0, merged.Energy)
	assert.False(t, completed)
}

func TestMergeRitualStepsOverlaysNewValues(t *testing.T) {
	current := models.RitualResponse{Mood: "okay", Energy: 4, Vibe: "calm"}

	merged, completed := mergeRitualSteps(current, "great", intPtr(9), "playful")
	assert.Equal(t, "great", merged.Mood)
	assert.Equal(t, 9, merged.Energy)
	assert.Equal(t, "playful", merged.Vibe)
	assert.True(t, completed)
}
