package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sawahq/sawa/models"
)

func TestQuestPeriodKeyDaily(t *testing.T) {
	assert.Equal(t, "2025-03-10", questPeriodKey(models.QuestDaily, "2025-03-10"))
}

func TestQuestPeriodKeyWeeklySnapsToMonday(t *testing.T) {
	// 2025-03-10 is a Monday.
	assert.Equal(t, "2025-03-10", questPeriodKey(models.QuestWeekly, "2025-03-10"))
	assert.Equal(t, "2025-03-10", questPeriodKey(models.QuestWeekly, "2025-03-12"))
	assert.Equal(t, "2025-03-10", questPeriodKey(models.QuestWeekly, "2025-03-16"))
	assert.Equal(t, "2025-03-17", questPeriodKey(models.QuestWeekly, "2025-03-17"))
}
