package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mood values shared by check-ins and rituals.
const (
	MoodGreat = "great"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodLow   = "low"
	MoodRough = "rough"
)

// ValidMood reports whether m is a known mood value.
func ValidMood(m string) bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodLow, MoodRough:
		return true
	}
	return false
}

// CheckIn is a daily mood check-in, at most one per (user, day).
type CheckIn struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index:idx_checkin_key,unique;not null" json:"user_id"`
	Date      string    `gorm:"type:char(10);index:idx_checkin_key,unique;not null" json:"date"`
	Mood      string    `gorm:"size:16;not null" json:"mood"`
	Note      string    `gorm:"size:50" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
