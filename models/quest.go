package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quest kinds.
const (
	QuestDaily  = "daily"
	QuestWeekly = "weekly"
)

// Quest is a shared challenge with a variable XP reward.
type Quest struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string    `gorm:"size:128;not null" json:"title"`
	QuestType string    `gorm:"size:16;not null;default:'daily'" json:"quest_type"`
	XPReward  int       `gorm:"not null;default:20" json:"xp_reward"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *Quest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestProgress records a quest completion, at most one per (quest, day).
// Quests are shared, so the key carries no user.
type QuestProgress struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	QuestID     string     `gorm:"type:char(36);index:idx_quest_progress_key,unique;not null" json:"quest_id"`
	Quest       Quest      `gorm:"foreignKey:QuestID" json:"quest"`
	Date        string     `gorm:"type:char(10);index:idx_quest_progress_key,unique;not null" json:"date"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (p *QuestProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
