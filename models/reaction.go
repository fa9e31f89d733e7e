package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reaction kinds.
const (
	ReactionHeart = "heart"
	ReactionClap  = "clap"
	ReactionFire  = "fire"
	ReactionDua   = "dua"
)

// ValidReaction reports whether r is a known reaction kind.
func ValidReaction(r string) bool {
	switch r {
	case ReactionHeart, ReactionClap, ReactionFire, ReactionDua:
		return true
	}
	return false
}

// Reaction is a directed edge from one partner to the other. Append-only
// and deliberately without a uniqueness constraint: repeats are allowed.
type Reaction struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	FromUserID string    `gorm:"type:char(36);index;not null" json:"from_user_id"`
	ToUserID   string    `gorm:"type:char(36);index;not null" json:"to_user_id"`
	TargetType string    `gorm:"size:32;index:idx_reaction_target;not null" json:"target_type"`
	TargetID   string    `gorm:"type:char(36);index:idx_reaction_target;not null" json:"target_id"`
	Reaction   string    `gorm:"size:16;not null" json:"reaction"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
