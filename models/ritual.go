package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RitualResponse is the three-step evening ritual (mood, energy, vibe).
// Partial progress is preserved on upsert; Completed flips once all
// three fields are present.
type RitualResponse struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:char(36);index:idx_ritual_key,unique;not null" json:"user_id"`
	Date      string    `gorm:"type:char(10);index:idx_ritual_key,unique;not null" json:"date"`
	Mood      string    `gorm:"size:16" json:"mood"`
	Energy    int       `gorm:"default:0" json:"energy"`
	Vibe      string    `gorm:"size:64" json:"vibe"`
	Completed bool      `gorm:"default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RitualResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
