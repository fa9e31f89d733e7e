package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wish is a gift idea owned by one user, readable by the partner.
type Wish struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:char(36);index;not null" json:"user_id"`
	Title       string     `gorm:"size:128;not null" json:"title"`
	Description string     `gorm:"size:512" json:"description"`
	Fulfilled   bool       `gorm:"default:false" json:"fulfilled"`
	FulfilledAt *time.Time `json:"fulfilled_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (w *Wish) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
