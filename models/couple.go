package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Couple is the single shared progress record for the pair. TotalXP only
// grows; Level is derived from TotalXP and stored for cheap reads.
type Couple struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	TotalXP   int       `gorm:"not null;default:0" json:"total_xp"`
	Level     int       `gorm:"not null;default:1" json:"level"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Couple) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Level == 0 {
		c.Level = 1
	}
	return nil
}
