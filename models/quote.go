package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyQuote is a catalog quote shown to both partners.
type DailyQuote struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	Author    string    `gorm:"size:128" json:"author"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *DailyQuote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuoteAssignment maps one calendar day to exactly one quote. Created
// lazily by the first reader; unlike questions there is no shuffle, so
// the pick is final for the day.
type QuoteAssignment struct {
	ID        string     `gorm:"type:char(36);primaryKey" json:"id"`
	QuoteID   string     `gorm:"type:char(36);not null" json:"quote_id"`
	Quote     DailyQuote `gorm:"foreignKey:QuoteID" json:"quote"`
	Date      string     `gorm:"type:char(10);uniqueIndex;not null" json:"date"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a *QuoteAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
