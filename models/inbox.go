package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Inbox item kinds.
const (
	InboxNote = "note"
	InboxTodo = "todo"
)

// InboxItem is a shared note or todo visible to both partners.
type InboxItem struct {
	ID          string     `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:char(36);index;not null" json:"user_id"`
	Kind        string     `gorm:"size:16;not null;default:'note'" json:"kind"`
	Content     string     `gorm:"size:512;not null" json:"content"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

func (i *InboxItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
