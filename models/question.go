package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyQuestion is a catalog question; Options holds an optional JSON
// array of multiple-choice answers.
type DailyQuestion struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Text      string    `gorm:"size:512;not null" json:"text"`
	Options   string    `gorm:"type:text" json:"options"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (q *DailyQuestion) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// QuestionAssignment maps one calendar day to exactly one question.
// Created lazily by the first reader; every later reader observes the
// same pick until a shuffle replaces it.
type QuestionAssignment struct {
	ID         string        `gorm:"type:char(36);primaryKey" json:"id"`
	QuestionID string        `gorm:"type:char(36);not null" json:"question_id"`
	Question   DailyQuestion `gorm:"foreignKey:QuestionID" json:"question"`
	Date       string        `gorm:"type:char(10);uniqueIndex;not null" json:"date"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (a *QuestionAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// QuestionResponse is a user's answer for a day, at most one per
// (user, day). ShufflesUsed is the authoritative shuffle counter.
type QuestionResponse struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string    `gorm:"type:char(36);index:idx_question_response_key,unique;not null" json:"user_id"`
	QuestionID   string    `gorm:"type:char(36);not null" json:"question_id"`
	Date         string    `gorm:"type:char(10);index:idx_question_response_key,unique;not null" json:"date"`
	Answer       string    `gorm:"size:1024;not null" json:"answer"`
	ShufflesUsed int       `gorm:"not null;default:0" json:"shuffles_used"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (r *QuestionResponse) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
