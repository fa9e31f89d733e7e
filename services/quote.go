package services

import (
	"errors"
	"math/rand"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/models"
)

// ErrNoQuotes means the active quote catalog is empty.
var ErrNoQuotes = errors.New("no active quotes available")

// QuoteForDay returns the day's quote, assigning one lazily on the
// first read. There is no shuffle and no recency window: any active
// quote may come up on any day.
func QuoteForDay(db *gorm.DB, date string) (*models.QuoteAssignment, error) {
	var assignment models.QuoteAssignment
	err := db.Preload("Quote").Where("date = ?", date).First(&assignment).Error
	if err == nil {
		return &assignment, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return assignQuoteForDay(db, date)
}

// assignQuoteForDay picks a quote and claims the day. Concurrent first
// readers race on the date's unique index; the loser's insert is a
// no-op and both re-read the winner's row.
func assignQuoteForDay(db *gorm.DB, date string) (*models.QuoteAssignment, error) {
	var candidates []models.DailyQuote
	if err := db.Where("is_active = ?", true).Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoQuotes
	}
	picked := candidates[rand.Intn(len(candidates))]

	assignment := models.QuoteAssignment{QuoteID: picked.ID, Date: date}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&assignment).Error; err != nil {
		return nil, err
	}

	var claimed models.QuoteAssignment
	if err := db.Preload("Quote").Where("date = ?", date).First(&claimed).Error; err != nil {
		return nil, err
	}
	return &claimed, nil
}
