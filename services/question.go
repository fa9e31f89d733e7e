package services

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// ShuffleLimit is how many times one user may replace a day's question.
const ShuffleLimit = 1

// recentWindowDays is how far back an already-used question stays out of
// the pick pool.
const recentWindowDays = 30

// ErrNoQuestions means the active catalog is empty.
var ErrNoQuestions = errors.New("no active questions available")

// AssignmentForDay returns the day's question, assigning one lazily on
// the first read. Every later reader observes the same pick.
func AssignmentForDay(db *gorm.DB, date string) (*models.QuestionAssignment, error) {
	var assignment models.QuestionAssignment
	err := db.Preload("Question").Where("date = ?", date).First(&assignment).Error
	if err == nil {
		return &assignment, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	return assignForDay(db, date)
}

// assignForDay picks a question and claims the day. Two concurrent
// first readers race on the date's unique index; the loser's insert is
// a no-op and both re-read the winner's row.
func assignForDay(db *gorm.DB, date string) (*models.QuestionAssignment, error) {
	question, err := pickQuestion(db, date)
	if err != nil {
		return nil, err
	}

	assignment := models.QuestionAssignment{QuestionID: question.ID, Date: date}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoNothing: true,
	}).Create(&assignment).Error; err != nil {
		return nil, err
	}

	var claimed models.QuestionAssignment
	if err := db.Preload("Question").Where("date = ?", date).First(&claimed).Error; err != nil {
		return nil, err
	}
	return &claimed, nil
}

// pickQuestion chooses uniformly at random from active questions not
// used in the trailing window. An exhausted pool falls back to the full
// active set before giving up.
func pickQuestion(db *gorm.DB, date string) (*models.DailyQuestion, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, errors.New("invalid date key")
	}
	cutoff := day.AddDate(0, 0, -recentWindowDays).Format("2006-01-02")

	var recentIDs []string
	if err := db.Model(&models.QuestionAssignment{}).
		Where("date >= ? AND date < ?", cutoff, date).
		Pluck("question_id", &recentIDs).Error; err != nil {
		return nil, err
	}

	var candidates []models.DailyQuestion
	q := db.Where("is_active = ?", true)
	if len(recentIDs) > 0 {
		q = q.Where("id NOT IN ?", recentIDs)
	}
	if err := q.Find(&candidates).Error; err != nil {
		return nil, err
	}

	if len(candidates) == 0 && len(recentIDs) > 0 {
		if err := db.Where("is_active = ?", true).Find(&candidates).Error; err != nil {
			return nil, err
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoQuestions
	}

	picked := candidates[rand.Intn(len(candidates))]
	return &picked, nil
}

// ShufflesUsed reads the authoritative shuffle count for (user, day)
// merged with the local mirror. A read failure of the response row is
// treated as unknown, so the mirror still enforces the limit.
func ShufflesUsed(db *gorm.DB, userID, date string) int {
	authoritative := -1
	var response models.QuestionResponse
	err := db.Where("user_id = ? AND date = ?", userID, date).First(&response).Error
	switch {
	case err == nil:
		authoritative = response.ShufflesUsed
	case err == gorm.ErrRecordNotFound:
		authoritative = 0
	}
	return utils.MergedShuffleCount(authoritative, userID, date)
}

// Shuffle replaces the day's question, at most once per user per day.
// At the limit it is a no-op returning the unchanged assignment. The
// returned bool reports whether a reassignment happened.
func Shuffle(db *gorm.DB, userID, date string) (*models.QuestionAssignment, bool, error) {
	if ShufflesUsed(db, userID, date) >= ShuffleLimit {
		current, err := AssignmentForDay(db, date)
		return current, false, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).
			Delete(&models.QuestionAssignment{}).Error; err != nil {
			return err
		}
		return bumpShuffleCounter(tx, userID, date)
	})
	if err != nil {
		return nil, false, err
	}
	utils.RecordShuffle(userID, date)

	assignment, err := AssignmentForDay(db, date)
	if err != nil {
		return nil, false, err
	}
	utils.PublishChange(userID, "question_shuffle", date)
	return assignment, true, nil
}

// bumpShuffleCounter increments shuffles_used on the user's response
// row, creating a counter-only row (empty answer) when the user has not
// answered yet.
func bumpShuffleCounter(tx *gorm.DB, userID, date string) error {
	res := tx.Model(&models.QuestionResponse{}).
		Where("user_id = ? AND date = ?", userID, date).
		UpdateColumn("shuffles_used", gorm.Expr("shuffles_used + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	return tx.Create(&models.QuestionResponse{
		UserID:       userID,
		Date:         date,
		ShufflesUsed: 1,
	}).Error
}

// AnswerQuestion records the user's answer for the day through the
// completion ledger. A counter-only row left by a shuffle does not
// count as a prior completion; a real answer does, so edits never grant
// XP twice.
func AnswerQuestion(db *gorm.DB, userID, date, questionID, answer string, xp int) (*CompleteResult, error) {
	return CompleteOnce(db, CompleteOpts{
		UserID: userID,
		Date:   date,
		XP:     xp,
		Source: "question",
		Activity: &models.ActivityLog{
			Activity:    models.ActivityQuestionAnswer,
			Description: "answered the daily question",
			TargetType:  "daily_question",
			TargetID:    questionID,
		},
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.QuestionResponse{}).
				Where("user_id = ? AND date = ? AND answer <> ''", userID, date).
				Count(&count).Error
			return count > 0, err
		},
		Write: func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"question_id", "answer", "updated_at"}),
			}).Create(&models.QuestionResponse{
				UserID:     userID,
				QuestionID: questionID,
				Date:       date,
				Answer:     answer,
			}).Error
		},
	})
}
