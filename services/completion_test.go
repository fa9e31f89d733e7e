package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sawahq/sawa/models"
)

func habitLogOpts(xp int) CompleteOpts {
	return CompleteOpts{
		UserID: "user-a",
		Date:   "2025-03-10",
		XP:     xp,
		Source: "habit",
		Activity: &models.ActivityLog{
			Activity:    models.ActivityHabitComplete,
			Description: "Fajr",
			TargetType:  "habit",
			TargetID:    "habit-1",
		},
		Exists: func(tx *gorm.DB) (bool, error) {
			var count int64
			err := tx.Model(&models.HabitLog{}).
				Where("user_id = ? AND habit_id = ? AND date = ?", "user-a", "habit-1", "2025-03-10").
				Count(&count).Error
			return count > 0, err
		},
		Write: func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "habit_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "logged_at"}),
			}).Create(&models.HabitLog{
				UserID:  "user-a",
				HabitID: "habit-1",
				Date:    "2025-03-10",
				Value:   models.HabitValue{Done: true},
			}).Error
		},
	}
}

func TestCompleteOnceFirstCompletionGrantsXP(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `habit_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `habit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT \\* FROM `couples`").
		WillReturnRows(coupleRows(10, 1))
	mock.ExpectExec("UPDATE `couples` SET `total_xp`=total_xp \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `couples` WHERE id = \\?").
		WillReturnRows(coupleRows(25, 1))
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := CompleteOnce(db, habitLogOpts(15))
	require.NoError(t, err)

	assert.True(t, result.First)
	assert.Equal(t, 15, result.XPAwarded)
	require.NotNil(t, result.Progress)
	assert.Equal(t, 25, result.Progress.TotalXP)
	assert.Equal(t, 1, result.Progress.Level)
	assert.False(t, result.Progress.LeveledUp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOnceRepeatGrantsNoXP(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `habit_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))
	mock.ExpectExec("INSERT INTO `habit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	result, err := CompleteOnce(db, habitLogOpts(15))
	require.NoError(t, err)

	assert.False(t, result.First)
	assert.Equal(t, 0, result.XPAwarded)
	assert.Nil(t, result.Progress)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOnceCrossingThresholdLevelsUp(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `habit_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `habit_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT \\* FROM `couples`").
		WillReturnRows(coupleRows(90, 1))
	mock.ExpectExec("UPDATE `couples` SET `total_xp`=total_xp \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `couples` WHERE id = \\?").
		WillReturnRows(coupleRows(105, 1))
	mock.ExpectExec("UPDATE `couples` SET `level`=\\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := CompleteOnce(db, habitLogOpts(15))
	require.NoError(t, err)

	require.NotNil(t, result.Progress)
	assert.Equal(t, 2, result.Progress.Level)
	assert.True(t, result.Progress.LeveledUp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOnceWriteFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `habit_logs`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `habit_logs`").
		WillReturnError(errors.New("write failed"))
	mock.ExpectRollback()

	_, err := CompleteOnce(db, habitLogOpts(15))
	require.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOnceRequiresCallbacks(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := CompleteOnce(db, CompleteOpts{UserID: "user-a", Date: "2025-03-10"})
	assert.Error(t, err)
}

func TestAddXPAppendsActivity(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `couples`").
		WillReturnRows(coupleRows(40, 1))
	mock.ExpectExec("UPDATE `couples` SET `total_xp`=total_xp \\+ \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `couples` WHERE id = \\?").
		WillReturnRows(coupleRows(45, 1))
	mock.ExpectExec("INSERT INTO `activity_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := AddXP(db, "user-a", 5, "reaction", &models.ActivityLog{
		Activity:    models.ActivityReactionSent,
		Description: "sent a heart",
	})
	require.NoError(t, err)
	assert.Equal(t, 45, result.TotalXP)

	assert.NoError(t, mock.ExpectationsWereMet())
}
