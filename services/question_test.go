package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawahq/sawa/utils"
)

func assignmentRows(id, questionID, date string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "question_id", "date", "created_at"}).
		AddRow(id, questionID, date, time.Now())
}

func questionRows(id, text string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "text", "options", "is_active", "created_at"}).
		AddRow(id, text, "", true, time.Now())
}

func TestAssignmentForDayReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(assignmentRows("assign-1", "q-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(questionRows("q-1", "What made you smile today?"))

	assignment, err := AssignmentForDay(db, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "q-1", assignment.QuestionID)
	assert.Equal(t, "What made you smile today?", assignment.Question.Text)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentForDayEmptyCatalog(t *testing.T) {
	db, mock := newMockDB(t)

	// No assignment yet for the day.
	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "date", "created_at"}))
	// No recent picks, and nothing active to pick from.
	mock.ExpectQuery("SELECT `question_id` FROM `question_assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "options", "is_active", "created_at"}))

	_, err := AssignmentForDay(db, "2025-03-10")
	assert.ErrorIs(t, err, ErrNoQuestions)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentForDayFallsBackToFullActiveSet(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "date", "created_at"}))
	// Every active question was used in the trailing window.
	mock.ExpectQuery("SELECT `question_id` FROM `question_assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow("q-1"))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "options", "is_active", "created_at"}))
	// Fallback re-reads the full active set.
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(questionRows("q-1", "What are you grateful for?"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `question_assignments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(assignmentRows("assign-1", "q-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(questionRows("q-1", "What are you grateful for?"))

	assignment, err := AssignmentForDay(db, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "q-1", assignment.QuestionID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShuffleAtLimitIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	user := fmt.Sprintf("user-%d", time.Now().UnixNano())

	// Authoritative counter already at the limit.
	mock.ExpectQuery("SELECT \\* FROM `question_responses`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "question_id", "date", "answer", "shuffles_used", "created_at", "updated_at"}).
			AddRow("resp-1", user, "q-1", "2025-03-10", "", 1, time.Now(), time.Now()))
	// The unchanged assignment comes back.
	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(assignmentRows("assign-1", "q-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(questionRows("q-1", "What made you smile today?"))

	assignment, shuffled, err := Shuffle(db, user, "2025-03-10")
	require.NoError(t, err)

	assert.False(t, shuffled)
	assert.Equal(t, "q-1", assignment.QuestionID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShuffleMirrorEnforcesLimitWhenCounterUnreadable(t *testing.T) {
	db, mock := newMockDB(t)
	user := fmt.Sprintf("user-%d", time.Now().UnixNano())

	// The user shuffled already, recorded only in the local mirror.
	utils.RecordShuffle(user, "2025-03-10")

	// Authoritative read fails; merged count still hits the limit.
	mock.ExpectQuery("SELECT \\* FROM `question_responses`").
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(assignmentRows("assign-1", "q-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(questionRows("q-1", "What made you smile today?"))

	_, shuffled, err := Shuffle(db, user, "2025-03-10")
	require.NoError(t, err)
	assert.False(t, shuffled)

	assert.NoError(t, mock.ExpectationsWereMet())
}
