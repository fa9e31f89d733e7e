package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteAssignmentRows(id, quoteID, date string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "quote_id", "date", "created_at"}).
		AddRow(id, quoteID, date, time.Now())
}

func quoteRows(id, text, author string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "text", "author", "is_active", "created_at"}).
		AddRow(id, text, author, true, time.Now())
}

func TestQuoteForDayReturnsExisting(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `quote_assignments` WHERE date = \\?").
		WillReturnRows(quoteAssignmentRows("assign-1", "quote-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_quotes`").
		WillReturnRows(quoteRows("quote-1", "The best of you are the best to their families.", ""))

	assignment, err := QuoteForDay(db, "2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "quote-1", assignment.QuoteID)
	assert.Equal(t, "The best of you are the best to their families.", assignment.Quote.Text)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteForDayAssignsLazily(t *testing.T) {
	db, mock := newMockDB(t)

	// No assignment yet for the day; one active quote to pick.
	mock.ExpectQuery("SELECT \\* FROM `quote_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "quote_id", "date", "created_at"}))
	mock.ExpectQuery("SELECT \\* FROM `daily_quotes`").
		WillReturnRows(quoteRows("quote-1", "Kind words are a form of charity.", "Hadith"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `quote_assignments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT \\* FROM `quote_assignments` WHERE date = \\?").
		WillReturnRows(quoteAssignmentRows("assign-1", "quote-1", "2025-03-10"))
	mock.ExpectQuery("SELECT \\* FROM `daily_quotes`").
		WillReturnRows(quoteRows("quote-1", "Kind words are a form of charity.", "Hadith"))

	assignment, err := QuoteForDay(db, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "quote-1", assignment.QuoteID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteForDayEmptyCatalog(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `quote_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "quote_id", "date", "created_at"}))
	mock.ExpectQuery("SELECT \\* FROM `daily_quotes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "author", "is_active", "created_at"}))

	_, err := QuoteForDay(db, "2025-03-10")
	assert.ErrorIs(t, err, ErrNoQuotes)

	assert.NoError(t, mock.ExpectationsWereMet())
}
