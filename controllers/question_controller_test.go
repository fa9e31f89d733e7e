package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sawahq/sawa/utils"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func newQuestionRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/questions/today", NewQuestionController(db).PublicTodayQuestion)
	return r
}

func doRequest(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestPublicTodayQuestionBadDate(t *testing.T) {
	db, _ := newMockDB(t)
	r := newQuestionRouter(db)

	w := doRequest(r, "/questions/today?date=10-03-2025")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 40040, body.Code)
}

func TestPublicTodayQuestionMissingDate(t *testing.T) {
	db, _ := newMockDB(t)
	r := newQuestionRouter(db)

	w := doRequest(r, "/questions/today")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicTodayQuestionOK(t *testing.T) {
	db, mock := newMockDB(t)
	r := newQuestionRouter(db)

	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "date", "created_at"}).
			AddRow("assign-1", "q-1", "2025-03-10", time.Now()))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "options", "is_active", "created_at"}).
			AddRow("q-1", "What made you smile today?", "", true, time.Now()))

	w := doRequest(r, "/questions/today?date=2025-03-10")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "What made you smile today?")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicTodayQuestionEmptyCatalog(t *testing.T) {
	db, mock := newMockDB(t)
	r := newQuestionRouter(db)

	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "question_id", "date", "created_at"}))
	mock.ExpectQuery("SELECT `question_id` FROM `question_assignments`").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}))
	mock.ExpectQuery("SELECT \\* FROM `daily_questions`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "options", "is_active", "created_at"}))

	w := doRequest(r, "/questions/today?date=2025-03-10")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicTodayQuestionStoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	r := newQuestionRouter(db)

	mock.ExpectQuery("SELECT \\* FROM `question_assignments` WHERE date = \\?").
		WillReturnError(fmt.Errorf("connection reset"))

	w := doRequest(r, "/questions/today?date=2025-03-10")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}
