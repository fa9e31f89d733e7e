package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// QuoteController serves the daily quote.
type QuoteController struct {
	db *gorm.DB
}

// NewQuoteController creates a new controller instance.
func NewQuoteController(db *gorm.DB) *QuoteController {
	return &QuoteController{db: db}
}

// TodayQuote returns the quote assigned to the caller's current day.
func (q *QuoteController) TodayQuote(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50045, "failed to load user")
		return
	}
	date := userSawaDay(user)

	assignment, err := services.QuoteForDay(q.db, date)
	if err != nil {
		if errors.Is(err, services.ErrNoQuotes) {
			utils.Error(ctx, http.StatusNotFound, 40441, "no quotes available")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50044, "failed to load quote")
		return
	}

	utils.Success(ctx, gin.H{
		"date":  date,
		"quote": assignment.Quote,
	})
}
