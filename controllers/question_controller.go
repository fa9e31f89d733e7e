package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// QuestionController serves the daily question flow.
type QuestionController struct {
	db *gorm.DB
}

// NewQuestionController creates a new controller instance.
func NewQuestionController(db *gorm.DB) *QuestionController {
	return &QuestionController{db: db}
}

// PublicTodayQuestion serves the day's question without a session. The
// caller supplies its own dawn-adjusted day key; there is no sensible
// server-side default for an anonymous timezone.
func (q *QuestionController) PublicTodayQuestion(ctx *gin.Context) {
	date := ctx.Query("date")
	if date == "" {
		utils.Error(ctx, http.StatusBadRequest, 40040, "date is required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "date must be YYYY-MM-DD")
		return
	}

	assignment, err := services.AssignmentForDay(q.db, date)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			utils.Error(ctx, http.StatusNotFound, 40440, "no questions available")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load question")
		return
	}

	utils.Success(ctx, gin.H{
		"date":     date,
		"question": assignment.Question,
	})
}

// TodayQuestion returns the day's question plus the caller's response
// state and remaining shuffles.
func (q *QuestionController) TodayQuestion(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load user")
		return
	}
	date := userSawaDay(user)

	assignment, err := services.AssignmentForDay(q.db, date)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			utils.Error(ctx, http.StatusNotFound, 40440, "no questions available")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load question")
		return
	}

	resp := gin.H{
		"date":               date,
		"question":           assignment.Question,
		"shuffles_remaining": services.ShuffleLimit - services.ShufflesUsed(q.db, userID, date),
	}

	// The partner's answer stays hidden until the caller has answered.
	answered := false
	var mine models.QuestionResponse
	if err := q.db.Where("user_id = ? AND date = ? AND answer <> ''", userID, date).
		First(&mine).Error; err == nil {
		resp["my_answer"] = mine
		answered = true
	}
	if answered && user.PartnerID != nil {
		var partner models.QuestionResponse
		if err := q.db.Where("user_id = ? AND date = ? AND answer <> ''", *user.PartnerID, date).
			First(&partner).Error; err == nil {
			resp["partner_answer"] = partner
		}
	}

	utils.Success(ctx, resp)
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// AnswerQuestion records the caller's answer for the day's question.
func (q *QuestionController) AnswerQuestion(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req answerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "answer is required")
		return
	}
	answer := utils.Sanitize(req.Answer)
	if answer == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "answer is required")
		return
	}

	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load user")
		return
	}
	date := userSawaDay(user)

	assignment, err := services.AssignmentForDay(q.db, date)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			utils.Error(ctx, http.StatusNotFound, 40440, "no questions available")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to load question")
		return
	}

	result, err := services.AnswerQuestion(q.db, userID, date, assignment.QuestionID, answer, config.Get().XPQuestion)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to record answer")
		return
	}
	utils.Views().Invalidate(progressViewKey)

	utils.Success(ctx, gin.H{"date": date, "result": result})
}

// ShuffleQuestion replaces the day's question, at most once per user
// per day. At the limit the current assignment comes back unchanged.
func (q *QuestionController) ShuffleQuestion(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(q.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load user")
		return
	}
	date := userSawaDay(user)

	assignment, shuffled, err := services.Shuffle(q.db, userID, date)
	if err != nil {
		if errors.Is(err, services.ErrNoQuestions) {
			utils.Error(ctx, http.StatusNotFound, 40440, "no questions available")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50043, "failed to shuffle question")
		return
	}

	utils.Success(ctx, gin.H{
		"date":     date,
		"question": assignment.Question,
		"shuffled": shuffled,
	})
}
