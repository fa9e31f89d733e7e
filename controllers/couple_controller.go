package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// CoupleController serves the shared progress view.
type CoupleController struct {
	db *gorm.DB
}

// NewCoupleController creates a new controller instance.
func NewCoupleController(db *gorm.DB) *CoupleController {
	return &CoupleController{db: db}
}

type progressView struct {
	TotalXP         int `json:"total_xp"`
	Level           int `json:"level"`
	ProgressPercent int `json:"progress_percent"`
	CurrentLevelXP  int `json:"current_level_xp"`
	NextLevelXP     int `json:"next_level_xp"`
}

// Progress returns the couple's XP, level and progress through the
// current level. Served from the view cache between XP events.
func (c *CoupleController) Progress(ctx *gin.Context) {
	if _, ok := getUserID(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if cached, ok := utils.Views().Get(progressViewKey); ok {
		var view progressView
		if err := json.Unmarshal(cached, &view); err == nil {
			utils.Success(ctx, view)
			return
		}
	}

	couple, err := services.EnsureCouple(c.db)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50110, "failed to load progress")
		return
	}

	view := progressView{
		TotalXP:         couple.TotalXP,
		Level:           couple.Level,
		ProgressPercent: utils.ProgressPercent(couple.TotalXP, couple.Level),
		CurrentLevelXP:  utils.XPThresholdForLevel(couple.Level),
		NextLevelXP:     utils.XPThresholdForLevel(couple.Level + 1),
	}
	if b, err := json.Marshal(view); err == nil {
		utils.Views().Put(progressViewKey, b)
	}
	utils.Success(ctx, view)
}
