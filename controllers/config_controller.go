package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/utils"
)

// ConfigController exposes gamification constants so clients never
// hardcode them.
type ConfigController struct{}

// NewConfigController creates a new controller instance.
func NewConfigController() *ConfigController {
	return &ConfigController{}
}

// Gamification returns the level thresholds and per-action XP rewards.
func (c *ConfigController) Gamification(ctx *gin.Context) {
	cfg := config.Get()
	utils.Success(ctx, gin.H{
		"level_thresholds": utils.LevelThresholds(),
		"xp": gin.H{
			"prayer":       cfg.XPPrayer,
			"binary_habit": cfg.XPBinaryHabit,
			"dual_confirm": cfg.XPDualConfirm,
			"question":     cfg.XPQuestion,
			"ritual":       cfg.XPRitual,
			"checkin":      cfg.XPCheckIn,
			"reaction":     cfg.XPReaction,
		},
	})
}
