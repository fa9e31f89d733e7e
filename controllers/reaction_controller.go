package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/services"
	"github.com/sawahq/sawa/utils"
)

// ReactionController handles partner-to-partner reactions.
type ReactionController struct {
	db *gorm.DB
}

// NewReactionController creates a new controller instance.
func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{db: db}
}

type reactionRequest struct {
	Reaction   string `json:"reaction" binding:"required"`
	TargetType string `json:"target_type" binding:"required"`
	TargetID   string `json:"target_id" binding:"required"`
}

// SendReaction appends a reaction aimed at the partner. Reactions are
// deliberately unlimited per target; each one awards its small XP.
func (r *ReactionController) SendReaction(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req reactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "reaction, target_type and target_id are required")
		return
	}
	if !models.ValidReaction(req.Reaction) {
		utils.Error(ctx, http.StatusBadRequest, 40071, "unknown reaction")
		return
	}

	user, err := loadUser(r.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to load user")
		return
	}
	if user.PartnerID == nil {
		utils.Error(ctx, http.StatusBadRequest, 40072, "no partner to react to")
		return
	}

	reaction := models.Reaction{
		FromUserID: userID,
		ToUserID:   *user.PartnerID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reaction:   req.Reaction,
	}
	if err := r.db.Create(&reaction).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to send reaction")
		return
	}

	progress, err := services.AddXP(r.db, userID, config.Get().XPReaction, "reaction", &models.ActivityLog{
		Activity:    models.ActivityReactionSent,
		Description: "sent a " + req.Reaction,
		TargetType:  req.TargetType,
		TargetID:    req.TargetID,
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to award reaction")
		return
	}
	utils.Views().Invalidate(progressViewKey)

	utils.Success(ctx, gin.H{"reaction": reaction, "progress": progress})
}

// DeleteReaction removes a reaction the caller sent. XP already
// granted stays.
func (r *ReactionController) DeleteReaction(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	reactionID := ctx.Param("id")

	res := r.db.Where("id = ? AND from_user_id = ?", reactionID, userID).Delete(&models.Reaction{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to delete reaction")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40470, "reaction not found")
		return
	}

	utils.Success(ctx, gin.H{"deleted": true})
}

// ListReceivedReactions returns the newest reactions aimed at the
// caller.
func (r *ReactionController) ListReceivedReactions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var reactions []models.Reaction
	if err := r.db.Where("to_user_id = ?", userID).
		Order("created_at DESC").Limit(50).
		Find(&reactions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to load reactions")
		return
	}

	utils.Success(ctx, gin.H{"reactions": reactions})
}
