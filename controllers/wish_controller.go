package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// WishController handles gift wishes. Each list belongs to one user;
// the partner reads it and marks items fulfilled.
type WishController struct {
	db *gorm.DB
}

// NewWishController creates a new controller instance.
func NewWishController(db *gorm.DB) *WishController {
	return &WishController{db: db}
}

// ListWishes returns the caller's wishes and the partner's.
func (w *WishController) ListWishes(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(w.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50090, "failed to load user")
		return
	}

	var mine []models.Wish
	if err := w.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&mine).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load wishes")
		return
	}
	partner := []models.Wish{}
	if user.PartnerID != nil {
		if err := w.db.Where("user_id = ?", *user.PartnerID).Order("created_at DESC").Find(&partner).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load wishes")
			return
		}
	}

	utils.Success(ctx, gin.H{"mine": mine, "partner": partner})
}

type wishRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateWish adds a wish to the caller's list.
func (w *WishController) CreateWish(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req wishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, "title is required")
		return
	}

	wish := models.Wish{
		UserID:      userID,
		Title:       utils.Sanitize(req.Title),
		Description: utils.Sanitize(req.Description),
	}
	if wish.Title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40090, "title is required")
		return
	}
	if err := w.db.Create(&wish).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50092, "failed to create wish")
		return
	}

	utils.PublishChange(userID, "wish", "")
	utils.Success(ctx, wish)
}

// FulfillWish marks a partner's wish fulfilled and logs the moment to
// the feed. No XP: gifts are their own reward.
func (w *WishController) FulfillWish(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	wishID := ctx.Param("id")

	var wish models.Wish
	if err := w.db.Where("id = ?", wishID).First(&wish).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40490, "wish not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50091, "failed to load wish")
		return
	}
	if wish.UserID == userID {
		utils.Error(ctx, http.StatusBadRequest, 40091, "cannot fulfill your own wish")
		return
	}
	if wish.Fulfilled {
		utils.Success(ctx, wish)
		return
	}

	now := time.Now()
	err := w.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Wish{}).Where("id = ?", wish.ID).
			Updates(map[string]interface{}{"fulfilled": true, "fulfilled_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ActivityLog{
			UserID:      userID,
			Activity:    models.ActivityWishFulfilled,
			Description: wish.Title,
			TargetType:  "wish",
			TargetID:    wish.ID,
		}).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50093, "failed to fulfill wish")
		return
	}

	wish.Fulfilled = true
	wish.FulfilledAt = &now
	utils.PublishChange(userID, "wish", "")
	utils.Success(ctx, wish)
}

// DeleteWish removes one of the caller's own wishes.
func (w *WishController) DeleteWish(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	wishID := ctx.Param("id")

	res := w.db.Where("id = ? AND user_id = ?", wishID, userID).Delete(&models.Wish{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50094, "failed to delete wish")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40490, "wish not found")
		return
	}

	utils.Success(ctx, gin.H{"deleted": true})
}
