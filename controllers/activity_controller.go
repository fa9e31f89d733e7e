package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// ActivityController serves the shared activity feed.
type ActivityController struct {
	db *gorm.DB
}

// NewActivityController creates a new controller instance.
func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{db: db}
}

// Feed returns the newest activity entries from both partners.
func (a *ActivityController) Feed(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(a.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load user")
		return
	}

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	offset := 0
	if raw := ctx.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}

	ids := []string{userID}
	if user.PartnerID != nil {
		ids = append(ids, *user.PartnerID)
	}

	if ctx.Query("user") == "me" {
		ids = []string{userID}
	}
	q := a.db.Where("user_id IN ?", ids)
	if kind := ctx.Query("type"); kind != "" {
		q = q.Where("activity = ?", kind)
	}
	if ctx.Query("today") == "true" {
		q = q.Where("created_at >= ?", time.Now().Add(-24*time.Hour))
	}

	var entries []models.ActivityLog
	if err := q.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50081, "failed to load activity")
		return
	}

	utils.Success(ctx, gin.H{"activity": entries})
}
