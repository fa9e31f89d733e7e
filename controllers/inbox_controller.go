package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// InboxController handles the shared notes/todos inbox. Both partners
// see the same list and can complete any item.
type InboxController struct {
	db *gorm.DB
}

// NewInboxController creates a new controller instance.
func NewInboxController(db *gorm.DB) *InboxController {
	return &InboxController{db: db}
}

// ListInbox returns the shared inbox, newest first.
func (i *InboxController) ListInbox(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	user, err := loadUser(i.db, userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50100, "failed to load user")
		return
	}

	ids := []string{userID}
	if user.PartnerID != nil {
		ids = append(ids, *user.PartnerID)
	}
	q := i.db.Where("user_id IN ?", ids)
	if ctx.Query("pending") == "true" {
		q = q.Where("completed = ?", false)
	}
	var items []models.InboxItem
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to load inbox")
		return
	}

	utils.Success(ctx, gin.H{"items": items})
}

type inboxRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content" binding:"required"`
}

// CreateInboxItem adds a note or todo to the shared inbox.
func (i *InboxController) CreateInboxItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req inboxRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40100, "content is required")
		return
	}
	if req.Kind == "" {
		req.Kind = models.InboxNote
	}
	if req.Kind != models.InboxNote && req.Kind != models.InboxTodo {
		utils.Error(ctx, http.StatusBadRequest, 40102, "unknown inbox kind")
		return
	}
	content := utils.Sanitize(req.Content)
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40100, "content is required")
		return
	}

	item := models.InboxItem{UserID: userID, Kind: req.Kind, Content: content}
	if err := i.db.Create(&item).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50102, "failed to create item")
		return
	}

	utils.PublishChange(userID, "inbox", "")
	utils.Success(ctx, item)
}

// ToggleInboxItem flips a todo's completed state.
func (i *InboxController) ToggleInboxItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	itemID := ctx.Param("id")

	var item models.InboxItem
	if err := i.db.Where("id = ?", itemID).First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40510, "item not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50101, "failed to load item")
		return
	}

	updates := map[string]interface{}{"completed": !item.Completed}
	if !item.Completed {
		updates["completed_at"] = time.Now()
	} else {
		updates["completed_at"] = nil
	}
	if err := i.db.Model(&models.InboxItem{}).Where("id = ?", item.ID).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50103, "failed to update item")
		return
	}

	utils.PublishChange(userID, "inbox", "")
	utils.Success(ctx, gin.H{"id": item.ID, "completed": !item.Completed})
}

// DeleteInboxItem removes an item the caller created.
func (i *InboxController) DeleteInboxItem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	itemID := ctx.Param("id")

	res := i.db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.InboxItem{})
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50104, "failed to delete item")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40510, "item not found")
		return
	}

	utils.Success(ctx, gin.H{"deleted": true})
}
