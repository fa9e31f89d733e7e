package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/middleware"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/utils"
)

// AuthController handles partner session endpoints. There is no open
// registration: the two users are seeded at setup time and log in by
// slug.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

const sessionDuration = 30 * 24 * time.Hour

type loginRequest struct {
	Slug string `json:"slug" binding:"required"`
}

// Login exchanges a known slug for a session token.
func (a *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "slug is required")
		return
	}

	slug := strings.ToLower(utils.Sanitize(req.Slug))
	var user models.User
	if err := a.db.Where("slug = ?", slug).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusUnauthorized, 40106, "unknown user")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to load user")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Slug, sessionDuration)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated user together with the partner.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	user, err := loadUser(a.db, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"user": user,
		"date": userSawaDay(user),
	})
}

// Logout revokes the current session token until it would have expired.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 {
		token := strings.TrimSpace(parts[1])
		if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
			utils.BlacklistToken(token, claims.ExpiresAt.Time)
		}
	}
	ctx.Set(middleware.ContextUserIDKey, "")
	utils.Success(ctx, gin.H{"message": "logged out"})
}
