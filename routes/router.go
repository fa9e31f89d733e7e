package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/controllers"
	"github.com/sawahq/sawa/middleware"
	"github.com/sawahq/sawa/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}
	r.Use(middleware.MetricsMiddleware())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authController := controllers.NewAuthController(db)
	habitController := controllers.NewHabitController(db)
	checkInController := controllers.NewCheckInController(db)
	questionController := controllers.NewQuestionController(db)
	quoteController := controllers.NewQuoteController(db)
	ritualController := controllers.NewRitualController(db)
	questController := controllers.NewQuestController(db)
	reactionController := controllers.NewReactionController(db)
	activityController := controllers.NewActivityController(db)
	wishController := controllers.NewWishController(db)
	inboxController := controllers.NewInboxController(db)
	coupleController := controllers.NewCoupleController(db)
	prayerController := controllers.NewPrayerController(db)
	configController := controllers.NewConfigController()
	eventsController := controllers.NewEventsController(db)

	// Public: the day's question without a session.
	r.GET("/questions/today", questionController.PublicTodayQuestion)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public gamification constants.
	api.GET("/config/gamification", configController.Gamification)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/habits", habitController.ListHabits)
	protected.POST("/habits/:id/complete", habitController.CompleteHabit)
	protected.DELETE("/habits/:id/complete", habitController.UncompleteHabit)

	protected.GET("/checkins/today", checkInController.TodayCheckIn)
	protected.POST("/checkins", checkInController.CreateCheckIn)

	protected.GET("/questions/current", questionController.TodayQuestion)
	protected.POST("/questions/answer", questionController.AnswerQuestion)
	protected.POST("/questions/shuffle", questionController.ShuffleQuestion)

	protected.GET("/quotes/today", quoteController.TodayQuote)

	protected.GET("/rituals/today", ritualController.TodayRitual)
	protected.POST("/rituals", ritualController.SubmitRitual)

	protected.GET("/quests", questController.ListQuests)
	protected.POST("/quests/:id/complete", questController.CompleteQuest)

	protected.POST("/reactions", reactionController.SendReaction)
	protected.GET("/reactions/received", reactionController.ListReceivedReactions)
	protected.DELETE("/reactions/:id", reactionController.DeleteReaction)

	protected.GET("/activity", activityController.Feed)

	protected.GET("/wishes", wishController.ListWishes)
	protected.POST("/wishes", wishController.CreateWish)
	protected.POST("/wishes/:id/fulfill", wishController.FulfillWish)
	protected.DELETE("/wishes/:id", wishController.DeleteWish)

	protected.GET("/inbox", inboxController.ListInbox)
	protected.POST("/inbox", inboxController.CreateInboxItem)
	protected.POST("/inbox/:id/toggle", inboxController.ToggleInboxItem)
	protected.DELETE("/inbox/:id", inboxController.DeleteInboxItem)

	protected.GET("/couple/progress", coupleController.Progress)

	protected.GET("/prayers/timings", prayerController.Timings)
	protected.GET("/prayers/status", prayerController.Status)

	protected.GET("/events", eventsController.Stream)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
