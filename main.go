package main

import (
	"time"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
	"github.com/sawahq/sawa/routes"
	"github.com/sawahq/sawa/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	utils.InitMetrics()

	db := config.InitDatabase(
		&models.User{},
		&models.Couple{},
		&models.Habit{},
		&models.UserHabit{},
		&models.HabitLog{},
		&models.CheckIn{},
		&models.DailyQuestion{},
		&models.QuestionAssignment{},
		&models.QuestionResponse{},
		&models.DailyQuote{},
		&models.QuoteAssignment{},
		&models.RitualResponse{},
		&models.Quest{},
		&models.QuestProgress{},
		&models.ActivityLog{},
		&models.Reaction{},
		&models.Wish{},
		&models.InboxItem{},
	)

	r := routes.SetupRouter(db)

	// Trim old activity feed entries in the background (best-effort)
	utils.StartActivitySweeper(time.Hour)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
