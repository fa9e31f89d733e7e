package utils

import (
	"log"
	"time"

	"github.com/sawahq/sawa/config"
	"github.com/sawahq/sawa/models"
)

// StartActivitySweeper launches a background goroutine that periodically
// trims activity feed entries past the retention horizon. It is
// best-effort and logs failures.
func StartActivitySweeper(interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			// Sleep first to avoid racing immediately at startup
			time.Sleep(interval)
			db := config.DB()
			if db == nil {
				continue
			}
			c := config.Get()
			if c.ActivityRetentionDays <= 0 {
				continue
			}
			cutoff := time.Now().AddDate(0, 0, -c.ActivityRetentionDays)
			res := db.Where("created_at < ?", cutoff).Limit(1000).Delete(&models.ActivityLog{})
			if res.Error != nil {
				log.Printf("activity sweeper delete failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 && Sugar != nil {
				Sugar.Infof("activity sweeper trimmed %d entries", res.RowsAffected)
			}
		}
	}()
}
