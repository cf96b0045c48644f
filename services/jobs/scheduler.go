package jobs

import (
	"context"
	"lawyer_tools/config"
	"lawyer_tools/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	sessionCleanupSpec    = "0 * * * *"  // hourly
	speedLimitsReloadSpec = "30 2 * * *" // nightly, 02:30 Zurich time
)

// StartScheduler registers the background jobs and starts the cron runner.
// The caller stops it on shutdown.
func StartScheduler(database *gorm.DB, cfg *config.Config) (*cron.Cron, error) {
	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		log.Printf("[CRON] Falling back to UTC: %v", err)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(sessionCleanupSpec, func() {
		CleanupSessions(database)
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(speedLimitsReloadSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		ReloadSpeedLimits(ctx, services.Storage, cfg.SpeedLimitsKey)
	}); err != nil {
		return nil, err
	}

	c.Start()
	log.Println("[CRON] Scheduler started")
	return c, nil
}

// CleanupSessions removes expired login sessions
func CleanupSessions(database *gorm.DB) {
	removed, err := services.CleanupExpiredSessions(database)
	if err != nil {
		log.Printf("[CRON] Session cleanup failed: %v", err)
		return
	}
	log.Printf("[CRON] Session cleanup removed %d sessions", removed)
}

// ReloadSpeedLimits refreshes the speed-limit dataset; the previous one stays active on failure
func ReloadSpeedLimits(ctx context.Context, storage services.StorageProvider, key string) {
	if err := services.LoadSpeedLimits(ctx, storage, key); err != nil {
		log.Printf("[CRON] Speed limits reload failed: %v", err)
		return
	}
	log.Println("[CRON] Speed limits reloaded")
}
