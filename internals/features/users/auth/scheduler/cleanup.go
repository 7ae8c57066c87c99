package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"academia_backend/internals/features/users/auth/model"
)

// StartTokenCleanupScheduler purges expired blacklist entries and stale
// password reset tokens on a fixed interval.
func StartTokenCleanupScheduler(db *gorm.DB, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		for {
			runCleanup(db)
			time.Sleep(interval)
		}
	}()
}

func runCleanup(db *gorm.DB) {
	now := time.Now()

	res := db.Unscoped().
		Where("expired_at < ?", now).
		Delete(&model.TokenBlacklist{})
	if res.Error != nil {
		log.Printf("[CLEANUP] blacklist purge failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] removed %d expired blacklisted tokens", res.RowsAffected)
	}

	res = db.Where("expires_at < ? OR used_at IS NOT NULL", now.Add(-24*time.Hour)).
		Delete(&model.PasswordResetToken{})
	if res.Error != nil {
		log.Printf("[CLEANUP] reset-token purge failed: %v", res.Error)
	} else if res.RowsAffected > 0 {
		log.Printf("[CLEANUP] removed %d stale password reset tokens", res.RowsAffected)
	}
}
