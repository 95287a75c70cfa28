package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"escolar_backend/internals/features/users/auth/model"
)

// StartTokenCleanupScheduler remove periodicamente entradas expiradas da
// blacklist e api_tokens revogados/expirados há mais tempo que o TTL.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		// TTL em dias (default: 7)
		ttlDays := 7
		if val := os.Getenv("TOKEN_CLEANUP_TTL_DAYS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				ttlDays = parsed
			}
		}

		for {
			log.Println("[CLEANUP] Limpando tokens expirados...")
			cutoff := time.Now().Add(-time.Duration(ttlDays) * 24 * time.Hour)

			res := db.Unscoped().
				Where("expired_at < ?", cutoff).
				Delete(&model.TokenBlacklist{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] blacklist: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d entradas removidas da blacklist", res.RowsAffected)
			}

			res = db.
				Where("api_token_expires_at < ? OR api_token_revoked_at < ?", cutoff, cutoff).
				Delete(&model.ApiToken{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] api_tokens: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d api tokens removidos", res.RowsAffected)
			}

			res = db.
				Where("expires_at < ? OR revoked_at < ?", cutoff, cutoff).
				Delete(&model.RefreshToken{})
			if res.Error != nil {
				log.Printf("[CLEANUP ERROR] refresh_tokens: %v", res.Error)
			} else if res.RowsAffected > 0 {
				log.Printf("[CLEANUP] %d refresh tokens removidos", res.RowsAffected)
			}

			time.Sleep(24 * time.Hour)
		}
	}()
}
