package service

import (
	"context"
	"time"

	"boycottwatch/catalog-api/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AccountCleanup periodically deletes accounts that never confirmed their
// email within the deadline, together with their image folder. Verified
// rows are never touched.
func AccountCleanup(interval, deadline time.Duration, db *gorm.DB, uploader Uploader) {
	for {
		time.Sleep(interval)

		cutoff := time.Now().Add(-deadline)

		cleanupTable(db, uploader, &model.Admin{}, cutoff)
		cleanupTable(db, uploader, &model.User{}, cutoff)
	}
}

type stalePrincipal struct {
	ID      uint
	ImageID string
}

func cleanupTable(db *gorm.DB, uploader Uploader, table any, cutoff time.Time) {
	var stale []stalePrincipal

	err := db.Model(table).
		Where("email_verified = ? AND created_at < ?", false, cutoff).
		Select("id", "image_id").
		Find(&stale).
		Error
	if err != nil {
		zap.L().Error("Failed to list unverified accounts", zap.Error(err))
		return
	}

	for _, s := range stale {
		if s.ImageID != "" {
			if err := uploader.Delete(context.Background(), s.ImageID); err != nil {
				zap.L().Error("Failed to delete image of stale account", zap.Error(err), zap.Uint("id", s.ID))
			}
		}

		if err := db.Delete(table, s.ID).Error; err != nil {
			zap.L().Error("Failed to delete stale account", zap.Error(err), zap.Uint("id", s.ID))
			continue
		}

		zap.L().Info("Deleted account that never verified", zap.Uint("id", s.ID))
	}
}
