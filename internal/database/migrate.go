package database

import (
	"gorm.io/gorm"

	"github.com/retetar/backend/internal/models"
)

// Migrate brings the schema up to date. The unique (user_id, day) index on
// usage_limits is part of the model definition and is what makes the quota
// upsert safe.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.UsageLimit{},
	)
}
