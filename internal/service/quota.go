package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retetar/backend/internal/models"
)

// QuotaService is the per-user, per-UTC-day generation ledger. Rows are
// created on first use of a day and only ever incremented afterwards; the
// unique (user_id, day) key makes the increment an atomic upsert.
type QuotaService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewQuotaService creates a new QuotaService instance
func NewQuotaService(db *gorm.DB) *QuotaService {
	return &QuotaService{
		db:  db,
		now: time.Now,
	}
}

// CountToday returns the number of successful generations recorded for the
// user today (UTC). A user with no row for the day counts as zero. Read-only.
func (s *QuotaService) CountToday(ctx context.Context, userID uuid.UUID) (int, error) {
	var record models.UsageLimit
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, models.UsageDay(s.now())).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return record.Count, nil
}

// IncrementToday adds exactly one to the user's counter for today (UTC),
// creating the row with count 1 when none exists. The ON CONFLICT clause on
// the unique (user_id, day) key keeps concurrent increments from losing
// updates or double-inserting.
func (s *QuotaService) IncrementToday(ctx context.Context, userID uuid.UUID) error {
	record := models.UsageLimit{
		UserID: userID,
		Day:    models.UsageDay(s.now()),
		Count:  1,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("usage_limits.count + 1"),
			"updated_at": s.now(),
		}),
	}).Create(&record).Error
}
