package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsageDayFormat is the layout of the Day column, a UTC calendar date.
const UsageDayFormat = "2006-01-02"

// UsageLimit counts successful recipe generations for one user on one UTC
// calendar day. Exactly one row may exist per (user, day).
type UsageLimit struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_usage_user_day" json:"user_id"`
	Day       string    `gorm:"type:date;not null;uniqueIndex:idx_usage_user_day" json:"day"`
	Count     int       `gorm:"not null;default:0" json:"count"`
}

func (u *UsageLimit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UsageDay formats a point in time as its UTC day bucket.
func UsageDay(t time.Time) string {
	return t.UTC().Format(UsageDayFormat)
}
