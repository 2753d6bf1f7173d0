package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyUsage tracks how many generations a user performed on a given day.
// One row per (user, date); count is monotonically non-decreasing within
// a day.
type DailyUsage struct {
	UserID    uuid.UUID `db:"user_id" json:"userId"`
	UsageDate time.Time `db:"usage_date" json:"usageDate"`
	Count     int       `db:"count" json:"count"`
}
