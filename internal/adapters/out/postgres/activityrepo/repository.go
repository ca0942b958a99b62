// Package activityrepo persists the floor activity log. Entries are
// append-only; managers read them through reporting tools, not this service.
package activityrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLogDTO represents a single audit entry.
type ActivityLogDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActionType  string    `gorm:"index"`
	Description string
	CreatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for activity entries.
func (ActivityLogDTO) TableName() string {
	return "activity_logs"
}

// GormActivityLog implements ActivityLog using GORM.
type GormActivityLog struct {
	db    *gorm.DB
	clock func() time.Time
}

// NewGormActivityLog creates a new GORM activity log. A nil clock falls back
// to time.Now.
func NewGormActivityLog(db *gorm.DB, clock func() time.Time) *GormActivityLog {
	if clock == nil {
		clock = time.Now
	}
	return &GormActivityLog{db: db, clock: clock}
}

// Append writes one audit entry.
func (l *GormActivityLog) Append(ctx context.Context, actionType, description string) error {
	dto := ActivityLogDTO{
		ID:          uuid.New(),
		ActionType:  actionType,
		Description: description,
		CreatedAt:   l.clock(),
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}
