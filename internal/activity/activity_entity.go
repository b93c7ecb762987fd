package activity

import (
	"time"

	"github.com/google/uuid"
)

// Activity is one journal line. Its ID is the lifecycle event id, which
// makes redelivered events collapse onto the same row.
type Activity struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_activities_company_time,priority:1"`
	EventType     string    `gorm:"type:varchar(100);not null"`
	AggregateType string    `gorm:"type:varchar(50);not null;index"`
	AggregateID   string    `gorm:"type:varchar(64);not null"`
	ActorID       string    `gorm:"type:varchar(64)"`
	RequestID     string    `gorm:"type:varchar(64)"`
	Summary       string    `gorm:"type:text;not null"`
	OccurredAt    time.Time `gorm:"not null;index:idx_activities_company_time,priority:2,sort:desc"`
	CreatedAt     time.Time
}
