package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityEvent is an append-only record of each accepted activity.
type ActivityEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	XPAwarded int64     `gorm:"column:xp_awarded;not null" json:"xp_awarded"`
	LocalDate string    `gorm:"column:local_date;not null;index" json:"local_date"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (ActivityEvent) TableName() string { return "activity_event" }

func (e *ActivityEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
