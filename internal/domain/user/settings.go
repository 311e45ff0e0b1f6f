package user

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds per-user preferences used by analysis and day-boundary rules.
type UserSettings struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Timezone        string    `gorm:"column:timezone" json:"timezone"`
	Country         string    `gorm:"column:country" json:"country"`
	UsageGoal       string    `gorm:"column:usage_goal" json:"usage_goal"`
	ExperienceLevel string    `gorm:"column:experience_level" json:"experience_level"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (UserSettings) TableName() string { return "user_settings" }
