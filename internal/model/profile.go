package model

import (
	"time"

	"gorm.io/gorm"
)

// WorkingStyleProfile is the blended per-user personality vector. One row per
// user, created on the first completed session and updated by every later
// one. Confidence is always sessionsCount/(sessionsCount+1), so it grows
// strictly toward 1 as sessions accumulate. Only the estimator's blend step
// may write this row.
type WorkingStyleProfile struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `json:"user_id" gorm:"not null;uniqueIndex"`
	Scores         DeltaMap       `json:"scores" gorm:"type:jsonb;not null"`
	Confidence     float64        `json:"confidence" gorm:"not null"`
	SessionsCount  int            `json:"sessions_count" gorm:"not null"`
	LastAssessedAt time.Time      `json:"last_assessed_at"`
	NextRefreshAt  time.Time      `json:"next_refresh_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
