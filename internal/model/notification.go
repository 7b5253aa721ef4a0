package model

import "time"

// Notification types emitted by the match lifecycle.
const (
	NotificationTypeNewMatch    = "new_match"
	NotificationTypeInterest    = "match_interest"
	NotificationTypeMutualMatch = "mutual_match"
)

// Notification is a fire-and-forget record handed to the surrounding
// application; delivery is out of scope here.
type Notification struct {
	ID         string    `gorm:"primarykey;type:uuid" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Type       string    `json:"type" gorm:"not null"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"type:text"`
	ActionURL  string    `json:"action_url,omitempty"`
	ActionText string    `json:"action_text,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
