package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// QuestionIDList is the ordered question list of a session, stored as JSON.
// The list is fixed at session creation; a session's identity is the ordered
// set of questions asked, which is what makes resuming possible.
type QuestionIDList []uint

func (l QuestionIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *QuestionIDList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionIDList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into QuestionIDList", value)
	}
	return json.Unmarshal(b, l)
}

// AssessmentSession is one quiz attempt owned by a single user. At most one
// incomplete session exists per user; it is resumed, never regenerated.
type AssessmentSession struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	UserID      uint           `json:"user_id" gorm:"not null;index;uniqueIndex:idx_open_session,where:completed_at IS NULL"`
	QuestionIDs QuestionIDList `json:"question_ids" gorm:"type:jsonb;not null"`
	Version     int            `json:"version" gorm:"not null;default:1"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Completed reports whether the session has been scored and closed.
func (s *AssessmentSession) Completed() bool {
	return s.CompletedAt != nil
}

// ResponseOption identifies which of the two forced-choice options was picked.
type ResponseOption string

const (
	OptionA ResponseOption = "A"
	OptionB ResponseOption = "B"
)

func (o ResponseOption) IsValid() bool {
	return o == OptionA || o == OptionB
}

// AssessmentResponse is a single answer within a session, unique per
// (session, question) so retried submissions upsert instead of append.
// Responses of a completed session are immutable.
type AssessmentResponse struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SessionID      uint           `json:"session_id" gorm:"not null;uniqueIndex:idx_session_question"`
	QuestionID     uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_session_question"`
	SelectedOption ResponseOption `json:"selected_option" gorm:"type:varchar(1);not null"`
	ResponseTimeMs int            `json:"response_time_ms"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
