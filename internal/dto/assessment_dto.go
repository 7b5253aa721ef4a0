package dto

import (
	"time"

	"github.com/founderfit/cofounder-api/internal/model"
)

// QuestionDTO is a quiz item as shown to a respondent. Delta vectors are
// never exposed; only the two option texts.
type QuestionDTO struct {
	ID          uint            `json:"id"`
	Dimension   model.Dimension `json:"dimension"`
	OptionAText string          `json:"option_a_text"`
	OptionBText string          `json:"option_b_text"`
}

// ResponseDTO is a single recorded answer, echoed back on resume.
type ResponseDTO struct {
	QuestionID     uint                 `json:"question_id" binding:"required"`
	SelectedOption model.ResponseOption `json:"selected_option" binding:"required,oneof=A B"`
	ResponseTimeMs int                  `json:"response_time_ms"`
}

// StartAssessmentDTO identifies the requesting user.
type StartAssessmentDTO struct {
	UserID uint `json:"user_id" binding:"required"` // Temporary, for non-auth user identification
}

// AssessmentSessionDTO is the start/resume payload: the fixed ordered
// question list plus whatever answers were already collected.
type AssessmentSessionDTO struct {
	SessionID         uint          `json:"session_id"`
	Version           int           `json:"version"`
	Questions         []QuestionDTO `json:"questions"`
	ExistingResponses []ResponseDTO `json:"existing_responses,omitempty"`
	Resumed           bool          `json:"resumed"`
}

// SubmitAssessmentDTO carries the full answer set for a session.
type SubmitAssessmentDTO struct {
	UserID    uint          `json:"user_id" binding:"required"`
	Responses []ResponseDTO `json:"responses" binding:"required,min=1,dive"`
}

// WorkingStyleProfileDTO is the blended profile returned after submission.
type WorkingStyleProfileDTO struct {
	UserID         uint           `json:"user_id"`
	Scores         model.DeltaMap `json:"scores"`
	Confidence     float64        `json:"confidence"`
	SessionsCount  int            `json:"sessions_count"`
	LastAssessedAt time.Time      `json:"last_assessed_at"`
	NextRefreshAt  time.Time      `json:"next_refresh_at"`
}
