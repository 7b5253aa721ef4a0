package dto

import (
	"time"

	"github.com/founderfit/cofounder-api/internal/model"
)

// MatchDTO is one directed match edge from the owning user's perspective.
type MatchDTO struct {
	ID            string              `json:"id"`
	UserID        uint                `json:"user_id"`
	CandidateID   uint                `json:"candidate_id"`
	MatchScore    float64             `json:"match_score"`
	Status        model.MatchStatus   `json:"status"`
	Compatibility model.Compatibility `json:"compatibility"`
	ExpiresAt     *time.Time          `json:"expires_at,omitempty"`
	ViewedAt      *time.Time          `json:"viewed_at,omitempty"`
	RespondedAt   *time.Time          `json:"responded_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// RunMatchingResultDTO lists the freshly created matches for the requester.
type RunMatchingResultDTO struct {
	Matches []MatchDTO `json:"matches"`
}

// RespondToMatchDTO is a user's answer to a suggested match.
type RespondToMatchDTO struct {
	UserID uint   `json:"user_id" binding:"required"` // Temporary, for non-auth user identification
	Action string `json:"action" binding:"required,oneof=interested rejected"`
}

// RespondResultDTO reports the resulting edge status and whether the response
// completed a mutual match.
type RespondResultDTO struct {
	Status model.MatchStatus `json:"status"`
	Mutual bool              `json:"mutual"`
}
