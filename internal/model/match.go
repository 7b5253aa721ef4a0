package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MatchStatus is the per-edge lifecycle state. Accepted and rejected are
// terminal; expiry is a read-time predicate on ExpiresAt, never a stored
// status.
type MatchStatus string

const (
	MatchStatusSuggested  MatchStatus = "suggested"
	MatchStatusViewed     MatchStatus = "viewed"
	MatchStatusInterested MatchStatus = "interested"
	MatchStatusAccepted   MatchStatus = "accepted"
	MatchStatusRejected   MatchStatus = "rejected"
)

// ActiveStatuses are the non-terminal-or-accepted states counted by the
// one-active-edge-per-pair uniqueness constraint and by listing.
func ActiveStatuses() []MatchStatus {
	return []MatchStatus{MatchStatusSuggested, MatchStatusViewed, MatchStatusInterested, MatchStatusAccepted}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s MatchStatus) IsTerminal() bool {
	return s == MatchStatusAccepted || s == MatchStatusRejected
}

// Respondable reports whether a user response (interested/rejected) is still
// allowed from s.
func (s MatchStatus) Respondable() bool {
	return s == MatchStatusSuggested || s == MatchStatusViewed
}

// StyleDetail is the per-dimension contribution to the working-style part of
// a score.
type StyleDetail struct {
	Dimension Dimension `json:"dimension"`
	Policy    string    `json:"policy"` // "similarity" or "complementarity"
	SubScore  float64   `json:"sub_score"`
}

// Breakdown explains a match from one user's point of view. The mirror row
// carries the reverse perspective; the scalar score is shared.
type Breakdown struct {
	SkillsTheyBring []string      `json:"skills_they_bring,omitempty"`
	NeedsTheyFill   []string      `json:"needs_they_fill,omitempty"`
	SharedDomains   []string      `json:"shared_domains,omitempty"`
	StyleDetails    []StyleDetail `json:"style_details,omitempty"`
	SkillScore      float64       `json:"skill_score"`
	OverlapScore    float64       `json:"overlap_score"`
	StyleScore      float64       `json:"style_score"`
}

// Compatibility is the stored JSON blob pairing the shared score with both
// per-perspective breakdowns.
type Compatibility struct {
	Score         float64   `json:"score"`
	BreakdownUser Breakdown `json:"breakdown_user"`
	BreakdownCand Breakdown `json:"breakdown_candidate"`
}

func (c Compatibility) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Compatibility) Scan(value interface{}) error {
	if value == nil {
		*c = Compatibility{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Compatibility", value)
	}
	return json.Unmarshal(b, c)
}

// Match is one directed edge of a pair. The reverse direction is a separate
// mirror row so each side keeps its own perspective and timestamps. The
// partial unique index enforces at most one active row per ordered pair even
// under concurrent RunMatching calls.
type Match struct {
	ID            string        `gorm:"primarykey;type:uuid" json:"id"`
	UserID        uint          `json:"user_id" gorm:"not null;index;uniqueIndex:idx_active_edge,where:status IN ('suggested','viewed','interested','accepted')"`
	CandidateID   uint          `json:"candidate_id" gorm:"not null;index;uniqueIndex:idx_active_edge,where:status IN ('suggested','viewed','interested','accepted')"`
	MatchScore    float64       `json:"match_score" gorm:"not null"`
	Compatibility Compatibility `json:"compatibility" gorm:"type:jsonb"`
	Status        MatchStatus   `json:"status" gorm:"type:varchar(16);not null;default:'suggested';index"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	ViewedAt      *time.Time    `json:"viewed_at,omitempty"`
	RespondedAt   *time.Time    `json:"responded_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Expired is the read-time expiry predicate; there is no stored expired
// status and no background sweeper.
func (m *Match) Expired(now time.Time) bool {
	return m.ExpiresAt != nil && m.ExpiresAt.Before(now)
}
