package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizQuestion is a forced-choice item in the assessment catalog. Each option
// carries a signed delta vector applied to the 50 baseline when picked.
// Questions are immutable once created; deactivation excludes them from
// future selection while keeping old sessions replayable.
type QuizQuestion struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Dimension     Dimension      `json:"dimension" gorm:"not null;index"`
	OptionAText   string         `json:"option_a_text" gorm:"type:text;not null"`
	OptionBText   string         `json:"option_b_text" gorm:"type:text;not null"`
	OptionADeltas DeltaMap       `json:"option_a_deltas" gorm:"type:jsonb;not null"`
	OptionBDeltas DeltaMap       `json:"option_b_deltas" gorm:"type:jsonb;not null"`
	Active        bool           `json:"active" gorm:"not null;default:true;index"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DeltasFor returns the delta vector for the chosen option.
func (q *QuizQuestion) DeltasFor(option ResponseOption) DeltaMap {
	if option == OptionA {
		return q.OptionADeltas
	}
	return q.OptionBDeltas
}
