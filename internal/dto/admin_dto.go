package dto

import "github.com/founderfit/cofounder-api/internal/model"

// QuestionCreateDTO is the admin payload for adding a catalog item. Delta
// maps are validated here, at the catalog boundary, so scoring never parses
// free-form data at request time.
type QuestionCreateDTO struct {
	Dimension     model.Dimension `json:"dimension" binding:"required"`
	OptionAText   string          `json:"option_a_text" binding:"required"`
	OptionBText   string          `json:"option_b_text" binding:"required"`
	OptionADeltas model.DeltaMap  `json:"option_a_deltas" binding:"required"`
	OptionBDeltas model.DeltaMap  `json:"option_b_deltas" binding:"required"`
}

// AdminQuestionDTO includes the delta vectors and active flag; admin-only.
type AdminQuestionDTO struct {
	ID            uint            `json:"id"`
	Dimension     model.Dimension `json:"dimension"`
	OptionAText   string          `json:"option_a_text"`
	OptionBText   string          `json:"option_b_text"`
	OptionADeltas model.DeltaMap  `json:"option_a_deltas"`
	OptionBDeltas model.DeltaMap  `json:"option_b_deltas"`
	Active        bool            `json:"active"`
}
