package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Dimension is one of the six working-style axes. Every axis is scored on a
// 0-100 scale around a neutral baseline of 50; there is no "good" direction.
type Dimension string

const (
	DimensionRiskTolerance    Dimension = "risk_tolerance"
	DimensionDecisionStyle    Dimension = "decision_style"
	DimensionPace             Dimension = "pace"
	DimensionConflictApproach Dimension = "conflict_approach"
	DimensionRoleGravity      Dimension = "role_gravity"
	DimensionCommunication    Dimension = "communication"
)

const (
	// BaselineScore is the neutral starting point of every dimension.
	BaselineScore = 50.0
	MinScore      = 0.0
	MaxScore      = 100.0
)

// AllDimensions returns the closed set of axes in a stable order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimensionRiskTolerance,
		DimensionDecisionStyle,
		DimensionPace,
		DimensionConflictApproach,
		DimensionRoleGravity,
		DimensionCommunication,
	}
}

// IsValid reports whether d is one of the known axes.
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionRiskTolerance, DimensionDecisionStyle, DimensionPace,
		DimensionConflictApproach, DimensionRoleGravity, DimensionCommunication:
		return true
	}
	return false
}

// DeltaMap is a per-dimension value map stored as a JSONB column. It is used
// both for the signed option deltas on quiz questions and for the blended
// scores on working-style profiles.
type DeltaMap map[Dimension]float64

// Value implements driver.Valuer so gorm can persist the map as JSON.
func (m DeltaMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (m *DeltaMap) Scan(value interface{}) error {
	if value == nil {
		*m = DeltaMap{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DeltaMap", value)
	}
	return json.Unmarshal(b, m)
}

// Validate rejects unknown dimension keys. It is called once at the catalog
// boundary so scoring never has to defensively parse free-form data.
func (m DeltaMap) Validate() error {
	for dim := range m {
		if !dim.IsValid() {
			return fmt.Errorf("unknown dimension %q in delta map", dim)
		}
	}
	return nil
}
