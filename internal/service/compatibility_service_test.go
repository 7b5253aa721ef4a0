package service

import (
	"testing"

	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileWith(userID uint, confidence float64, score float64) *model.WorkingStyleProfile {
	scores := make(model.DeltaMap)
	for _, dim := range model.AllDimensions() {
		scores[dim] = score
	}
	return &model.WorkingStyleProfile{UserID: userID, Scores: scores, Confidence: confidence}
}

func TestScoreIsSymmetric(t *testing.T) {
	svc := NewCompatibilityService()

	a := Snapshot{
		UserID:   1,
		Industry: "Fintech",
		Skills: []model.Skill{
			{Name: "Go", Category: "Engineering", Proficiency: 5},
			{Name: "Kubernetes", Category: "Engineering", Proficiency: 3},
		},
		RoleNeeds: []model.RoleNeed{{Role: "Sales"}},
		Profile:   profileWith(1, 0.75, 70),
	}
	b := Snapshot{
		UserID:   2,
		Industry: "Fintech",
		Skills: []model.Skill{
			{Name: "Sales", Category: "Sales", Proficiency: 4, Verified: true},
		},
		Profile: profileWith(2, 0.5, 35),
	}

	ab := svc.Score(a, b)
	ba := svc.Score(b, a)

	assert.Equal(t, ab.Score, ba.Score, "scalar must not depend on argument order")

	// Perspectives must swap, not change. Slices are compared as sets: their
	// ordering is not part of the contract.
	assert.Equal(t, ab.BreakdownA.SkillScore, ba.BreakdownB.SkillScore)
	assert.Equal(t, ab.BreakdownA.OverlapScore, ba.BreakdownB.OverlapScore)
	assert.Equal(t, ab.BreakdownA.StyleScore, ba.BreakdownB.StyleScore)
	assert.ElementsMatch(t, ab.BreakdownA.SkillsTheyBring, ba.BreakdownB.SkillsTheyBring)
	assert.ElementsMatch(t, ab.BreakdownA.NeedsTheyFill, ba.BreakdownB.NeedsTheyFill)
	assert.ElementsMatch(t, ab.BreakdownB.SkillsTheyBring, ba.BreakdownA.SkillsTheyBring)
	assert.ElementsMatch(t, ab.BreakdownB.NeedsTheyFill, ba.BreakdownA.NeedsTheyFill)
}

func TestScoreKnownScenario(t *testing.T) {
	svc := NewCompatibilityService()

	// Fully disjoint skills, shared industry, no profiles: skill=100,
	// overlap=100/3, style=400/6 (similarity axes sit at 100, the two
	// complementarity axes at 0 when both sides are neutral).
	a := Snapshot{UserID: 1, Industry: "Fintech",
		Skills: []model.Skill{{Name: "Go", Category: "Engineering", Proficiency: 5}}}
	b := Snapshot{UserID: 2, Industry: "Fintech",
		Skills: []model.Skill{{Name: "Sales", Category: "Sales", Proficiency: 5}}}

	res := svc.Score(a, b)
	assert.InDelta(t, 73.3, res.Score, 0.05)
	assert.InDelta(t, 100, res.BreakdownA.SkillScore, 0.05)
	assert.InDelta(t, 33.3, res.BreakdownA.OverlapScore, 0.05)
	assert.InDelta(t, 66.7, res.BreakdownA.StyleScore, 0.05)
	assert.Equal(t, []string{"Sales"}, res.BreakdownA.SkillsTheyBring)
	assert.Equal(t, []string{"Go"}, res.BreakdownB.SkillsTheyBring)
	assert.Equal(t, []string{"Fintech"}, res.BreakdownA.SharedDomains)
}

func TestStyleConfidenceWeighting(t *testing.T) {
	// One side without a profile contributes zero signal: its vector sits at
	// the neutral 50, and the other side is pulled toward 50 by its own
	// confidence. With B at 90 everywhere and confidence 0.8, B's adjusted
	// position is 82, so every pairwise distance is 32.
	score, details := styleCompatibility(nil, profileWith(2, 0.8, 90))

	require.Len(t, details, len(model.AllDimensions()))
	for _, d := range details {
		switch dimensionPolicies[d.Dimension] {
		case PolicySimilarity:
			assert.InDelta(t, 68, d.SubScore, 0.05, "dimension %s", d.Dimension)
		case PolicyComplementarity:
			assert.InDelta(t, 64, d.SubScore, 0.05, "dimension %s", d.Dimension)
		}
	}
	assert.InDelta(t, (4*68.0+2*64.0)/6.0, score, 0.05)
}

func TestStylePolicyTable(t *testing.T) {
	// Identical vectors at full confidence: perfect on similarity axes, zero
	// on complementarity axes.
	same, details := styleCompatibility(profileWith(1, 1, 80), profileWith(2, 1, 80))
	assert.InDelta(t, 400.0/6.0, same, 0.05)
	for _, d := range details {
		switch d.Dimension {
		case model.DimensionDecisionStyle, model.DimensionRoleGravity:
			assert.Equal(t, "complementarity", d.Policy)
			assert.InDelta(t, 0, d.SubScore, 0.05)
		default:
			assert.Equal(t, "similarity", d.Policy)
			assert.InDelta(t, 100, d.SubScore, 0.05)
		}
	}

	// 60 points apart: similarity axes score 40, complementarity axes
	// saturate at 100 (full reward from 50 points of separation on).
	apart, _ := styleCompatibility(profileWith(1, 1, 20), profileWith(2, 1, 80))
	assert.InDelta(t, (4*40.0+2*100.0)/6.0, apart, 0.05)
}

func TestSkillComplementarity(t *testing.T) {
	t.Run("disjoint skills score full", func(t *testing.T) {
		a := Snapshot{Skills: []model.Skill{{Name: "Go", Proficiency: 5}}}
		b := Snapshot{Skills: []model.Skill{{Name: "Sales", Proficiency: 5}}}
		score, bringA, bringB := skillComplementarity(a, b)
		assert.InDelta(t, 100, score, 0.05)
		assert.Equal(t, []string{"Sales"}, bringA)
		assert.Equal(t, []string{"Go"}, bringB)
	})

	t.Run("identical skills score zero", func(t *testing.T) {
		a := Snapshot{Skills: []model.Skill{{Name: "Go", Proficiency: 5}}}
		b := Snapshot{Skills: []model.Skill{{Name: "go", Proficiency: 3}}}
		score, bringA, bringB := skillComplementarity(a, b)
		assert.InDelta(t, 0, score, 0.05)
		assert.Empty(t, bringA)
		assert.Empty(t, bringB)
	})

	t.Run("no skills at all", func(t *testing.T) {
		score, _, _ := skillComplementarity(Snapshot{}, Snapshot{})
		assert.Zero(t, score)
	})

	t.Run("role need coverage blends in", func(t *testing.T) {
		a := Snapshot{
			Skills:    []model.Skill{{Name: "Marketing", Proficiency: 5}},
			RoleNeeds: []model.RoleNeed{{Role: "Engineering"}},
		}
		b := Snapshot{Skills: []model.Skill{{Name: "Go", Category: "Engineering", Proficiency: 5}}}
		score, _, _ := skillComplementarity(a, b)
		// ratio 1.0, one need out of one covered: 100*(0.6*1 + 0.4*1).
		assert.InDelta(t, 100, score, 0.05)

		a.RoleNeeds = []model.RoleNeed{{Role: "Design"}}
		score, _, _ = skillComplementarity(a, b)
		// Same skills, need unmet: 100*(0.6*1 + 0.4*0).
		assert.InDelta(t, 60, score, 0.05)
	})
}

func TestSkillWeightOf(t *testing.T) {
	assert.InDelta(t, 0.2, skillWeightOf(model.Skill{Proficiency: 1}), 1e-9)
	assert.InDelta(t, 1.0, skillWeightOf(model.Skill{Proficiency: 5}), 1e-9)
	assert.InDelta(t, 0.2, skillWeightOf(model.Skill{Proficiency: 0}), 1e-9, "clamped up")
	assert.InDelta(t, 1.0, skillWeightOf(model.Skill{Proficiency: 9}), 1e-9, "clamped down")
	assert.InDelta(t, 0.5, skillWeightOf(model.Skill{Proficiency: 2, Verified: true}), 1e-9)
	assert.InDelta(t, 1.0, skillWeightOf(model.Skill{Proficiency: 5, Verified: true}), 1e-9, "bonus capped at 1")
}

func TestNeedsFilled(t *testing.T) {
	a := Snapshot{RoleNeeds: []model.RoleNeed{{Role: "CTO"}, {Role: "Design"}, {Role: "Sales"}}}
	b := Snapshot{Skills: []model.Skill{
		{Name: "CTO", Proficiency: 5},                       // by name
		{Name: "Figma", Category: "Design", Proficiency: 3}, // by category
	}}
	assert.Equal(t, []string{"CTO", "Design"}, needsFilled(a, b))
	assert.Empty(t, needsFilled(b, a))
}

func TestSharedDomains(t *testing.T) {
	a := Snapshot{Industry: "Fintech", Skills: []model.Skill{
		{Name: "Go", Category: "Engineering"},
		{Name: "SQL", Category: "Data"},
	}}
	b := Snapshot{Industry: "fintech", Skills: []model.Skill{
		{Name: "Rust", Category: "engineering"},
	}}

	score, shared := sharedDomains(a, b)
	assert.ElementsMatch(t, []string{"Engineering", "Fintech"}, shared)
	assert.InDelta(t, 200.0/3.0, score, 0.05)

	// Saturates at three shared domains.
	b.Skills = append(b.Skills,
		model.Skill{Name: "Pandas", Category: "Data"},
		model.Skill{Name: "Ads", Category: "Marketing"})
	a.Skills = append(a.Skills, model.Skill{Name: "SEO", Category: "Marketing"})
	score, _ = sharedDomains(a, b)
	assert.InDelta(t, 100, score, 0.05)
}

func TestScoreStaysInRange(t *testing.T) {
	svc := NewCompatibilityService()
	res := svc.Score(Snapshot{}, Snapshot{})
	assert.GreaterOrEqual(t, res.Score, model.MinScore)
	assert.LessOrEqual(t, res.Score, model.MaxScore)
}
