package service

import (
	"math"
	"strings"

	"github.com/founderfit/cofounder-api/internal/model"
)

// DimensionPolicy declares whether a working-style axis rewards closeness or
// distance. The policy is an explicit table, never inferred from data.
type DimensionPolicy string

const (
	PolicySimilarity      DimensionPolicy = "similarity"
	PolicyComplementarity DimensionPolicy = "complementarity"
)

// dimensionPolicies: founders benefit from communicating, pacing and handling
// conflict alike, while role gravity (visionary vs executor) and decision
// style work best when the two sides cover different ground.
var dimensionPolicies = map[model.Dimension]DimensionPolicy{
	model.DimensionRiskTolerance:    PolicySimilarity,
	model.DimensionPace:             PolicySimilarity,
	model.DimensionConflictApproach: PolicySimilarity,
	model.DimensionCommunication:    PolicySimilarity,
	model.DimensionDecisionStyle:    PolicyComplementarity,
	model.DimensionRoleGravity:      PolicyComplementarity,
}

// Component weights of the final scalar. A linear blend keeps the score
// commutative and lets each part be unit-tested in isolation.
const (
	skillWeight   = 0.35
	overlapWeight = 0.15
	styleWeight   = 0.50
)

// Snapshot is everything the scorer may look at for one user. Profile may be
// nil: a user with no completed assessment still matches on skills alone.
type Snapshot struct {
	UserID    uint
	Industry  string
	Skills    []model.Skill
	RoleNeeds []model.RoleNeed
	Profile   *model.WorkingStyleProfile
}

// ScoreResult pairs the shared scalar with the two per-perspective
// explanations.
type ScoreResult struct {
	Score      float64
	BreakdownA model.Breakdown
	BreakdownB model.Breakdown
}

// CompatibilityService is the pure bidirectional scorer. Score(a,b) and
// Score(b,a) always produce the same scalar; only the breakdowns swap.
type CompatibilityService interface {
	Score(a, b Snapshot) ScoreResult
}

type compatibilityService struct{}

func NewCompatibilityService() CompatibilityService {
	return &compatibilityService{}
}

func (s *compatibilityService) Score(a, b Snapshot) ScoreResult {
	skillScore, bringA, bringB := skillComplementarity(a, b)
	needsA := needsFilled(a, b)
	needsB := needsFilled(b, a)
	overlapScore, shared := sharedDomains(a, b)
	styleScore, details := styleCompatibility(a.Profile, b.Profile)

	total := skillWeight*skillScore + overlapWeight*overlapScore + styleWeight*styleScore
	total = round1(clampScore(total))

	mk := func(bring, needs []string) model.Breakdown {
		return model.Breakdown{
			SkillsTheyBring: bring,
			NeedsTheyFill:   needs,
			SharedDomains:   shared,
			StyleDetails:    details,
			SkillScore:      round1(skillScore),
			OverlapScore:    round1(overlapScore),
			StyleScore:      round1(styleScore),
		}
	}

	return ScoreResult{
		Score:      total,
		BreakdownA: mk(bringA, needsA),
		BreakdownB: mk(bringB, needsB),
	}
}

// skillWeightOf maps proficiency (1-5) to a 0.2-1.0 mass, with a verified
// bonus capped at 1.
func skillWeightOf(sk model.Skill) float64 {
	p := sk.Proficiency
	if p < 1 {
		p = 1
	}
	if p > 5 {
		p = 5
	}
	w := float64(p) / 5.0
	if sk.Verified {
		w = math.Min(w*1.25, 1.0)
	}
	return w
}

// skillComplementarity rewards each side holding skills the other lacks. It
// also returns the "skills they bring" lists: for a, the skills only b has,
// and vice versa. Shared industry/category overlap is deliberately a separate
// signal (sharedDomains); the two must not be conflated.
func skillComplementarity(a, b Snapshot) (score float64, bringA, bringB []string) {
	massA := make(map[string]float64, len(a.Skills))
	massB := make(map[string]float64, len(b.Skills))
	display := make(map[string]string)
	for _, sk := range a.Skills {
		key := strings.ToLower(sk.Name)
		if w := skillWeightOf(sk); w > massA[key] {
			massA[key] = w
		}
		display[key] = sk.Name
	}
	for _, sk := range b.Skills {
		key := strings.ToLower(sk.Name)
		if w := skillWeightOf(sk); w > massB[key] {
			massB[key] = w
		}
		display[key] = sk.Name
	}

	var unionMass, distinctMass float64
	for key, wa := range massA {
		if wb, both := massB[key]; both {
			unionMass += math.Max(wa, wb)
			continue
		}
		unionMass += wa
		distinctMass += wa
		bringB = append(bringB, display[key])
	}
	for key, wb := range massB {
		if _, both := massA[key]; both {
			continue
		}
		unionMass += wb
		distinctMass += wb
		bringA = append(bringA, display[key])
	}

	if unionMass == 0 {
		return 0, nil, nil
	}
	complementRatio := distinctMass / unionMass

	// Blend in how well each side's stated role needs are covered by the
	// other, symmetrically across both sides.
	totalNeeds := len(a.RoleNeeds) + len(b.RoleNeeds)
	if totalNeeds == 0 {
		return 100 * complementRatio, bringA, bringB
	}
	covered := len(needsFilled(a, b)) + len(needsFilled(b, a))
	coverage := float64(covered) / float64(totalNeeds)
	return 100 * (0.6*complementRatio + 0.4*coverage), bringA, bringB
}

// needsFilled returns which of a's unmet role needs b satisfies, by skill
// name or skill category.
func needsFilled(a, b Snapshot) []string {
	var filled []string
	for _, need := range a.RoleNeeds {
		for _, sk := range b.Skills {
			if strings.EqualFold(need.Role, sk.Name) || strings.EqualFold(need.Role, sk.Category) {
				filled = append(filled, need.Role)
				break
			}
		}
	}
	return filled
}

// sharedDomains scores industry/category overlap: the shared-ground signal,
// separate from complementarity. Saturates at three shared domains.
func sharedDomains(a, b Snapshot) (float64, []string) {
	catsA := make(map[string]string)
	for _, sk := range a.Skills {
		if sk.Category != "" {
			catsA[strings.ToLower(sk.Category)] = sk.Category
		}
	}
	seen := make(map[string]bool)
	var shared []string
	for _, sk := range b.Skills {
		key := strings.ToLower(sk.Category)
		if key == "" || seen[key] {
			continue
		}
		if name, ok := catsA[key]; ok {
			shared = append(shared, name)
			seen[key] = true
		}
	}
	if a.Industry != "" && strings.EqualFold(a.Industry, b.Industry) {
		shared = append(shared, a.Industry)
	}
	score := float64(len(shared)) / 3.0 * 100
	if score > 100 {
		score = 100
	}
	return score, shared
}

// styleCompatibility compares the two working-style vectors after pulling
// each one toward the neutral 50 baseline by its owner's confidence. A user
// with no profile sits exactly at neutral and contributes zero signal, which
// is what scales each side's contribution by its own confidence.
func styleCompatibility(pa, pb *model.WorkingStyleProfile) (float64, []model.StyleDetail) {
	details := make([]model.StyleDetail, 0, len(dimensionPolicies))
	var sum float64
	for _, dim := range model.AllDimensions() {
		da := adjustedScore(pa, dim)
		db := adjustedScore(pb, dim)
		dist := math.Abs(da - db)

		policy := dimensionPolicies[dim]
		var sub float64
		switch policy {
		case PolicyComplementarity:
			// Full reward at 50 points of separation.
			sub = math.Min(2*dist, 100)
		default:
			sub = 100 - dist
		}
		sum += sub
		details = append(details, model.StyleDetail{
			Dimension: dim,
			Policy:    string(policy),
			SubScore:  round1(sub),
		})
	}
	return sum / float64(len(model.AllDimensions())), details
}

func adjustedScore(p *model.WorkingStyleProfile, dim model.Dimension) float64 {
	if p == nil {
		return model.BaselineScore
	}
	raw, ok := p.Scores[dim]
	if !ok {
		return model.BaselineScore
	}
	return model.BaselineScore + p.Confidence*(raw-model.BaselineScore)
}

func clampScore(v float64) float64 {
	if v < model.MinScore {
		return model.MinScore
	}
	if v > model.MaxScore {
		return model.MaxScore
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
