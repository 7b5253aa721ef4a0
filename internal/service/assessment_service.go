package service

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/founderfit/cofounder-api/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	// QuestionsPerSession is the target session length; smaller banks yield
	// shorter sessions.
	QuestionsPerSession = 20

	firstRefreshMonths = 3
	laterRefreshMonths = 6
)

// AssessmentService is the working-style estimator: session creation/resume,
// scoring and the profile blend.
type AssessmentService interface {
	StartOrResume(userID uint) (*dto.AssessmentSessionDTO, error)
	Submit(userID, sessionID uint, req dto.SubmitAssessmentDTO) (*dto.WorkingStyleProfileDTO, error)
	GetProfile(userID uint) (*dto.WorkingStyleProfileDTO, error)
}

type assessmentService struct {
	questionRepo repository.QuestionRepository
	sessionRepo  repository.SessionRepository
	profileRepo  repository.ProfileRepository
	db           txRunner

	// rng is injected so tests can seed it; selection never touches the
	// ambient global rand state.
	rng *rand.Rand
	mu  sync.Mutex
}

func NewAssessmentService(
	questionRepo repository.QuestionRepository,
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	db *gorm.DB,
	rng *rand.Rand,
) AssessmentService {
	return &assessmentService{
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		profileRepo:  profileRepo,
		db:           db,
		rng:          rng,
	}
}

// StartOrResume returns the user's open session untouched when one exists
// (sessions are resumable, never regenerated) and otherwise selects a fresh
// balanced question set and persists it.
func (s *assessmentService) StartOrResume(userID uint) (*dto.AssessmentSessionDTO, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	existing, err := s.sessionRepo.FindIncompleteByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error looking up open session: %w", err)
	}
	if existing != nil {
		return s.buildSessionDTO(existing, true)
	}

	active, err := s.questionRepo.FindActive()
	if err != nil {
		return nil, fmt.Errorf("error loading question catalog: %w", err)
	}
	if len(active) == 0 {
		return nil, ErrNoQuestions
	}

	seen, err := s.sessionRepo.SeenQuestionIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("error loading seen questions: %w", err)
	}

	selected := s.selectQuestions(active, seen)

	count, err := s.sessionRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error counting sessions: %w", err)
	}

	session := &model.AssessmentSession{
		UserID:      userID,
		QuestionIDs: selected,
		Version:     int(count) + 1,
	}
	created, err := s.sessionRepo.Create(session)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	if !created {
		// A concurrent start won the open-session slot; resume its session.
		winner, err := s.sessionRepo.FindIncompleteByUser(userID)
		if err != nil {
			return nil, fmt.Errorf("error looking up open session: %w", err)
		}
		if winner == nil {
			return nil, fmt.Errorf("%w: concurrent session creation, retry", ErrConflict)
		}
		return s.buildSessionDTO(winner, true)
	}
	log.Info().Uint("userID", userID).Uint("sessionID", session.ID).
		Int("questions", len(selected)).Msg("Created assessment session")

	return s.buildSessionDTO(session, false)
}

// selectQuestions picks a balanced subset: a per-dimension floor preferring
// unseen questions, remainder slots from any leftover pool, and a final
// shuffle so dimensions are not contiguous in the quiz.
func (s *assessmentService) selectQuestions(active []model.QuizQuestion, seen map[uint]bool) model.QuestionIDList {
	if len(active) <= QuestionsPerSession {
		ids := make(model.QuestionIDList, 0, len(active))
		for _, q := range active {
			ids = append(ids, q.ID)
		}
		s.shuffle(ids)
		return ids
	}

	groups := make(map[model.Dimension][]uint)
	for _, q := range active {
		groups[q.Dimension] = append(groups[q.Dimension], q.ID)
	}

	perDim := QuestionsPerSession / len(groups)

	selected := make(model.QuestionIDList, 0, QuestionsPerSession)
	chosen := make(map[uint]bool, QuestionsPerSession)

	for _, dim := range model.AllDimensions() {
		pool := groups[dim]
		if len(pool) == 0 {
			continue
		}
		unseen := filterUnseen(pool, seen)
		// Prefer unseen questions; fall back to the full per-dimension pool
		// when the user has already seen most of it.
		source := pool
		if len(unseen) >= perDim {
			source = unseen
		}
		for _, id := range s.sample(source, perDim) {
			selected = append(selected, id)
			chosen[id] = true
		}
	}

	// Fill whatever the floor loop left open from any not-yet-selected
	// question, unseen first. The budget is recomputed here because a skewed
	// bank (a dimension with fewer than perDim questions) leaves more open
	// slots than the nominal remainder.
	remainder := QuestionsPerSession - len(selected)
	var leftUnseen, leftSeen []uint
	for _, q := range active {
		if chosen[q.ID] {
			continue
		}
		if seen[q.ID] {
			leftSeen = append(leftSeen, q.ID)
		} else {
			leftUnseen = append(leftUnseen, q.ID)
		}
	}
	s.shuffle(leftUnseen)
	s.shuffle(leftSeen)
	for _, id := range append(leftUnseen, leftSeen...) {
		if remainder == 0 {
			break
		}
		selected = append(selected, id)
		chosen[id] = true
		remainder--
	}

	s.shuffle(selected)
	return selected
}

func filterUnseen(pool []uint, seen map[uint]bool) []uint {
	var unseen []uint
	for _, id := range pool {
		if !seen[id] {
			unseen = append(unseen, id)
		}
	}
	return unseen
}

func (s *assessmentService) sample(pool []uint, n int) []uint {
	cp := make([]uint, len(pool))
	copy(cp, pool)
	s.shuffle(cp)
	if n > len(cp) {
		n = len(cp)
	}
	return cp[:n]
}

func (s *assessmentService) shuffle(ids []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}

func (s *assessmentService) buildSessionDTO(session *model.AssessmentSession, resumed bool) (*dto.AssessmentSessionDTO, error) {
	questions, err := s.questionRepo.FindByIDs(session.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading session questions: %w", err)
	}
	byID := make(map[uint]model.QuizQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	out := &dto.AssessmentSessionDTO{
		SessionID: session.ID,
		Version:   session.Version,
		Resumed:   resumed,
	}
	// Preserve the session's fixed ordering, not the repository's.
	for _, id := range session.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			log.Warn().Uint("questionID", id).Uint("sessionID", session.ID).
				Msg("Session references a question missing from the catalog, skipping")
			continue
		}
		out.Questions = append(out.Questions, dto.QuestionDTO{
			ID:          q.ID,
			Dimension:   q.Dimension,
			OptionAText: q.OptionAText,
			OptionBText: q.OptionBText,
		})
	}

	if resumed {
		responses, err := s.sessionRepo.FindResponses(session.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading collected responses: %w", err)
		}
		for _, r := range responses {
			out.ExistingResponses = append(out.ExistingResponses, dto.ResponseDTO{
				QuestionID:     r.QuestionID,
				SelectedOption: r.SelectedOption,
				ResponseTimeMs: r.ResponseTimeMs,
			})
		}
	}
	return out, nil
}

// Submit validates ownership, scores the session and blends the result into
// the user's profile. Responses, session completion and the profile upsert
// commit in one transaction: a partial responses-saved-but-no-profile state
// is never left behind.
func (s *assessmentService) Submit(userID, sessionID uint, req dto.SubmitAssessmentDTO) (*dto.WorkingStyleProfileDTO, error) {
	if len(req.Responses) == 0 {
		return nil, fmt.Errorf("%w: submission must contain at least one response", ErrValidation)
	}

	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}
	if session.UserID != userID {
		// Sessions of other users are reported as missing, not forbidden.
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, sessionID)
	}
	if session.Completed() {
		return nil, fmt.Errorf("%w: session %d is already completed", ErrConflict, sessionID)
	}

	inSession := make(map[uint]bool, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		inSession[id] = true
	}

	responses := make([]model.AssessmentResponse, 0, len(req.Responses))
	for _, r := range req.Responses {
		if !r.SelectedOption.IsValid() {
			return nil, fmt.Errorf("%w: selected option must be A or B", ErrValidation)
		}
		if !inSession[r.QuestionID] {
			log.Warn().Uint("questionID", r.QuestionID).Uint("sessionID", sessionID).
				Msg("Response for a question outside the session, skipping")
			continue
		}
		responses = append(responses, model.AssessmentResponse{
			SessionID:      sessionID,
			QuestionID:     r.QuestionID,
			SelectedOption: r.SelectedOption,
			ResponseTimeMs: r.ResponseTimeMs,
		})
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("%w: no responses matched the session's questions", ErrValidation)
	}

	questions, err := s.questionRepo.FindByIDs(session.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading session questions: %w", err)
	}
	sessionScore := scoreSession(questions, responses)

	existing, err := s.profileRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	now := time.Now()
	profile := blendProfile(existing, sessionScore, userID, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.sessionRepo.UpsertResponses(tx, responses); err != nil {
			return fmt.Errorf("failed to save responses: %w", err)
		}
		session.CompletedAt = &now
		done, err := s.sessionRepo.Complete(tx, session)
		if err != nil {
			return fmt.Errorf("failed to complete session: %w", err)
		}
		if !done {
			return fmt.Errorf("%w: session %d is already completed", ErrConflict, sessionID)
		}
		if err := s.profileRepo.Upsert(tx, profile); err != nil {
			return fmt.Errorf("failed to update working-style profile: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Assessment submit transaction failed")
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("sessionID", sessionID).
		Float64("confidence", profile.Confidence).Int("sessions", profile.SessionsCount).
		Msg("Assessment completed and profile blended")

	return profileDTO(profile), nil
}

func (s *assessmentService) GetProfile(userID uint) (*dto.WorkingStyleProfileDTO, error) {
	profile, err := s.profileRepo.FindByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: no working-style profile for user %d", ErrNotFound, userID)
	}
	return profileDTO(profile), nil
}

// scoreSession accumulates the option delta vectors of every response on top
// of the 50 baseline. A malformed catalog entry is skipped rather than
// failing the whole session.
func scoreSession(questions []model.QuizQuestion, responses []model.AssessmentResponse) model.DeltaMap {
	byID := make(map[uint]model.QuizQuestion, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	sums := make(map[model.Dimension]float64)
	for _, r := range responses {
		q, ok := byID[r.QuestionID]
		if !ok {
			continue
		}
		deltas := q.DeltasFor(r.SelectedOption)
		if deltas == nil {
			log.Warn().Uint("questionID", q.ID).Msg("Question has no delta vector for the chosen option, skipping")
			continue
		}
		for dim, delta := range deltas {
			if !dim.IsValid() {
				continue
			}
			sums[dim] += delta
		}
	}

	score := make(model.DeltaMap, len(model.AllDimensions()))
	for _, dim := range model.AllDimensions() {
		score[dim] = clampScore(model.BaselineScore + sums[dim])
	}
	return score
}

// blendProfile folds one session score into the running profile as an online
// weighted mean: after N sessions the profile equals the plain average of the
// N raw session scores, so a single wild session fades as more accumulate.
func blendProfile(existing *model.WorkingStyleProfile, sessionScore model.DeltaMap, userID uint, now time.Time) *model.WorkingStyleProfile {
	count := 1
	if existing != nil {
		count = existing.SessionsCount + 1
	}
	oldWeight := float64(count-1) / float64(count)
	newWeight := 1.0 / float64(count)

	blended := make(model.DeltaMap, len(model.AllDimensions()))
	for _, dim := range model.AllDimensions() {
		prev := model.BaselineScore
		if existing != nil {
			if v, ok := existing.Scores[dim]; ok {
				prev = v
			}
		}
		v := prev*oldWeight + sessionScore[dim]*newWeight
		blended[dim] = math.Round(clampScore(v)*10) / 10
	}

	refreshMonths := laterRefreshMonths
	if existing == nil {
		refreshMonths = firstRefreshMonths
	}

	return &model.WorkingStyleProfile{
		UserID:         userID,
		Scores:         blended,
		Confidence:     float64(count) / float64(count+1),
		SessionsCount:  count,
		LastAssessedAt: now,
		NextRefreshAt:  now.AddDate(0, refreshMonths, 0),
	}
}

func profileDTO(p *model.WorkingStyleProfile) *dto.WorkingStyleProfileDTO {
	return &dto.WorkingStyleProfileDTO{
		UserID:         p.UserID,
		Scores:         p.Scores,
		Confidence:     p.Confidence,
		SessionsCount:  p.SessionsCount,
		LastAssessedAt: p.LastAssessedAt,
		NextRefreshAt:  p.NextRefreshAt,
	}
}
