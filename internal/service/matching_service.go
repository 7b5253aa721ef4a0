package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/founderfit/cofounder-api/config"
	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/founderfit/cofounder-api/internal/repository"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MatchingService is the match lifecycle state machine: candidate pool
// selection, scoring, mirrored edge creation and response transitions.
type MatchingService interface {
	RunMatching(userID uint) (*dto.RunMatchingResultDTO, error)
	ListActiveMatches(userID uint) ([]dto.MatchDTO, error)
	Respond(userID uint, matchID string, action string) (*dto.RespondResultDTO, error)
}

type matchingService struct {
	userRepo      repository.UserRepository
	profileRepo   repository.ProfileRepository
	matchRepo     repository.MatchRepository
	compatibility CompatibilityService
	notifier      NotifierService
	cfg           *config.Config
	db            txRunner
}

func NewMatchingService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	compatibility CompatibilityService,
	notifier NotifierService,
	cfg *config.Config,
	db *gorm.DB,
) MatchingService {
	return &matchingService{
		userRepo:      userRepo,
		profileRepo:   profileRepo,
		matchRepo:     matchRepo,
		compatibility: compatibility,
		notifier:      notifier,
		cfg:           cfg,
		db:            db,
	}
}

type scoredCandidate struct {
	user   *model.User
	result ScoreResult
}

// RunMatching scores the requester against every eligible candidate not
// already linked by an active edge, keeps those at or above the threshold,
// caps to the top N and persists the mirrored edge pair for each.
func (s *matchingService) RunMatching(userID uint) (*dto.RunMatchingResultDTO, error) {
	requester, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if !requester.Eligible() {
		return nil, fmt.Errorf("%w: user %d is not eligible for matching", ErrValidation, userID)
	}

	now := time.Now()
	linked, err := s.matchRepo.LinkedUserIDs(userID, now)
	if err != nil {
		return nil, fmt.Errorf("error loading existing matches: %w", err)
	}
	exclude := make([]uint, 0, len(linked)+1)
	exclude = append(exclude, userID)
	for id := range linked {
		exclude = append(exclude, id)
	}

	candidates, err := s.userRepo.FindEligible(exclude)
	if err != nil {
		return nil, fmt.Errorf("error loading candidate pool: %w", err)
	}

	requesterSnap, err := s.snapshot(requester)
	if err != nil {
		return nil, err
	}

	var kept []scoredCandidate
	for i := range candidates {
		candidate := &candidates[i]
		candidateSnap, err := s.snapshot(candidate)
		if err != nil {
			log.Warn().Err(err).Uint("candidateID", candidate.ID).Msg("Skipping candidate, profile load failed")
			continue
		}
		result := s.compatibility.Score(requesterSnap, candidateSnap)
		if result.Score < s.cfg.Matching.Threshold {
			continue
		}
		kept = append(kept, scoredCandidate{user: candidate, result: result})
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].result.Score > kept[j].result.Score })
	if len(kept) > s.cfg.Matching.TopN {
		kept = kept[:s.cfg.Matching.TopN]
	}

	expiresAt := now.AddDate(0, 0, s.cfg.Matching.ExpiryDays)

	type pendingNotify struct {
		candidateID uint
		matchID     string
	}
	var created []model.Match
	var notifyCandidates []pendingNotify

	for _, sc := range kept {
		forward := model.Match{
			ID:          uuid.NewString(),
			UserID:      userID,
			CandidateID: sc.user.ID,
			MatchScore:  sc.result.Score,
			Compatibility: model.Compatibility{
				Score:         sc.result.Score,
				BreakdownUser: sc.result.BreakdownA,
				BreakdownCand: sc.result.BreakdownB,
			},
			Status:    model.MatchStatusSuggested,
			ExpiresAt: &expiresAt,
		}
		mirror := model.Match{
			ID:          uuid.NewString(),
			UserID:      sc.user.ID,
			CandidateID: userID,
			MatchScore:  sc.result.Score,
			Compatibility: model.Compatibility{
				Score:         sc.result.Score,
				BreakdownUser: sc.result.BreakdownB,
				BreakdownCand: sc.result.BreakdownA,
			},
			Status:    model.MatchStatusSuggested,
			ExpiresAt: &expiresAt,
		}

		var forwardCreated, mirrorCreated bool
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var err error
			// Both inserts tolerate a concurrent RunMatching from the other
			// side: the partial unique index swallows duplicates, so neither
			// direction can end up with two active rows. Expired edges are
			// overwritten, not skipped.
			forwardCreated, err = s.matchRepo.CreateIfAbsent(tx, &forward, now)
			if err != nil {
				return fmt.Errorf("failed to create match edge: %w", err)
			}
			mirrorCreated, err = s.matchRepo.CreateIfAbsent(tx, &mirror, now)
			if err != nil {
				return fmt.Errorf("failed to create mirror edge: %w", err)
			}
			return nil
		})
		if err != nil {
			log.Error().Err(err).Uint("userID", userID).Uint("candidateID", sc.user.ID).
				Msg("Match creation transaction failed")
			return nil, err
		}

		if forwardCreated {
			created = append(created, forward)
		}
		if mirrorCreated {
			// Notify only on a genuinely new mirror edge, and only after the
			// transaction committed.
			notifyCandidates = append(notifyCandidates, pendingNotify{candidateID: sc.user.ID, matchID: mirror.ID})
		}
	}

	for _, pn := range notifyCandidates {
		s.notifier.NewMatch(pn.candidateID, pn.matchID)
	}

	log.Info().Uint("userID", userID).Int("candidates", len(candidates)).
		Int("created", len(created)).Msg("Matching run completed")

	out := &dto.RunMatchingResultDTO{Matches: make([]dto.MatchDTO, 0, len(created))}
	for i := range created {
		var m dto.MatchDTO
		if err := copier.Copy(&m, &created[i]); err != nil {
			return nil, fmt.Errorf("error preparing match response: %w", err)
		}
		out.Matches = append(out.Matches, m)
	}
	return out, nil
}

func (s *matchingService) snapshot(user *model.User) (Snapshot, error) {
	profile, err := s.profileRepo.FindByUser(user.ID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("error loading working-style profile: %w", err)
	}
	return Snapshot{
		UserID:    user.ID,
		Industry:  user.Industry,
		Skills:    user.Skills,
		RoleNeeds: user.RoleNeeds,
		Profile:   profile,
	}, nil
}

// ListActiveMatches filters terminal and expired rows at read time; nothing
// is deleted, so history stays queryable.
func (s *matchingService) ListActiveMatches(userID uint) ([]dto.MatchDTO, error) {
	matches, err := s.matchRepo.FindActiveByUser(userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	out := make([]dto.MatchDTO, 0, len(matches))
	for i := range matches {
		var m dto.MatchDTO
		if err := copier.Copy(&m, &matches[i]); err != nil {
			return nil, fmt.Errorf("error preparing match response: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Respond applies a user's interested/rejected answer to their own edge,
// detects mutual interest and cascades rejections, all within a single
// transaction so the two rows of a pair never end up half-transitioned.
func (s *matchingService) Respond(userID uint, matchID string, action string) (*dto.RespondResultDTO, error) {
	status := model.MatchStatus(action)
	if status != model.MatchStatusInterested && status != model.MatchStatusRejected {
		return nil, fmt.Errorf("%w: action must be interested or rejected", ErrValidation)
	}

	match, err := s.matchRepo.FindByID(matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	if match.UserID != userID {
		// Another user's row is indistinguishable from a missing one.
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	now := time.Now()
	if match.Status.IsTerminal() || match.Expired(now) {
		return nil, fmt.Errorf("%w: match %s is no longer open", ErrConflict, matchID)
	}
	if !match.Status.Respondable() {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}

	var (
		mutual     bool
		finalState = status
		interestTo uint
		mutualPair [2]uint
	)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":       status,
			"responded_at": now,
		}
		if match.ViewedAt == nil {
			updates["viewed_at"] = now
		}
		ok, err := s.matchRepo.UpdateStatusIf(tx, match.ID, []model.MatchStatus{model.MatchStatusSuggested, model.MatchStatusViewed}, updates)
		if err != nil {
			return fmt.Errorf("failed to transition match: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: match %s is no longer open", ErrConflict, matchID)
		}

		mirror, err := s.matchRepo.FindActiveMirrorForUpdate(tx, match.UserID, match.CandidateID)
		if err != nil {
			return fmt.Errorf("failed to load mirror edge: %w", err)
		}

		switch status {
		case model.MatchStatusInterested:
			if mirror != nil && mirror.Status == model.MatchStatusInterested {
				// Mutual: both edges promote to accepted as one unit.
				accepted := map[string]interface{}{"status": model.MatchStatusAccepted}
				okOwn, err := s.matchRepo.UpdateStatusIf(tx, match.ID, []model.MatchStatus{model.MatchStatusInterested}, accepted)
				if err != nil {
					return fmt.Errorf("failed to promote match: %w", err)
				}
				okMirror, err := s.matchRepo.UpdateStatusIf(tx, mirror.ID, []model.MatchStatus{model.MatchStatusInterested}, accepted)
				if err != nil {
					return fmt.Errorf("failed to promote mirror: %w", err)
				}
				if !okOwn || !okMirror {
					// Half a promotion must never commit.
					return fmt.Errorf("%w: mutual promotion raced, retry", ErrConflict)
				}
				mutual = true
				finalState = model.MatchStatusAccepted
				mutualPair = [2]uint{match.UserID, match.CandidateID}
			} else if mirror != nil {
				// One-way signal: bump the mirror so it surfaces sooner,
				// without revealing who acted.
				if err := s.matchRepo.TouchViewed(tx, mirror.ID, now); err != nil {
					return fmt.Errorf("failed to bump mirror: %w", err)
				}
				interestTo = match.CandidateID
			}
		case model.MatchStatusRejected:
			if mirror != nil {
				// Cascade only while the other side has not progressed; an
				// interested or accepted mirror keeps its state.
				_, err := s.matchRepo.UpdateStatusIf(tx, mirror.ID,
					[]model.MatchStatus{model.MatchStatusSuggested, model.MatchStatusViewed},
					map[string]interface{}{"status": model.MatchStatusRejected})
				if err != nil {
					return fmt.Errorf("failed to cascade rejection: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("matchID", matchID).Uint("userID", userID).
			Msg("Respond transaction failed")
		return nil, err
	}

	// Notifications go out only after the transaction committed.
	if mutual {
		a, errA := s.userRepo.FindByID(mutualPair[0])
		b, errB := s.userRepo.FindByID(mutualPair[1])
		if errA == nil && errB == nil {
			s.notifier.MutualMatch(a, b)
		} else {
			log.Error().Uint("userA", mutualPair[0]).Uint("userB", mutualPair[1]).
				Msg("Mutual match created but user lookup for notification failed")
		}
	} else if interestTo != 0 {
		s.notifier.Interest(interestTo)
	}

	return &dto.RespondResultDTO{Status: finalState, Mutual: mutual}, nil
}
