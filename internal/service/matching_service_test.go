package service

import (
	"sort"
	"testing"
	"time"

	"github.com/founderfit/cofounder-api/config"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uint]*model.User
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindEligible(excludeIDs []uint) ([]model.User, error) {
	excluded := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var ids []uint
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []model.User
	for _, id := range ids {
		u := r.users[id]
		if !excluded[id] && u.Eligible() {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeMatchRepo struct {
	rows map[string]*model.Match
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{rows: make(map[string]*model.Match)}
}

func (r *fakeMatchRepo) activeEdge(userID, candidateID uint) *model.Match {
	for _, m := range r.rows {
		if m.UserID != userID || m.CandidateID != candidateID {
			continue
		}
		for _, s := range model.ActiveStatuses() {
			if m.Status == s {
				return m
			}
		}
	}
	return nil
}

func (r *fakeMatchRepo) CreateIfAbsent(_ *gorm.DB, match *model.Match, now time.Time) (bool, error) {
	if existing := r.activeEdge(match.UserID, match.CandidateID); existing != nil {
		if !existing.Expired(now) {
			return false, nil
		}
		// An expired edge gives way to the fresh suggestion.
		delete(r.rows, existing.ID)
	}
	cp := *match
	r.rows[match.ID] = &cp
	return true, nil
}

func (r *fakeMatchRepo) FindByID(id string) (*model.Match, error) {
	m, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) FindActiveMirror(userID, candidateID uint) (*model.Match, error) {
	if m := r.activeEdge(candidateID, userID); m != nil {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMatchRepo) FindActiveMirrorForUpdate(_ *gorm.DB, userID, candidateID uint) (*model.Match, error) {
	return r.FindActiveMirror(userID, candidateID)
}

func (r *fakeMatchRepo) FindActiveByUser(userID uint, now time.Time) ([]model.Match, error) {
	var out []model.Match
	for _, m := range r.rows {
		if m.UserID != userID || m.Expired(now) {
			continue
		}
		for _, s := range model.ActiveStatuses() {
			if m.Status == s {
				out = append(out, *m)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	return out, nil
}

func (r *fakeMatchRepo) LinkedUserIDs(userID uint, now time.Time) (map[uint]bool, error) {
	linked := make(map[uint]bool)
	for _, m := range r.rows {
		active := false
		for _, s := range model.ActiveStatuses() {
			if m.Status == s {
				active = true
				break
			}
		}
		if !active || m.Expired(now) {
			continue
		}
		if m.UserID == userID {
			linked[m.CandidateID] = true
		}
		if m.CandidateID == userID {
			linked[m.UserID] = true
		}
	}
	return linked, nil
}

func (r *fakeMatchRepo) UpdateStatusIf(_ *gorm.DB, matchID string, expected []model.MatchStatus, updates map[string]interface{}) (bool, error) {
	row, ok := r.rows[matchID]
	if !ok {
		return false, nil
	}
	allowed := false
	for _, s := range expected {
		if row.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, nil
	}
	for key, value := range updates {
		switch key {
		case "status":
			row.Status = value.(model.MatchStatus)
		case "responded_at":
			at := value.(time.Time)
			row.RespondedAt = &at
		case "viewed_at":
			at := value.(time.Time)
			row.ViewedAt = &at
		}
	}
	return true, nil
}

func (r *fakeMatchRepo) TouchViewed(_ *gorm.DB, matchID string, at time.Time) error {
	if row, ok := r.rows[matchID]; ok {
		row.ViewedAt = &at
	}
	return nil
}

type newMatchNote struct {
	candidateID uint
	matchID     string
}

type recorderNotifier struct {
	newMatches []newMatchNote
	interests  []uint
	mutuals    [][2]uint
}

func (r *recorderNotifier) NewMatch(candidateID uint, matchID string) {
	r.newMatches = append(r.newMatches, newMatchNote{candidateID: candidateID, matchID: matchID})
}

func (r *recorderNotifier) Interest(userID uint) {
	r.interests = append(r.interests, userID)
}

func (r *recorderNotifier) MutualMatch(a, b *model.User) {
	r.mutuals = append(r.mutuals, [2]uint{a.ID, b.ID})
}

func eligibleUser(id uint, industry string, skills ...model.Skill) *model.User {
	return &model.User{ID: id, Name: "user", Onboarded: true, Active: true, Industry: industry, Skills: skills}
}

type matchingFixture struct {
	svc      *matchingService
	users    *fakeUserRepo
	matches  *fakeMatchRepo
	notifier *recorderNotifier
	cfg      *config.Config
}

func newMatchingFixture(users map[uint]*model.User) *matchingFixture {
	f := &matchingFixture{
		users:    &fakeUserRepo{users: users},
		matches:  newFakeMatchRepo(),
		notifier: &recorderNotifier{},
		cfg: &config.Config{Matching: config.Matching{
			Threshold:  60,
			TopN:       20,
			ExpiryDays: 14,
		}},
	}
	f.svc = &matchingService{
		userRepo:      f.users,
		profileRepo:   newFakeProfileRepo(),
		matchRepo:     f.matches,
		compatibility: NewCompatibilityService(),
		notifier:      f.notifier,
		cfg:           f.cfg,
		db:            stubTx{},
	}
	return f
}

func TestRunMatchingCreatesMirroredPairs(t *testing.T) {
	f := newMatchingFixture(map[uint]*model.User{
		1: eligibleUser(1, "Fintech", model.Skill{Name: "Go", Category: "Engineering", Proficiency: 5}),
		2: eligibleUser(2, "Fintech", model.Skill{Name: "Sales", Category: "Sales", Proficiency: 5}),
		// Same skills as the requester and no shared industry: lands below
		// the threshold and must be filtered out.
		3: eligibleUser(3, "", model.Skill{Name: "Go", Category: "Engineering", Proficiency: 5}),
	})

	res, err := f.svc.RunMatching(1)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1)
	assert.Equal(t, uint(2), res.Matches[0].CandidateID)

	require.Len(t, f.matches.rows, 2, "every kept candidate gets exactly one mirrored pair")
	forward := f.matches.activeEdge(1, 2)
	mirror := f.matches.activeEdge(2, 1)
	require.NotNil(t, forward)
	require.NotNil(t, mirror)
	assert.Equal(t, forward.MatchScore, mirror.MatchScore, "the scalar is shared across the pair")
	assert.Equal(t, model.MatchStatusSuggested, forward.Status)
	assert.Equal(t, model.MatchStatusSuggested, mirror.Status)
	require.NotNil(t, forward.ExpiresAt)
	require.NotNil(t, mirror.ExpiresAt)

	// The candidate's own perspective lives on the mirror row.
	assert.Equal(t, forward.Compatibility.BreakdownUser, mirror.Compatibility.BreakdownCand)
	assert.Equal(t, forward.Compatibility.BreakdownCand, mirror.Compatibility.BreakdownUser)

	require.Len(t, f.notifier.newMatches, 1)
	assert.Equal(t, uint(2), f.notifier.newMatches[0].candidateID)
	assert.Equal(t, mirror.ID, f.notifier.newMatches[0].matchID, "the notification points at the candidate's row, not the requester's")
}

func TestRunMatchingSkipsAlreadyLinked(t *testing.T) {
	f := newMatchingFixture(map[uint]*model.User{
		1: eligibleUser(1, "Fintech", model.Skill{Name: "Go", Category: "Engineering", Proficiency: 5}),
		2: eligibleUser(2, "Fintech", model.Skill{Name: "Sales", Category: "Sales", Proficiency: 5}),
	})

	first, err := f.svc.RunMatching(1)
	require.NoError(t, err)
	require.Len(t, first.Matches, 1)

	second, err := f.svc.RunMatching(1)
	require.NoError(t, err)
	assert.Empty(t, second.Matches, "an actively linked pair is never re-suggested")
	assert.Len(t, f.matches.rows, 2)
	assert.Len(t, f.notifier.newMatches, 1)
}

func TestRunMatchingRevivesExpiredPair(t *testing.T) {
	f := newMatchingFixture(map[uint]*model.User{
		1: eligibleUser(1, "Fintech", model.Skill{Name: "Go", Category: "Engineering", Proficiency: 5}),
		2: eligibleUser(2, "Fintech", model.Skill{Name: "Sales", Category: "Sales", Proficiency: 5}),
	})

	// A suggested pair that ran out, as if neither side ever responded.
	past := time.Now().Add(-time.Hour)
	seedPair(f, "old1", "old2", 1, 2)
	f.matches.rows["old1"].ExpiresAt = &past
	f.matches.rows["old2"].ExpiresAt = &past

	res, err := f.svc.RunMatching(1)
	require.NoError(t, err)
	require.Len(t, res.Matches, 1, "an expired pair must not block the users from each other's pools")
	assert.Equal(t, uint(2), res.Matches[0].CandidateID)

	require.Len(t, f.matches.rows, 2, "the stale rows are replaced, not duplicated")
	forward := f.matches.activeEdge(1, 2)
	mirror := f.matches.activeEdge(2, 1)
	require.NotNil(t, forward)
	require.NotNil(t, mirror)
	assert.NotEqual(t, "old1", forward.ID)
	require.NotNil(t, forward.ExpiresAt)
	assert.True(t, forward.ExpiresAt.After(time.Now()), "the revived suggestion gets a fresh expiry")
	require.Len(t, f.notifier.newMatches, 1)
	assert.Equal(t, mirror.ID, f.notifier.newMatches[0].matchID)
}

func TestRunMatchingHonorsTopN(t *testing.T) {
	f := newMatchingFixture(map[uint]*model.User{
		1: eligibleUser(1, "Fintech", model.Skill{Name: "Go", Category: "Engineering", Proficiency: 5}),
		2: eligibleUser(2, "Fintech", model.Skill{Name: "Sales", Category: "Sales", Proficiency: 5}),
		4: eligibleUser(4, "Fintech", model.Skill{Name: "Marketing", Category: "Marketing", Proficiency: 5}),
	})
	f.cfg.Matching.TopN = 1

	res, err := f.svc.RunMatching(1)
	require.NoError(t, err)
	assert.Len(t, res.Matches, 1)
	assert.Len(t, f.matches.rows, 2)
}

func TestRunMatchingGuards(t *testing.T) {
	f := newMatchingFixture(map[uint]*model.User{
		5: {ID: 5, Name: "not onboarded", Active: true},
	})

	_, err := f.svc.RunMatching(99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.RunMatching(5)
	assert.ErrorIs(t, err, ErrValidation)
}

// seedPair installs the two directed rows of a suggested pair, the way
// RunMatching would have left them.
func seedPair(f *matchingFixture, idA, idB string, userA, userB uint) {
	f.matches.rows[idA] = &model.Match{ID: idA, UserID: userA, CandidateID: userB, MatchScore: 75, Status: model.MatchStatusSuggested}
	f.matches.rows[idB] = &model.Match{ID: idB, UserID: userB, CandidateID: userA, MatchScore: 75, Status: model.MatchStatusSuggested}
}

func respondFixture() *matchingFixture {
	return newMatchingFixture(map[uint]*model.User{
		1: eligibleUser(1, "Fintech"),
		2: eligibleUser(2, "Fintech"),
	})
}

func TestRespondMutualInterest(t *testing.T) {
	f := respondFixture()
	seedPair(f, "m1", "m2", 1, 2)

	res, err := f.svc.Respond(1, "m1", "interested")
	require.NoError(t, err)
	assert.Equal(t, model.MatchStatusInterested, res.Status)
	assert.False(t, res.Mutual)

	assert.Equal(t, model.MatchStatusInterested, f.matches.rows["m1"].Status)
	assert.NotNil(t, f.matches.rows["m1"].RespondedAt)
	assert.NotNil(t, f.matches.rows["m1"].ViewedAt)
	assert.NotNil(t, f.matches.rows["m2"].ViewedAt, "one-way interest bumps the mirror")
	assert.Equal(t, model.MatchStatusSuggested, f.matches.rows["m2"].Status)
	assert.Equal(t, []uint{2}, f.notifier.interests)

	res, err = f.svc.Respond(2, "m2", "interested")
	require.NoError(t, err)
	assert.Equal(t, model.MatchStatusAccepted, res.Status)
	assert.True(t, res.Mutual)

	assert.Equal(t, model.MatchStatusAccepted, f.matches.rows["m1"].Status)
	assert.Equal(t, model.MatchStatusAccepted, f.matches.rows["m2"].Status)
	require.Len(t, f.notifier.mutuals, 1)
	assert.ElementsMatch(t, []uint{1, 2}, f.notifier.mutuals[0][:])
}

func TestRespondRejectionCascades(t *testing.T) {
	f := respondFixture()
	seedPair(f, "m1", "m2", 1, 2)

	res, err := f.svc.Respond(1, "m1", "rejected")
	require.NoError(t, err)
	assert.Equal(t, model.MatchStatusRejected, res.Status)
	assert.False(t, res.Mutual)

	assert.Equal(t, model.MatchStatusRejected, f.matches.rows["m1"].Status)
	assert.Equal(t, model.MatchStatusRejected, f.matches.rows["m2"].Status, "an untouched mirror follows the rejection")
	assert.Empty(t, f.notifier.interests)
	assert.Empty(t, f.notifier.mutuals)
}

func TestRespondRejectionSparesProgressedMirror(t *testing.T) {
	f := respondFixture()
	seedPair(f, "m1", "m2", 1, 2)
	f.matches.rows["m2"].Status = model.MatchStatusInterested

	_, err := f.svc.Respond(1, "m1", "rejected")
	require.NoError(t, err)

	assert.Equal(t, model.MatchStatusRejected, f.matches.rows["m1"].Status)
	assert.Equal(t, model.MatchStatusInterested, f.matches.rows["m2"].Status,
		"a mirror that already progressed keeps its state")
}

func TestRespondGuards(t *testing.T) {
	f := respondFixture()
	seedPair(f, "m1", "m2", 1, 2)

	t.Run("invalid action", func(t *testing.T) {
		_, err := f.svc.Respond(1, "m1", "maybe")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := f.svc.Respond(1, "nope", "interested")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("someone else's row looks missing", func(t *testing.T) {
		_, err := f.svc.Respond(2, "m1", "interested")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("terminal row", func(t *testing.T) {
		f.matches.rows["m1"].Status = model.MatchStatusRejected
		defer func() { f.matches.rows["m1"].Status = model.MatchStatusSuggested }()
		_, err := f.svc.Respond(1, "m1", "interested")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("expired row", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		f.matches.rows["m1"].ExpiresAt = &past
		defer func() { f.matches.rows["m1"].ExpiresAt = nil }()
		_, err := f.svc.Respond(1, "m1", "interested")
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("already interested row cannot respond again", func(t *testing.T) {
		f.matches.rows["m1"].Status = model.MatchStatusInterested
		defer func() { f.matches.rows["m1"].Status = model.MatchStatusSuggested }()
		_, err := f.svc.Respond(1, "m1", "rejected")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestListActiveMatchesFiltersAndSorts(t *testing.T) {
	f := respondFixture()
	past := time.Now().Add(-time.Hour)
	f.matches.rows["a"] = &model.Match{ID: "a", UserID: 1, CandidateID: 2, MatchScore: 80, Status: model.MatchStatusSuggested}
	f.matches.rows["b"] = &model.Match{ID: "b", UserID: 1, CandidateID: 3, MatchScore: 90, Status: model.MatchStatusAccepted}
	f.matches.rows["c"] = &model.Match{ID: "c", UserID: 1, CandidateID: 4, MatchScore: 99, Status: model.MatchStatusRejected}
	f.matches.rows["d"] = &model.Match{ID: "d", UserID: 1, CandidateID: 5, MatchScore: 95, Status: model.MatchStatusSuggested, ExpiresAt: &past}
	f.matches.rows["e"] = &model.Match{ID: "e", UserID: 2, CandidateID: 1, MatchScore: 70, Status: model.MatchStatusSuggested}

	got, err := f.svc.ListActiveMatches(1)
	require.NoError(t, err)
	require.Len(t, got, 2, "terminal, expired and foreign rows are filtered")
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}
