package service

import (
	"errors"
	"testing"

	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	notes []model.Notification
	err   error
}

func (r *fakeNotificationRepo) Create(n *model.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.notes = append(r.notes, *n)
	return nil
}

func (r *fakeNotificationRepo) FindByUser(userID uint) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type staticIntro struct{ text string }

func (s staticIntro) MutualIntro(_, _ *model.User) string { return s.text }

func TestNewMatchNotification(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotifierService(repo, staticIntro{})

	svc.NewMatch(7, "match-123")

	require.Len(t, repo.notes, 1)
	n := repo.notes[0]
	assert.Equal(t, uint(7), n.UserID)
	assert.Equal(t, model.NotificationTypeNewMatch, n.Type)
	assert.Equal(t, "/matches/match-123", n.ActionURL)
	assert.NotEmpty(t, n.ID)
}

func TestInterestNotificationStaysAnonymous(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotifierService(repo, staticIntro{})

	svc.Interest(4)

	require.Len(t, repo.notes, 1)
	assert.Equal(t, model.NotificationTypeInterest, repo.notes[0].Type)
	assert.NotContains(t, repo.notes[0].Content, "user", "the interested party is never named")
}

func TestMutualMatchNotifiesBothSides(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotifierService(repo, staticIntro{text: "You both love shipping fast."})

	a := &model.User{ID: 1, Name: "Ada"}
	b := &model.User{ID: 2, Name: "Grace"}
	svc.MutualMatch(a, b)

	require.Len(t, repo.notes, 2)
	forA, _ := repo.FindByUser(1)
	forB, _ := repo.FindByUser(2)
	require.Len(t, forA, 1)
	require.Len(t, forB, 1)
	assert.Equal(t, model.NotificationTypeMutualMatch, forA[0].Type)
	assert.Contains(t, forA[0].Content, "Grace", "each side is told the other's name")
	assert.Contains(t, forB[0].Content, "Ada")
	assert.Contains(t, forA[0].Content, "You both love shipping fast.", "the generated intro rides along")
}

func TestNotifierSwallowsRepositoryErrors(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("connection reset")}
	svc := NewNotifierService(repo, staticIntro{})

	// Must not panic or propagate; notification failures never fail a match.
	svc.NewMatch(1, "m")
	svc.Interest(1)
	svc.MutualMatch(&model.User{ID: 1, Name: "Ada"}, &model.User{ID: 2, Name: "Grace"})
}

func TestIntroWithoutClientIsEmpty(t *testing.T) {
	svc := &matchIntroService{}
	assert.Empty(t, svc.MutualIntro(&model.User{Name: "Ada"}, &model.User{Name: "Grace"}))
}

func TestSkillNames(t *testing.T) {
	assert.Equal(t, "unspecified", skillNames(nil))
	assert.Equal(t, "Go, Sales", skillNames([]model.Skill{{Name: "Go"}, {Name: "Sales"}}))
}
