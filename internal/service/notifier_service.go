package service

import (
	"fmt"

	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/founderfit/cofounder-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NotifierService creates notification records for the surrounding
// application to deliver. Every call is fire-and-forget: failures are logged
// and never fail the match transaction that triggered them.
type NotifierService interface {
	NewMatch(candidateID uint, matchID string)
	// Interest tells the other side someone is interested without naming the
	// requester: a privacy-preserving one-way signal.
	Interest(userID uint)
	MutualMatch(a, b *model.User)
}

type notifierService struct {
	notificationRepo repository.NotificationRepository
	introService     MatchIntroService
}

func NewNotifierService(notificationRepo repository.NotificationRepository, introService MatchIntroService) NotifierService {
	return &notifierService{notificationRepo: notificationRepo, introService: introService}
}

func (s *notifierService) NewMatch(candidateID uint, matchID string) {
	s.create(&model.Notification{
		UserID:     candidateID,
		Type:       model.NotificationTypeNewMatch,
		Title:      "New co-founder match",
		Content:    "We found a potential co-founder for you. Take a look at their profile.",
		ActionURL:  fmt.Sprintf("/matches/%s", matchID),
		ActionText: "View match",
	})
}

func (s *notifierService) Interest(userID uint) {
	s.create(&model.Notification{
		UserID:     userID,
		Type:       model.NotificationTypeInterest,
		Title:      "Someone is interested in you",
		Content:    "One of your matches marked interest. Respond to find out who.",
		ActionURL:  "/matches",
		ActionText: "See matches",
	})
}

func (s *notifierService) MutualMatch(a, b *model.User) {
	intro := ""
	if s.introService != nil {
		intro = s.introService.MutualIntro(a, b)
	}
	s.mutualFor(a, b, intro)
	s.mutualFor(b, a, intro)
}

func (s *notifierService) mutualFor(recipient, other *model.User, intro string) {
	content := fmt.Sprintf("You and %s are both interested. Start the conversation!", other.Name)
	if intro != "" {
		content = fmt.Sprintf("%s %s", content, intro)
	}
	s.create(&model.Notification{
		UserID:     recipient.ID,
		Type:       model.NotificationTypeMutualMatch,
		Title:      "It's a mutual match!",
		Content:    content,
		ActionURL:  "/matches",
		ActionText: "Say hello",
	})
}

func (s *notifierService) create(n *model.Notification) {
	n.ID = uuid.NewString()
	if err := s.notificationRepo.Create(n); err != nil {
		log.Error().Err(err).Uint("userID", n.UserID).Str("type", n.Type).
			Msg("Failed to create notification record")
	}
}
