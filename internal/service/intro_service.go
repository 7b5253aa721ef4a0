package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/founderfit/cofounder-api/config"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// MatchIntroService writes the one-line intro blurb attached to mutual-match
// notifications. Without an API key it degrades to an empty string and the
// notifier falls back to static copy.
type MatchIntroService interface {
	MutualIntro(a, b *model.User) string
}

type matchIntroService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewMatchIntroService(cfg *config.Config) (MatchIntroService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Mutual-match intros will use static copy.")
		return &matchIntroService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &matchIntroService{client: model, cfg: cfg}, nil
}

func (s *matchIntroService) MutualIntro(a, b *model.User) string {
	if s.client == nil || a == nil || b == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prompt := fmt.Sprintf(
		"Write one short, friendly sentence introducing two potential startup co-founders to each other. "+
			"Person 1: %s, skills: %s. Person 2: %s, skills: %s. "+
			"No names of companies, no emojis, maximum 25 words.",
		a.Name, skillNames(a.Skills), b.Name, skillNames(b.Skills),
	)

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Warn().Err(err).Msg("Gemini intro generation failed, using static copy")
		return ""
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}

func skillNames(skills []model.Skill) string {
	if len(skills) == 0 {
		return "unspecified"
	}
	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}
	return strings.Join(names, ", ")
}
