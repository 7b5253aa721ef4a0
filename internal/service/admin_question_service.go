package service

import (
	"fmt"

	"github.com/founderfit/cofounder-api/internal/dto"
	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/founderfit/cofounder-api/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// AdminQuestionService manages the quiz catalog. Questions are append-only:
// created, optionally deactivated, never edited or deleted, so completed
// sessions stay replayable.
type AdminQuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error)
	ListQuestions() ([]dto.AdminQuestionDTO, error)
	DeactivateQuestion(id uint) error
}

type adminQuestionService struct {
	questionRepo repository.QuestionRepository
}

func NewAdminQuestionService(questionRepo repository.QuestionRepository) AdminQuestionService {
	return &adminQuestionService{questionRepo: questionRepo}
}

func (s *adminQuestionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.AdminQuestionDTO, error) {
	if !req.Dimension.IsValid() {
		return nil, fmt.Errorf("%w: unknown dimension %q", ErrValidation, req.Dimension)
	}
	// Delta maps are validated here, once, at the catalog boundary. Scoring
	// trusts whatever is in the catalog from this point on.
	if len(req.OptionADeltas) == 0 || len(req.OptionBDeltas) == 0 {
		return nil, fmt.Errorf("%w: both options need a delta vector", ErrValidation)
	}
	if err := req.OptionADeltas.Validate(); err != nil {
		return nil, fmt.Errorf("%w: option A: %v", ErrValidation, err)
	}
	if err := req.OptionBDeltas.Validate(); err != nil {
		return nil, fmt.Errorf("%w: option B: %v", ErrValidation, err)
	}

	question := model.QuizQuestion{
		Dimension:     req.Dimension,
		OptionAText:   req.OptionAText,
		OptionBText:   req.OptionBText,
		OptionADeltas: req.OptionADeltas,
		OptionBDeltas: req.OptionBDeltas,
		Active:        true,
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("Failed to create quiz question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.AdminQuestionDTO
	if err := copier.Copy(&resp, &question); err != nil {
		return nil, fmt.Errorf("error preparing response: %w", err)
	}
	return &resp, nil
}

func (s *adminQuestionService) ListQuestions() ([]dto.AdminQuestionDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	out := make([]dto.AdminQuestionDTO, 0, len(questions))
	for i := range questions {
		var q dto.AdminQuestionDTO
		if err := copier.Copy(&q, &questions[i]); err != nil {
			log.Error().Err(err).Uint("questionID", questions[i].ID).Msg("Error copying question to DTO")
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *adminQuestionService) DeactivateQuestion(id uint) error {
	if err := s.questionRepo.Deactivate(id); err != nil {
		return fmt.Errorf("%w: question %d", ErrNotFound, id)
	}
	return nil
}
