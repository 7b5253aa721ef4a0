package repository

import (
	"errors"

	"github.com/founderfit/cofounder-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	// Create inserts the session and reports false when the user already has
	// an open session (the idx_open_session partial unique index), so a
	// concurrent start can re-read the winner instead of erroring.
	Create(session *model.AssessmentSession) (bool, error)
	FindByID(id uint) (*model.AssessmentSession, error)
	FindIncompleteByUser(userID uint) (*model.AssessmentSession, error)
	CountByUser(userID uint) (int64, error)
	FindResponses(sessionID uint) ([]model.AssessmentResponse, error)
	SeenQuestionIDs(userID uint) (map[uint]bool, error)
	UpsertResponses(tx *gorm.DB, responses []model.AssessmentResponse) error
	// Complete stamps completedAt and reports false when the session was
	// already closed, so a concurrent double-submit loses cleanly.
	Complete(tx *gorm.DB, session *model.AssessmentSession) (bool, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.AssessmentSession) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:     []clause.Column{{Name: "user_id"}},
		TargetWhere: clause.Where{Exprs: []clause.Expression{gorm.Expr("completed_at IS NULL")}},
		DoNothing:   true,
	}).Create(session)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *sessionRepository) FindByID(id uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	if err := r.db.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindIncompleteByUser returns the user's open session, or nil when every
// session is completed. At most one open session exists per user.
func (r *sessionRepository) FindIncompleteByUser(userID uint) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.Where("user_id = ? AND completed_at IS NULL", userID).
		Order("created_at DESC").First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AssessmentSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *sessionRepository) FindResponses(sessionID uint) ([]model.AssessmentResponse, error) {
	var responses []model.AssessmentResponse
	err := r.db.Where("session_id = ?", sessionID).Order("question_id ASC").Find(&responses).Error
	return responses, err
}

// SeenQuestionIDs returns every question the user has ever been asked, across
// all sessions, so selection can prefer unseen items.
func (r *sessionRepository) SeenQuestionIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&model.AssessmentResponse{}).
		Joins("JOIN assessment_sessions ON assessment_sessions.id = assessment_responses.session_id").
		Where("assessment_sessions.user_id = ?", userID).
		Distinct().Pluck("assessment_responses.question_id", &ids).Error
	if err != nil {
		return nil, err
	}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	return seen, nil
}

// UpsertResponses writes answers keyed on (session_id, question_id), so a
// retried submission overwrites instead of appending duplicates.
func (r *sessionRepository) UpsertResponses(tx *gorm.DB, responses []model.AssessmentResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_option", "response_time_ms", "updated_at",
		}),
	}).Create(&responses).Error
}

func (r *sessionRepository) Complete(tx *gorm.DB, session *model.AssessmentSession) (bool, error) {
	res := tx.Model(&model.AssessmentSession{}).
		Where("id = ? AND completed_at IS NULL", session.ID).
		Update("completed_at", session.CompletedAt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
