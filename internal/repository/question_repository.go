package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/founderfit/cofounder-api/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	activeQuestionsCacheKey = "catalog:questions:active"
	activeQuestionsCacheTTL = 5 * time.Minute
)

type QuestionRepository interface {
	Create(question *model.QuizQuestion) error
	FindByID(id uint) (*model.QuizQuestion, error)
	FindByIDs(ids []uint) ([]model.QuizQuestion, error)
	FindAll() ([]model.QuizQuestion, error)
	FindActive() ([]model.QuizQuestion, error)
	Deactivate(id uint) error
}

type questionRepository struct {
	db    *gorm.DB
	cache *redis.Client // nil disables caching
}

func NewQuestionRepository(db *gorm.DB, cache *redis.Client) QuestionRepository {
	return &questionRepository{db: db, cache: cache}
}

func (r *questionRepository) Create(question *model.QuizQuestion) error {
	if err := r.db.Create(question).Error; err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

func (r *questionRepository) FindByID(id uint) (*model.QuizQuestion, error) {
	var question model.QuizQuestion
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByIDs(ids []uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if len(ids) == 0 {
		return questions, nil
	}
	// Intentionally not filtered on Active: completed and resumed sessions
	// must keep serving questions that were deactivated after selection.
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindAll() ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	if err := r.db.Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// FindActive returns the selectable catalog. The list is read on every
// session start and changes only on admin writes, so it is cached in redis
// with a short TTL when a client is configured.
func (r *questionRepository) FindActive() ([]model.QuizQuestion, error) {
	if cached, ok := r.readCache(); ok {
		return cached, nil
	}

	var questions []model.QuizQuestion
	if err := r.db.Where("active = ?", true).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	r.writeCache(questions)
	return questions, nil
}

func (r *questionRepository) Deactivate(id uint) error {
	res := r.db.Model(&model.QuizQuestion{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateCache()
	return nil
}

func (r *questionRepository) readCache() ([]model.QuizQuestion, bool) {
	if r.cache == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := r.cache.Get(ctx, activeQuestionsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Question cache read failed, falling back to database")
		}
		return nil, false
	}
	var questions []model.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		log.Warn().Err(err).Msg("Question cache entry corrupt, dropping it")
		r.invalidateCache()
		return nil, false
	}
	return questions, true
}

func (r *questionRepository) writeCache(questions []model.QuizQuestion) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.cache.Set(ctx, activeQuestionsCacheKey, raw, activeQuestionsCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("Question cache write failed")
	}
}

func (r *questionRepository) invalidateCache() {
	if r.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := r.cache.Del(ctx, activeQuestionsCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("Question cache invalidation failed")
	}
}
