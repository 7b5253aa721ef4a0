package repository

import (
	"errors"

	"github.com/founderfit/cofounder-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	FindByUser(userID uint) (*model.WorkingStyleProfile, error)
	Upsert(tx *gorm.DB, profile *model.WorkingStyleProfile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUser returns nil without error when the user has never completed an
// assessment; callers treat the absent profile as a neutral vector.
func (r *profileRepository) FindByUser(userID uint) (*model.WorkingStyleProfile, error) {
	var profile model.WorkingStyleProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert writes the blended profile keyed on user_id. Only the estimator's
// blend step goes through here.
func (r *profileRepository) Upsert(tx *gorm.DB, profile *model.WorkingStyleProfile) error {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"scores", "confidence", "sessions_count", "last_assessed_at", "next_refresh_at", "updated_at",
		}),
	}).Create(profile).Error
}
