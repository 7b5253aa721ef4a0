package repository

import (
	"github.com/founderfit/cofounder-api/internal/model"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(id uint) (*model.User, error)
	FindEligible(excludeIDs []uint) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.Preload("Skills").Preload("RoleNeeds").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindEligible returns the candidate pool: active, onboarded, non-banned
// users minus the exclusion list (self plus anyone already linked).
func (r *userRepository) FindEligible(excludeIDs []uint) ([]model.User, error) {
	var users []model.User
	query := r.db.Preload("Skills").Preload("RoleNeeds").
		Where("active = ? AND onboarded = ? AND banned = ?", true, true, false)
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}
	err := query.Find(&users).Error
	return users, err
}
