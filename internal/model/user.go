package model

import (
	"time"

	"gorm.io/gorm"
)

// User is the external skill/role profile consumed by the scorer. The
// surrounding application owns onboarding and profile CRUD; the matching core
// only reads these rows.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"uniqueIndex"`
	Industry  string         `json:"industry,omitempty" gorm:"index"`
	Onboarded bool           `json:"onboarded" gorm:"not null;default:false"`
	Banned    bool           `json:"banned" gorm:"not null;default:false"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	Skills    []Skill        `json:"skills,omitempty" gorm:"foreignKey:UserID"`
	RoleNeeds []RoleNeed     `json:"role_needs,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Eligible reports whether the user may appear in a candidate pool.
func (u *User) Eligible() bool {
	return u.Active && u.Onboarded && !u.Banned
}

// Skill is one entry of a user's skill list.
type Skill struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category,omitempty"`
	Proficiency int       `json:"proficiency" gorm:"not null;default:1"` // 1-5
	Verified    bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoleNeed is a role the user is looking for in a co-founder.
type RoleNeed struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Role      string    `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
