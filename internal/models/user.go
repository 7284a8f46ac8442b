package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`
	Name         string `json:"name" gorm:"not null;size:100" validate:"required,max=100"`
	School       string `json:"school" gorm:"index;size:255"`

	// Point ledger. Mutated only through atomic SQL increments.
	TutePoints int `json:"tutePoints" gorm:"not null;default:0"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the leaderboard/profile projection. Credential material
// never leaves the service.
type PublicUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	School     string `json:"school,omitempty"`
	TutePoints int    `json:"tutePoints"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		School:     u.School,
		TutePoints: u.TutePoints,
	}
}
