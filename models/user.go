package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	// Legacy denormalized column. Rankings are computed from quiz_attempts;
	// nothing writes this field.
	TotalScore int            `json:"total_score" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Quizzes  []Quiz        `json:"quizzes,omitempty" gorm:"foreignKey:CreatorID"`
	Attempts []QuizAttempt `json:"attempts,omitempty" gorm:"foreignKey:UserID"`
}
