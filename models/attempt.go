package models

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is one user's single submission of answers for one quiz.
// Immutable after creation; Score is set once during the submission
// transaction.
type QuizAttempt struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	UserID    uint           `json:"user_id" gorm:"not null;index"`
	QuizID    uint           `json:"quiz_id" gorm:"not null;index"`
	Score     int            `json:"score" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User    User         `json:"user,omitempty"`
	Quiz    Quiz         `json:"quiz,omitempty"`
	Answers []UserAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

// UserAnswer records a submission verbatim, never the verdict; results are
// re-derived from the answer key on read.
type UserAnswer struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint           `json:"question_id" gorm:"not null"`
	AnswerText string         `json:"answer_text"`
	// Stored as JSON so the submitted order round-trips.
	SelectedAnswerIDs []uint         `json:"selected_answer_ids" gorm:"serializer:json"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Attempt  QuizAttempt `json:"attempt,omitempty"`
	Question Question    `json:"question,omitempty"`
}
