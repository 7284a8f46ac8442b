package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizType string

const (
	QuizSingle   QuizType = "single"
	QuizMultiple QuizType = "multiple"
	QuizText     QuizType = "text"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

type Quiz struct {
	ID     uint     `json:"id" gorm:"primaryKey"`
	Type   QuizType `json:"type" gorm:"not null;index" validate:"required,quiz_type"`
	Prompt string   `json:"prompt" gorm:"type:text;not null" validate:"required"`

	// Options and the correct answer stored as JSONB.
	// Options: []string. CorrectAnswer: []int for single/multiple
	// (option indexes), []string for text.
	Options       datatypes.JSON `json:"options" gorm:"type:jsonb"`
	CorrectAnswer datatypes.JSON `json:"correctAnswer" gorm:"type:jsonb"`

	// Categorization
	Category   string          `json:"category" gorm:"index;size:100"`
	Difficulty DifficultyLevel `json:"difficulty" gorm:"default:beginner;index"`

	Points      int     `json:"points" gorm:"default:10" validate:"min=0,max=100"`
	Explanation *string `json:"explanation" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizAttempt is an append-only submission record. Rows are never
// updated or deleted after insert.
type QuizAttempt struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"userId" gorm:"not null;index"`
	QuizID uint `json:"quizId" gorm:"not null;index"`

	// Submitted answer, polymorphic by quiz type ([]int or []string)
	Answer datatypes.JSON `json:"answer" gorm:"type:jsonb"`

	IsCorrect    bool `json:"isCorrect"`
	PointsEarned int  `json:"pointsEarned"`
	TimeTaken    int  `json:"timeTaken"` // seconds

	// Optional client-supplied key. A duplicate key replays the
	// original result instead of recording a second attempt.
	IdempotencyKey *string `json:"-" gorm:"uniqueIndex;size:64"`

	CreatedAt time.Time `json:"createdAt"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
	Quiz Quiz `json:"-" gorm:"foreignKey:QuizID"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

type QuizTopic struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Title       string          `json:"title" gorm:"not null;size:255" validate:"required,max=255"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"index;size:100"`
	Difficulty  DifficultyLevel `json:"difficulty" gorm:"default:beginner;index"`
	AgeGroup    string          `json:"ageGroup" gorm:"size:50"`
	QuizCount   int             `json:"quizCount" gorm:"default:0"`
	ImageURL    *string         `json:"imageUrl" gorm:"size:500"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (QuizTopic) TableName() string {
	return "quiz_topics"
}
