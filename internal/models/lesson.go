package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
	BlockVideo BlockType = "video"
	BlockQuiz  BlockType = "quiz"
)

type Lesson struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Key   string `json:"key" gorm:"uniqueIndex;not null;size:100" validate:"required,max=100"`
	Title string `json:"title" gorm:"not null;size:255" validate:"required,max=255"`

	// Ordered content blocks, JSONB. []LessonBlock
	Blocks datatypes.JSON `json:"blocks" gorm:"type:jsonb"`

	Category      string          `json:"category" gorm:"index;size:100"`
	Difficulty    DifficultyLevel `json:"difficulty" gorm:"default:beginner;index"`
	EstimatedTime int             `json:"estimatedTime"` // minutes
	Points        int             `json:"points" gorm:"default:0"`

	Objectives datatypes.JSON `json:"objectives" gorm:"type:jsonb"` // []string
	Tags       datatypes.JSON `json:"tags" gorm:"type:jsonb"`       // []string

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type LessonBlock struct {
	Type     BlockType `json:"type"`
	Order    int       `json:"order"`
	Text     *string   `json:"text,omitempty"`
	MediaURL *string   `json:"mediaUrl,omitempty"`
	QuizID   *uint     `json:"quizId,omitempty"`
}

// LessonProgress holds one row per (user, lesson). Writes upsert the
// row; reads of an absent row produce the zero-valued default.
type LessonProgress struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"userId" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID uint `json:"lessonId" gorm:"not null;uniqueIndex:idx_user_lesson"`

	// Position and per-block state
	CurrentBlockIndex int            `json:"currentBlockIndex" gorm:"default:0"`
	CompletedBlocks   datatypes.JSON `json:"completedBlocks" gorm:"type:jsonb"` // []int
	QuizAnswers       datatypes.JSON `json:"quizAnswers" gorm:"type:jsonb"`     // map[string]any
	VideoWatchTime    datatypes.JSON `json:"videoWatchTime" gorm:"type:jsonb"`  // map[string]float64

	PointsEarned int        `json:"pointsEarned"`
	IsCompleted  bool       `json:"isCompleted" gorm:"default:false"`
	StartedAt    *time.Time `json:"startedAt"`
	CompletedAt  *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Lesson Lesson `json:"-" gorm:"foreignKey:LessonID"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
