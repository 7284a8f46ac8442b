package models

import (
	"encoding/json"
	"time"
)

// ===== AUTH DTOs =====

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	School   string `json:"school" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      PublicUser `json:"user"`
}

// ===== QUIZ DTOs =====

type SubmitQuizRequest struct {
	// UserID resolved from the session when authenticated; the body
	// field remains for callers outside a session.
	UserID         uint            `json:"userId"`
	QuizID         uint            `json:"quizId"`
	Answer         json.RawMessage `json:"userAnswer"`
	TimeTaken      int             `json:"timeTaken" validate:"min=0"`
	IdempotencyKey *string         `json:"idempotencyKey" validate:"omitempty,max=64"`
}

type SubmitQuizResponse struct {
	AttemptID     uint            `json:"attemptId"`
	IsCorrect     bool            `json:"isCorrect"`
	PointsEarned  int             `json:"pointsEarned"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   *string         `json:"explanation,omitempty"`
}

// QuizDelivery is a quiz stripped of grading material.
type QuizDelivery struct {
	ID         uint            `json:"id"`
	Type       QuizType        `json:"type"`
	Prompt     string          `json:"prompt"`
	Options    json.RawMessage `json:"options"`
	Category   string          `json:"category,omitempty"`
	Difficulty DifficultyLevel `json:"difficulty"`
	Points     int             `json:"points"`
}

func (q *Quiz) Delivery() QuizDelivery {
	return QuizDelivery{
		ID:         q.ID,
		Type:       q.Type,
		Prompt:     q.Prompt,
		Options:    json.RawMessage(q.Options),
		Category:   q.Category,
		Difficulty: q.Difficulty,
		Points:     q.Points,
	}
}

// ===== LESSON PROGRESS DTOs =====

type SaveProgressRequest struct {
	UserID            uint            `json:"userId"`
	CurrentBlockIndex int             `json:"currentBlockIndex" validate:"min=0"`
	CompletedBlocks   []int           `json:"completedBlocks"`
	QuizAnswers       json.RawMessage `json:"quizAnswers"`
	VideoWatchTime    json.RawMessage `json:"videoWatchTime"`
	PointsEarned      int             `json:"pointsEarned" validate:"min=0"`
	IsCompleted       bool            `json:"isCompleted"`
}

type ProgressResponse struct {
	LessonKey         string          `json:"lessonKey"`
	CurrentBlockIndex int             `json:"currentBlockIndex"`
	CompletedBlocks   []int           `json:"completedBlocks"`
	QuizAnswers       json.RawMessage `json:"quizAnswers"`
	VideoWatchTime    json.RawMessage `json:"videoWatchTime"`
	PointsEarned      int             `json:"pointsEarned"`
	IsCompleted       bool            `json:"isCompleted"`
	StartedAt         *time.Time      `json:"startedAt"`
	CompletedAt       *time.Time      `json:"completedAt"`
}
