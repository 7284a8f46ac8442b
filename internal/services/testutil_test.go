package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/repositories/postgres"
	"github.com/tutelearn/platform-service/internal/validator"
)

// testEnv wires a real repository over an in-memory database so the
// services run against actual SQL, transactions included.
type testEnv struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.QuizTopic{},
		&models.Lesson{},
		&models.LessonProgress{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &testEnv{
		db:        db,
		repo:      postgres.NewPostgreSQLRepository(postgres.RepositoryConfig{DB: db}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator: validator.New(),
	}
}

func (e *testEnv) createUser(t *testing.T, name, school string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        name + "@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Name:         name,
		School:       school,
	}
	if err := e.repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func (e *testEnv) createQuiz(t *testing.T, quizType models.QuizType, correctAnswer string, points int) *models.Quiz {
	t.Helper()

	quiz := &models.Quiz{
		Type:          quizType,
		Prompt:        "What is the capital of France?",
		Options:       datatypes.JSON(`["Paris","London","Berlin"]`),
		CorrectAnswer: datatypes.JSON(correctAnswer),
		Category:      "geography",
		Difficulty:    models.DifficultyBeginner,
		Points:        points,
	}
	if err := e.repo.Quiz().Create(context.Background(), nil, quiz); err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}
	return quiz
}

func (e *testEnv) createLesson(t *testing.T, key string, points int) *models.Lesson {
	t.Helper()

	lesson := &models.Lesson{
		Key:    key,
		Title:  "Intro to Fractions",
		Blocks: datatypes.JSON(`[{"type":"text","order":0,"text":"Welcome"}]`),
		Points: points,
	}
	if err := e.repo.Lesson().Create(context.Background(), nil, lesson); err != nil {
		t.Fatalf("failed to create lesson: %v", err)
	}
	return lesson
}

func (e *testEnv) userPoints(t *testing.T, userID uint) int {
	t.Helper()

	user, err := e.repo.User().GetByID(context.Background(), nil, userID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return user.TutePoints
}

func rawJSON(s string) json.RawMessage {
	return json.RawMessage(s)
}
