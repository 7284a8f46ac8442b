package postgres

import (
	"context"
	"errors"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

func newTestRepository(t *testing.T) repositories.Repository {
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

	return NewPostgreSQLRepository(RepositoryConfig{DB: db})
}

func createTestUser(t *testing.T, repo repositories.Repository, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "hash", Name: "Test"}
	if err := repo.User().Create(context.Background(), nil, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func TestAddTutePoints_AtomicIncrement(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "alice@example.com")

	total, err := repo.User().AddTutePoints(context.Background(), nil, user.ID, 10)
	if err != nil {
		t.Fatalf("AddTutePoints returned error: %v", err)
	}
	if total != 10 {
		t.Errorf("total = %d, want 10", total)
	}

	total, err = repo.User().AddTutePoints(context.Background(), nil, user.ID, 5)
	if err != nil {
		t.Fatalf("AddTutePoints returned error: %v", err)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15", total)
	}
}

func TestAddTutePoints_UnknownUser(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.User().AddTutePoints(context.Background(), nil, 9999, 10)
	if !repositories.IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestWithTransaction_RollsBackTogether(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "bob@example.com")

	sentinel := errors.New("boom")
	err := repo.WithTransaction(context.Background(), func(txRepo repositories.Repository) error {
		if _, err := txRepo.User().AddTutePoints(context.Background(), nil, user.ID, 50); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	reloaded, err := repo.User().GetByID(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if reloaded.TutePoints != 0 {
		t.Errorf("points = %d after rollback, want 0", reloaded.TutePoints)
	}
}

func TestAttemptCreate_DuplicateIdempotencyKey(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "carol@example.com")

	quiz := &models.Quiz{Type: models.QuizSingle, Prompt: "?", CorrectAnswer: datatypes.JSON(`[0]`), Points: 10}
	if err := repo.Quiz().Create(context.Background(), nil, quiz); err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}

	key := "once-only"
	first := &models.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Answer: datatypes.JSON(`[0]`), IdempotencyKey: &key}
	if err := repo.Attempt().Create(context.Background(), nil, first); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	second := &models.QuizAttempt{UserID: user.ID, QuizID: quiz.ID, Answer: datatypes.JSON(`[0]`), IdempotencyKey: &key}
	err := repo.Attempt().Create(context.Background(), nil, second)
	if !repositories.IsDuplicateError(err) {
		t.Errorf("expected duplicate error, got %v", err)
	}

	found, err := repo.Attempt().GetByIdempotencyKey(context.Background(), nil, key)
	if err != nil {
		t.Fatalf("GetByIdempotencyKey returned error: %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("found attempt %d, want %d", found.ID, first.ID)
	}
}

func TestProgressUpsert_SingleRowPerPair(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "dave@example.com")

	lesson := &models.Lesson{Key: "algebra-1", Title: "Algebra"}
	if err := repo.Lesson().Create(context.Background(), nil, lesson); err != nil {
		t.Fatalf("failed to create lesson: %v", err)
	}

	for i := 1; i <= 2; i++ {
		progress := &models.LessonProgress{
			UserID:            user.ID,
			LessonID:          lesson.ID,
			CurrentBlockIndex: i,
			CompletedBlocks:   datatypes.JSON(`[]`),
		}
		if err := repo.Progress().Upsert(context.Background(), nil, progress); err != nil {
			t.Fatalf("Upsert %d returned error: %v", i, err)
		}
	}

	rows, err := repo.Progress().ListByUser(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	if rows[0].CurrentBlockIndex != 2 {
		t.Errorf("currentBlockIndex = %d, want the last write's 2", rows[0].CurrentBlockIndex)
	}
}

func TestProgressGet_MissingRow(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Progress().Get(context.Background(), nil, 1, 1)
	if !repositories.IsNotFoundError(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestUserGetByEmail_SoftDeleteRespected(t *testing.T) {
	repo := newTestRepository(t)
	user := createTestUser(t, repo, "erin@example.com")

	found, err := repo.User().GetByEmail(context.Background(), nil, "erin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail returned error: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("found user %d, want %d", found.ID, user.ID)
	}

	exists, err := repo.User().ExistsByEmail(context.Background(), nil, "nobody@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail returned error: %v", err)
	}
	if exists {
		t.Error("ExistsByEmail should be false for unknown email")
	}
}
