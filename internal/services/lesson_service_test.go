package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tutelearn/platform-service/internal/events"
	"github.com/tutelearn/platform-service/internal/models"
)

func newLessonService(e *testEnv, publisher events.Publisher) LessonService {
	leaderboard := NewLeaderboardService(e.repo, nil, e.logger)
	return NewLessonService(e.repo, e.db, e.logger, e.validator, publisher, leaderboard)
}

func TestGetProgress_DefaultForUntouchedLesson(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	user := e.createUser(t, "alice", "")
	lesson := e.createLesson(t, "fractions-101", 20)

	progress, err := svc.GetProgress(context.Background(), user.ID, lesson.Key)
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}

	if progress.CurrentBlockIndex != 0 {
		t.Errorf("currentBlockIndex = %d, want 0", progress.CurrentBlockIndex)
	}
	if len(progress.CompletedBlocks) != 0 {
		t.Errorf("completedBlocks = %v, want empty", progress.CompletedBlocks)
	}
	if progress.IsCompleted {
		t.Error("expected isCompleted=false")
	}
	if progress.StartedAt != nil || progress.CompletedAt != nil {
		t.Error("expected null timestamps for untouched lesson")
	}
}

func TestGetProgress_UnknownLesson(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	user := e.createUser(t, "bob", "")

	_, err := svc.GetProgress(context.Background(), user.ID, "no-such-lesson")
	if !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("expected ErrLessonNotFound, got %v", err)
	}
}

func TestGetProgress_MissingUserID(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	_, err := svc.GetProgress(context.Background(), 0, "fractions-101")
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}
}

func TestSaveProgress_UpsertsSingleRow(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	user := e.createUser(t, "carol", "")
	lesson := e.createLesson(t, "fractions-101", 20)

	_, err := svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 1,
		CompletedBlocks:   []int{0},
	})
	if err != nil {
		t.Fatalf("first SaveProgress returned error: %v", err)
	}

	second, err := svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 3,
		CompletedBlocks:   []int{0, 1, 2},
	})
	if err != nil {
		t.Fatalf("second SaveProgress returned error: %v", err)
	}

	if second.CurrentBlockIndex != 3 {
		t.Errorf("currentBlockIndex = %d, want 3", second.CurrentBlockIndex)
	}

	rows, err := e.repo.Progress().ListByUser(context.Background(), nil, user.ID)
	if err != nil {
		t.Fatalf("failed to list progress: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one progress row, got %d", len(rows))
	}
	if rows[0].CurrentBlockIndex != 3 {
		t.Errorf("stored currentBlockIndex = %d, want second call's value 3", rows[0].CurrentBlockIndex)
	}
}

func TestSaveProgress_CompletionAwardsOnce(t *testing.T) {
	e := newTestEnv(t)
	publisher := events.NewMockPublisher()
	svc := newLessonService(e, publisher)

	user := e.createUser(t, "dave", "")
	lesson := e.createLesson(t, "fractions-101", 20)

	first, err := svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 2,
		CompletedBlocks:   []int{0, 1},
		PointsEarned:      20,
		IsCompleted:       true,
	})
	if err != nil {
		t.Fatalf("SaveProgress returned error: %v", err)
	}

	if first.CompletedAt == nil {
		t.Error("expected completedAt to be set on completion")
	}
	if got := e.userPoints(t, user.ID); got != 20 {
		t.Errorf("user total = %d, want 20", got)
	}

	published := publisher.PublishedEvents()
	if len(published) != 1 || published[0].Type != events.TypeLessonCompleted {
		t.Errorf("expected one %s event, got %+v", events.TypeLessonCompleted, published)
	}

	// Re-saving a completed lesson never awards again
	_, err = svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 2,
		CompletedBlocks:   []int{0, 1},
		PointsEarned:      20,
		IsCompleted:       true,
	})
	if err != nil {
		t.Fatalf("second SaveProgress returned error: %v", err)
	}
	if got := e.userPoints(t, user.ID); got != 20 {
		t.Errorf("user total = %d after re-save, want 20", got)
	}
	if len(publisher.PublishedEvents()) != 1 {
		t.Error("re-save should not publish another completion event")
	}
}

func TestSaveProgress_PartialPointsBeforeCompletion(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	user := e.createUser(t, "erin", "")
	lesson := e.createLesson(t, "fractions-101", 20)

	// Partial progress carries earned points without awarding them
	_, err := svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 1,
		PointsEarned:      8,
	})
	if err != nil {
		t.Fatalf("partial SaveProgress returned error: %v", err)
	}
	if got := e.userPoints(t, user.ID); got != 0 {
		t.Errorf("user total = %d before completion, want 0", got)
	}

	// Completion awards the delta over the previously recorded points
	_, err = svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 2,
		PointsEarned:      20,
		IsCompleted:       true,
	})
	if err != nil {
		t.Fatalf("completing SaveProgress returned error: %v", err)
	}
	if got := e.userPoints(t, user.ID); got != 12 {
		t.Errorf("user total = %d, want delta award of 12", got)
	}
}

func TestSaveProgress_RoundTrip(t *testing.T) {
	e := newTestEnv(t)
	svc := newLessonService(e, events.NewMockPublisher())

	user := e.createUser(t, "frank", "")
	lesson := e.createLesson(t, "fractions-101", 20)

	saved, err := svc.SaveProgress(context.Background(), user.ID, lesson.Key, &models.SaveProgressRequest{
		CurrentBlockIndex: 2,
		CompletedBlocks:   []int{0, 1},
		QuizAnswers:       rawJSON(`{"3":[0]}`),
		IsCompleted:       true,
	})
	if err != nil {
		t.Fatalf("SaveProgress returned error: %v", err)
	}
	if saved.StartedAt == nil {
		t.Error("expected startedAt to be set")
	}

	got, err := svc.GetProgress(context.Background(), user.ID, lesson.Key)
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}
	if got.CurrentBlockIndex != 2 {
		t.Errorf("currentBlockIndex = %d, want 2", got.CurrentBlockIndex)
	}
	if !got.IsCompleted {
		t.Error("expected isCompleted=true")
	}
	if got.CompletedAt == nil {
		t.Error("expected completedAt to survive the round trip")
	}
	if string(got.QuizAnswers) != `{"3":[0]}` {
		t.Errorf("quizAnswers = %s, want {\"3\":[0]}", got.QuizAnswers)
	}
}
