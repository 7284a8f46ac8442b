package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/events"
	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/validator"
)

type lessonService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	validator   *validator.Validator
	publisher   events.Publisher
	leaderboard LeaderboardService
}

func NewLessonService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher, leaderboard LeaderboardService) LessonService {
	return &lessonService{
		repo:        repo,
		db:          db,
		logger:      logger,
		validator:   validator,
		publisher:   publisher,
		leaderboard: leaderboard,
	}
}

func (s *lessonService) GetProgress(ctx context.Context, userID uint, lessonKey string) (*models.ProgressResponse, error) {
	if userID == 0 {
		return nil, NewMissingFieldError("userId")
	}

	lesson, err := s.repo.Lesson().GetByKey(ctx, nil, lessonKey)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	progress, err := s.repo.Progress().Get(ctx, nil, userID, lesson.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Untouched lesson reads as the zero-valued default
			return defaultProgress(lessonKey), nil
		}
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	return progressResponse(lessonKey, progress), nil
}

func (s *lessonService) SaveProgress(ctx context.Context, userID uint, lessonKey string, req *models.SaveProgressRequest) (*models.ProgressResponse, error) {
	if userID == 0 {
		return nil, NewMissingFieldError("userId")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	lesson, err := s.repo.Lesson().GetByKey(ctx, nil, lessonKey)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	now := time.Now()
	completedBlocks, err := json.Marshal(orEmptyInts(req.CompletedBlocks))
	if err != nil {
		return nil, fmt.Errorf("failed to encode completed blocks: %w", err)
	}

	progress := &models.LessonProgress{
		UserID:            userID,
		LessonID:          lesson.ID,
		CurrentBlockIndex: req.CurrentBlockIndex,
		CompletedBlocks:   datatypes.JSON(completedBlocks),
		QuizAnswers:       datatypes.JSON(orEmptyObject(req.QuizAnswers)),
		VideoWatchTime:    datatypes.JSON(orEmptyObject(req.VideoWatchTime)),
		PointsEarned:      req.PointsEarned,
		IsCompleted:       req.IsCompleted,
		StartedAt:         &now,
	}
	if req.IsCompleted {
		progress.CompletedAt = &now
	}

	firstCompletion := false
	awarded := 0

	// Upsert and any completion award commit together.
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		existing, err := txRepo.Progress().Get(ctx, nil, userID, lesson.ID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return fmt.Errorf("failed to load existing progress: %w", err)
		}

		prevPoints := 0
		if existing != nil {
			prevPoints = existing.PointsEarned
			if existing.StartedAt != nil {
				progress.StartedAt = existing.StartedAt
			}
			firstCompletion = req.IsCompleted && !existing.IsCompleted
		} else {
			firstCompletion = req.IsCompleted
		}

		if err := txRepo.Progress().Upsert(ctx, nil, progress); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		// The first transition to completed awards the point delta.
		// Re-saving a completed lesson never double-awards.
		if firstCompletion {
			delta := req.PointsEarned - prevPoints
			if delta > 0 {
				if _, err := txRepo.User().AddTutePoints(ctx, nil, userID, delta); err != nil {
					if repositories.IsNotFoundError(err) {
						return ErrUserNotFound
					}
					return fmt.Errorf("failed to award lesson points: %w", err)
				}
				awarded = delta
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if firstCompletion {
		s.afterCompletion(ctx, userID, lesson, awarded)
	}

	s.logger.Info("Lesson progress saved",
		"user_id", userID,
		"lesson_key", lessonKey,
		"is_completed", req.IsCompleted,
		"points_awarded", awarded)

	return progressResponse(lessonKey, progress), nil
}

func (s *lessonService) afterCompletion(ctx context.Context, userID uint, lesson *models.Lesson, awarded int) {
	if s.leaderboard != nil && awarded > 0 {
		user, err := s.repo.User().GetByID(ctx, nil, userID)
		if err == nil {
			if err := s.leaderboard.RecordPoints(ctx, user); err != nil {
				s.logger.Warn("Failed to update leaderboard", "user_id", userID, "error", err)
			}
		}
	}

	if s.publisher != nil {
		event := events.NewEvent(events.TypeLessonCompleted, map[string]interface{}{
			"user_id":        userID,
			"lesson_id":      lesson.ID,
			"lesson_key":     lesson.Key,
			"points_awarded": awarded,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish lesson completed event", "user_id", userID, "error", err)
		}
	}
}

func defaultProgress(lessonKey string) *models.ProgressResponse {
	return &models.ProgressResponse{
		LessonKey:         lessonKey,
		CurrentBlockIndex: 0,
		CompletedBlocks:   []int{},
		QuizAnswers:       json.RawMessage("{}"),
		VideoWatchTime:    json.RawMessage("{}"),
		PointsEarned:      0,
		IsCompleted:       false,
	}
}

func progressResponse(lessonKey string, progress *models.LessonProgress) *models.ProgressResponse {
	var completedBlocks []int
	if len(progress.CompletedBlocks) > 0 {
		_ = json.Unmarshal(progress.CompletedBlocks, &completedBlocks)
	}
	if completedBlocks == nil {
		completedBlocks = []int{}
	}

	return &models.ProgressResponse{
		LessonKey:         lessonKey,
		CurrentBlockIndex: progress.CurrentBlockIndex,
		CompletedBlocks:   completedBlocks,
		QuizAnswers:       orEmptyObject(json.RawMessage(progress.QuizAnswers)),
		VideoWatchTime:    orEmptyObject(json.RawMessage(progress.VideoWatchTime)),
		PointsEarned:      progress.PointsEarned,
		IsCompleted:       progress.IsCompleted,
		StartedAt:         progress.StartedAt,
		CompletedAt:       progress.CompletedAt,
	}
}

func orEmptyObject(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage("{}")
	}
	return raw
}

func orEmptyInts(values []int) []int {
	if values == nil {
		return []int{}
	}
	return values
}
