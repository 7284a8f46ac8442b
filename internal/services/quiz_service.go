package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/events"
	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/validator"
)

type quizService struct {
	repo        repositories.Repository
	db          *gorm.DB
	logger      *slog.Logger
	validator   *validator.Validator
	publisher   events.Publisher
	leaderboard LeaderboardService
}

func NewQuizService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.Publisher, leaderboard LeaderboardService) QuizService {
	return &quizService{
		repo:        repo,
		db:          db,
		logger:      logger,
		validator:   validator,
		publisher:   publisher,
		leaderboard: leaderboard,
	}
}

func (s *quizService) Submit(ctx context.Context, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	if req.UserID == 0 {
		return nil, NewMissingFieldError("userId")
	}
	if req.QuizID == 0 {
		return nil, NewMissingFieldError("quizId")
	}
	if len(req.Answer) == 0 {
		return nil, NewMissingFieldError("userAnswer")
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// A repeated idempotency key replays the original result instead
	// of grading and awarding twice.
	if key := req.IdempotencyKey; key != nil && *key != "" {
		attempt, err := s.repo.Attempt().GetByIdempotencyKey(ctx, nil, *key)
		if err == nil {
			return s.responseFromAttempt(ctx, attempt)
		}
		if !repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	quiz, err := s.repo.Quiz().GetByID(ctx, nil, req.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	isCorrect := Grade(quiz.Type, json.RawMessage(quiz.CorrectAnswer), req.Answer)
	pointsEarned := 0
	if isCorrect {
		pointsEarned = quiz.Points
	}

	attempt := &models.QuizAttempt{
		UserID:         req.UserID,
		QuizID:         quiz.ID,
		Answer:         datatypes.JSON(req.Answer),
		IsCorrect:      isCorrect,
		PointsEarned:   pointsEarned,
		TimeTaken:      req.TimeTaken,
		IdempotencyKey: normalizeKey(req.IdempotencyKey),
	}

	var newTotal int

	// Attempt row and point award commit or roll back together.
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Attempt().Create(ctx, nil, attempt); err != nil {
			return err
		}

		if isCorrect && pointsEarned > 0 {
			total, err := txRepo.User().AddTutePoints(ctx, nil, req.UserID, pointsEarned)
			if err != nil {
				if repositories.IsNotFoundError(err) {
					return ErrUserNotFound
				}
				return fmt.Errorf("failed to award points: %w", err)
			}
			newTotal = total
		}

		return nil
	})
	if err != nil {
		// Lost an idempotency race: the original attempt exists now.
		if errors.Is(err, repositories.ErrDuplicate) && attempt.IdempotencyKey != nil {
			original, lookupErr := s.repo.Attempt().GetByIdempotencyKey(ctx, nil, *attempt.IdempotencyKey)
			if lookupErr == nil {
				return s.responseFromAttempt(ctx, original)
			}
		}
		return nil, err
	}

	if isCorrect && pointsEarned > 0 {
		s.afterAward(ctx, req.UserID, quiz.ID, pointsEarned, newTotal)
	}

	s.logger.Info("Quiz attempt recorded",
		"attempt_id", attempt.ID,
		"user_id", req.UserID,
		"quiz_id", quiz.ID,
		"is_correct", isCorrect,
		"points_earned", pointsEarned)

	return &models.SubmitQuizResponse{
		AttemptID:     attempt.ID,
		IsCorrect:     isCorrect,
		PointsEarned:  pointsEarned,
		CorrectAnswer: json.RawMessage(quiz.CorrectAnswer),
		Explanation:   quiz.Explanation,
	}, nil
}

func (s *quizService) GetRandom(ctx context.Context, limit int, category string) ([]models.QuizDelivery, error) {
	if limit <= 0 {
		limit = 10
	}

	filters := repositories.RandomQuizFilters{Count: limit}
	if category != "" {
		filters.Category = &category
	}

	quizzes, err := s.repo.Quiz().GetRandom(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get random quizzes: %w", err)
	}

	// Grading material never leaves with the delivery payload
	deliveries := make([]models.QuizDelivery, 0, len(quizzes))
	for _, quiz := range quizzes {
		deliveries = append(deliveries, quiz.Delivery())
	}

	return deliveries, nil
}

// responseFromAttempt rebuilds the submit response for a replayed
// attempt, including the revealed answer.
func (s *quizService) responseFromAttempt(ctx context.Context, attempt *models.QuizAttempt) (*models.SubmitQuizResponse, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, nil, attempt.QuizID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz for attempt: %w", err)
	}

	return &models.SubmitQuizResponse{
		AttemptID:     attempt.ID,
		IsCorrect:     attempt.IsCorrect,
		PointsEarned:  attempt.PointsEarned,
		CorrectAnswer: json.RawMessage(quiz.CorrectAnswer),
		Explanation:   quiz.Explanation,
	}, nil
}

// afterAward runs the best-effort side effects of a point award.
// Failures are logged, never surfaced to the caller.
func (s *quizService) afterAward(ctx context.Context, userID, quizID uint, pointsEarned, newTotal int) {
	if s.leaderboard != nil {
		user, err := s.repo.User().GetByID(ctx, nil, userID)
		if err == nil {
			if err := s.leaderboard.RecordPoints(ctx, user); err != nil {
				s.logger.Warn("Failed to update leaderboard", "user_id", userID, "error", err)
			}
		}
	}

	if s.publisher != nil {
		event := events.NewEvent(events.TypeQuizPointsAwarded, map[string]interface{}{
			"user_id":       userID,
			"quiz_id":       quizID,
			"points_earned": pointsEarned,
			"new_total":     newTotal,
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish points awarded event", "user_id", userID, "error", err)
		}
	}
}

func normalizeKey(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	return key
}
