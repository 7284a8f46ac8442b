package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/tutelearn/platform-service/internal/repositories"
)

const reportRowLimit = 10000

type reportService struct {
	repo        repositories.Repository
	leaderboard LeaderboardService
	logger      *slog.Logger
}

func NewReportService(repo repositories.Repository, leaderboard LeaderboardService, logger *slog.Logger) ReportService {
	return &reportService{
		repo:        repo,
		leaderboard: leaderboard,
		logger:      logger,
	}
}

// ExportAttempts writes the attempt log into an xlsx workbook,
// optionally restricted to one quiz category.
func (s *reportService) ExportAttempts(ctx context.Context, category string) (*excelize.File, error) {
	filters := repositories.AttemptFilters{
		Limit:     reportRowLimit,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
	if category != "" {
		filters.Category = &category
	}

	attempts, total, err := s.repo.Attempt().List(ctx, nil, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Attempts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Attempt ID", "User ID", "Quiz ID", "Quiz Prompt", "Correct", "Points Earned", "Time Taken (s)", "Submitted At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, attempt := range attempts {
		values := []interface{}{
			attempt.ID,
			attempt.UserID,
			attempt.QuizID,
			attempt.Quiz.Prompt,
			attempt.IsCorrect,
			attempt.PointsEarned,
			attempt.TimeTaken,
			attempt.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	s.logger.Info("Attempt report generated", "rows", len(attempts), "total", total, "category", category)

	return f, nil
}

// ExportLeaderboard writes the current ranking into an xlsx workbook.
func (s *reportService) ExportLeaderboard(ctx context.Context, boardType string) (*excelize.File, error) {
	f := excelize.NewFile()

	switch boardType {
	case LeaderboardUsers:
		entries, err := s.leaderboard.Users(ctx, reportRowLimit)
		if err != nil {
			return nil, err
		}

		sheet := "Users"
		f.SetSheetName("Sheet1", sheet)
		headers := []string{"Rank", "User ID", "Name", "School", "TUTE Points"}
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
		}
		for row, entry := range entries {
			values := []interface{}{entry.Rank, entry.UserID, entry.Name, entry.School, entry.TutePoints}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
		}

	case LeaderboardSchools:
		ranks, err := s.leaderboard.Schools(ctx, reportRowLimit)
		if err != nil {
			return nil, err
		}

		sheet := "Schools"
		f.SetSheetName("Sheet1", sheet)
		headers := []string{"Rank", "School", "Total Points", "Members"}
		for i, header := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return nil, fmt.Errorf("failed to write header: %w", err)
			}
		}
		for row, rank := range ranks {
			values := []interface{}{rank.Rank, rank.School, rank.TotalPoints, rank.MemberCount}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
		}

	default:
		return nil, ErrInvalidLeaderboard
	}

	return f, nil
}
