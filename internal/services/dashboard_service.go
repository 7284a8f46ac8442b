package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/repositories/document"
)

// dashboardService filters the loaded dashboard documents and the
// quiz topics table. Reads only, no mutation.
type dashboardService struct {
	repo   repositories.Repository
	store  *document.Store
	logger *slog.Logger
}

func NewDashboardService(repo repositories.Repository, store *document.Store, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

func (s *dashboardService) Ads(ctx context.Context, filters DashboardFilters) []models.AdCampaign {
	out := make([]models.AdCampaign, 0)
	for _, ad := range s.store.Ads() {
		if filters.Type != "" && !strings.EqualFold(ad.Type, filters.Type) {
			continue
		}
		if filters.Sponsor != "" && !strings.EqualFold(ad.Sponsor, filters.Sponsor) {
			continue
		}
		if !matchesSearch(filters.Search, ad.Title, ad.Sponsor, ad.Description) {
			continue
		}
		out = append(out, ad)
	}
	return truncate(out, filters.Limit)
}

func (s *dashboardService) Analytics(ctx context.Context, filters DashboardFilters) []models.AnalyticsReport {
	out := make([]models.AnalyticsReport, 0)
	for _, report := range s.store.Analytics() {
		if filters.Category != "" && !strings.EqualFold(report.Category, filters.Category) {
			continue
		}
		if !matchesSearch(filters.Search, report.Title, report.Description) {
			continue
		}
		out = append(out, report)
	}
	return truncate(out, filters.Limit)
}

func (s *dashboardService) Influencers(ctx context.Context, filters DashboardFilters) []models.Influencer {
	out := make([]models.Influencer, 0)
	for _, influencer := range s.store.Influencers() {
		if filters.Tier != "" && !strings.EqualFold(influencer.Tier, filters.Tier) {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(influencer.Category, filters.Category) {
			continue
		}
		if !matchesSearch(filters.Search, influencer.Name, influencer.Handle, influencer.Bio) {
			continue
		}
		out = append(out, influencer)
	}
	return truncate(out, filters.Limit)
}

func (s *dashboardService) Investors(ctx context.Context, filters DashboardFilters) []models.Investor {
	out := make([]models.Investor, 0)
	for _, investor := range s.store.Investors() {
		if filters.Tier != "" && !strings.EqualFold(investor.Tier, filters.Tier) {
			continue
		}
		if !matchesSearch(filters.Search, investor.Name, investor.Firm, investor.Bio) {
			continue
		}
		out = append(out, investor)
	}
	return truncate(out, filters.Limit)
}

func (s *dashboardService) QuizTopics(ctx context.Context, filters DashboardFilters) ([]*models.QuizTopic, error) {
	topicFilters := repositories.TopicFilters{
		Search: filters.Search,
		Limit:  filters.Limit,
	}
	if filters.Category != "" {
		topicFilters.Category = &filters.Category
	}
	if filters.Difficulty != "" {
		difficulty := models.DifficultyLevel(filters.Difficulty)
		topicFilters.Difficulty = &difficulty
	}
	if filters.AgeGroup != "" {
		topicFilters.AgeGroup = &filters.AgeGroup
	}

	topics, _, err := s.repo.Topic().List(ctx, nil, topicFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz topics: %w", err)
	}

	return topics, nil
}

// matchesSearch does a case-insensitive substring match over the
// given fields. An empty needle matches everything.
func matchesSearch(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
