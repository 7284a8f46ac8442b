package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/tutelearn/platform-service/internal/cache"
	"github.com/tutelearn/platform-service/internal/models"
	"github.com/tutelearn/platform-service/internal/repositories"
)

const usersRankingKey = "ranking:users"

// leaderboardService serves rankings from a Redis sorted set when one
// is available and falls back to SQL aggregation otherwise. School
// rankings always aggregate in SQL since per-school totals move with
// every member.
type leaderboardService struct {
	repo         repositories.Repository
	redisClient  *redis.Client
	cacheManager *cache.CacheManager
	logger       *slog.Logger
}

func NewLeaderboardService(repo repositories.Repository, redisClient *redis.Client, logger *slog.Logger) LeaderboardService {
	return &leaderboardService{
		repo:         repo,
		redisClient:  redisClient,
		cacheManager: cache.NewCacheManager(redisClient),
		logger:       logger,
	}
}

func (s *leaderboardService) Get(ctx context.Context, boardType string, limit int) (interface{}, error) {
	switch boardType {
	case LeaderboardUsers:
		return s.Users(ctx, limit)
	case LeaderboardSchools:
		return s.Schools(ctx, limit)
	default:
		return nil, ErrInvalidLeaderboard
	}
}

func (s *leaderboardService) Users(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	if s.redisClient != nil {
		entries, err := s.usersFromRanking(ctx, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			s.logger.Warn("Ranking set unavailable, falling back to SQL", "error", err)
		}
	}

	return s.usersFromSQL(ctx, limit)
}

func (s *leaderboardService) Schools(ctx context.Context, limit int) ([]models.SchoolRank, error) {
	if limit <= 0 {
		limit = 10
	}

	var ranks []models.SchoolRank
	cacheKey := fmt.Sprintf("schools:%d", limit)
	err := s.cacheManager.Leaderboard.CacheOrExecute(ctx, cacheKey, &ranks, cache.LeaderboardCacheConfig.TTL, func() (interface{}, error) {
		rows, err := s.repo.User().TopSchools(ctx, nil, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate school ranking: %w", err)
		}
		out := make([]models.SchoolRank, 0, len(rows))
		for i, row := range rows {
			row.Rank = i + 1
			out = append(out, *row)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return ranks, nil
}

// RecordPoints writes the user's new absolute total into the sorted
// set and drops any assembled snapshots.
func (s *leaderboardService) RecordPoints(ctx context.Context, user *models.User) error {
	if s.redisClient == nil {
		return nil
	}

	err := s.redisClient.ZAdd(ctx, usersRankingKey, redis.Z{
		Score:  float64(user.TutePoints),
		Member: strconv.FormatUint(uint64(user.ID), 10),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to update ranking set: %w", err)
	}

	cache.InvalidateLeaderboardCache(ctx, s.cacheManager)

	return nil
}

func (s *leaderboardService) usersFromRanking(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	members, err := s.redisClient.ZRevRangeWithScores(ctx, usersRankingKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		idStr, ok := member.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}

		user, err := s.repo.User().GetByID(ctx, nil, uint(id))
		if err != nil {
			// Stale member, skip it
			continue
		}

		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Name:       user.Name,
			School:     user.School,
			TutePoints: int(member.Score),
		})
	}

	return entries, nil
}

func (s *leaderboardService) usersFromSQL(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	users, err := s.repo.User().TopByPoints(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user ranking: %w", err)
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Name:       user.Name,
			School:     user.School,
			TutePoints: user.TutePoints,
		})
	}

	return entries, nil
}
