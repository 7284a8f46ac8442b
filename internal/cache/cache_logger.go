package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateQuizCache drops the cached quiz and any delivery lists it
// appears in after a quiz row changes.
func InvalidateQuizCache(ctx context.Context, cm *CacheManager, quizID uint) {
	SafeDelete(ctx, cm.Quiz, fmt.Sprintf("id:%d", quizID))
	SafeInvalidatePattern(ctx, cm.Quiz, "random:*")
}

// InvalidateLeaderboardCache drops assembled leaderboard snapshots
// after a point award. The ZSets themselves are updated in place.
func InvalidateLeaderboardCache(ctx context.Context, cm *CacheManager) {
	SafeInvalidatePattern(ctx, cm.Leaderboard, "users:*")
	SafeInvalidatePattern(ctx, cm.Leaderboard, "schools:*")
}

// InvalidateLessonCache drops the cached lesson after a content change.
func InvalidateLessonCache(ctx context.Context, cm *CacheManager, lessonKey string) {
	SafeDelete(ctx, cm.Lesson, fmt.Sprintf("key:%s", lessonKey))
}
