package repositories

import "context"

// Repository aggregates the domain repositories behind one handle.
type Repository interface {
	// User domain (includes the point ledger)
	User() UserRepository

	// Quiz domain
	Quiz() QuizRepository
	Attempt() AttemptRepository
	Topic() TopicRepository

	// Lesson domain
	Lesson() LessonRepository
	Progress() ProgressRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
