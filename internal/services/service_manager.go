package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tutelearn/platform-service/internal/events"
	"github.com/tutelearn/platform-service/internal/repositories"
	"github.com/tutelearn/platform-service/internal/repositories/document"
	"github.com/tutelearn/platform-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// serviceManager implements ServiceManager
type serviceManager struct {
	// Dependencies
	db            *gorm.DB
	repo          repositories.Repository
	redisClient   *redis.Client
	documentStore *document.Store
	publisher     events.Publisher
	logger        *slog.Logger
	validator     *validator.Validator
	config        ServiceManagerConfig

	// Service instances
	authService        AuthService
	quizService        QuizService
	lessonService      LessonService
	leaderboardService LeaderboardService
	dashboardService   DashboardService
	reportService      ReportService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, redisClient *redis.Client, documentStore *document.Store, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:            db,
		repo:          repo,
		redisClient:   redisClient,
		documentStore: documentStore,
		publisher:     publisher,
		logger:        logger,
		validator:     validator,
		config:        config,
	}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	if sm.config.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	// Leaderboard first, quiz and lesson push awards into it
	sm.leaderboardService = NewLeaderboardService(sm.repo, sm.redisClient, sm.logger)
	sm.authService = NewAuthService(sm.repo, sm.db, sm.logger, sm.validator, sm.config.JWTSecret, sm.config.TokenTTL)
	sm.quizService = NewQuizService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher, sm.leaderboardService)
	sm.lessonService = NewLessonService(sm.repo, sm.db, sm.logger, sm.validator, sm.publisher, sm.leaderboardService)
	sm.dashboardService = NewDashboardService(sm.repo, sm.documentStore, sm.logger)
	sm.reportService = NewReportService(sm.repo, sm.leaderboardService, sm.logger)

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// Service getters

func (sm *serviceManager) Auth() AuthService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.authService
}

func (sm *serviceManager) Quiz() QuizService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.quizService
}

func (sm *serviceManager) Lesson() LessonService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.lessonService
}

func (sm *serviceManager) Leaderboard() LeaderboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.leaderboardService
}

func (sm *serviceManager) Dashboard() DashboardService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.dashboardService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reportService
}

// Health and lifecycle

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if sm.publisher != nil {
		if err := sm.publisher.Close(); err != nil {
			sm.logger.Error("Failed to close event publisher", "error", err)
		}
	}

	if err := sm.repo.Close(); err != nil {
		sm.logger.Error("Failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.logger.Info("Service manager shut down completed")

	return nil
}
