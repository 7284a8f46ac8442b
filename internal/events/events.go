package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the platform.
const (
	TypeQuizPointsAwarded = "quiz.points_awarded"
	TypeLessonCompleted   = "lesson.completed"
)

const (
	eventSource  = "platform-service"
	eventVersion = "1.0"
)

// Event is the envelope shared by all published domain events.
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

// NewEvent builds an event envelope with a fresh ID and timestamp.
func NewEvent(eventType string, data map[string]interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher delivers domain events to interested consumers. Publishing
// is best effort; callers log failures and move on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
