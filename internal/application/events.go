package application

import (
	"context"
	"time"
)

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// UserEvent is published after a successful write.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher delivers events to a broker. helpers.RabbitPublisher
// satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
