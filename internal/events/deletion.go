package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UserDeleteQueue is the Redis list consumed by off-box deletion workers.
const UserDeleteQueue = "user.delete.queue"

// UserDeleted is the message pushed when an account is removed.
type UserDeleted struct {
	ID         string    `json:"id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers fire-and-forget deletion events.
type Publisher interface {
	PublishUserDeleted(ctx context.Context, userID int64) error
}

type redisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher returns a Publisher backed by a Redis list.
func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) PublishUserDeleted(ctx context.Context, userID int64) error {
	event := UserDeleted{
		ID:         uuid.NewString(),
		UserID:     userID,
		OccurredAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.client.LPush(ctx, UserDeleteQueue, payload).Err()
}

// NopPublisher discards events; used when no queue is configured.
type NopPublisher struct{}

func (NopPublisher) PublishUserDeleted(context.Context, int64) error {
	return nil
}
