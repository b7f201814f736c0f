package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
)

const popTimeout = 5 * time.Second

// DeletionWorker consumes account-deletion events from the Redis queue
// and performs the off-request cleanup side effects.
type DeletionWorker struct {
	client *redis.Client
	logger *zap.Logger
}

// NewDeletionWorker constructs the worker.
func NewDeletionWorker(client *redis.Client, logger *zap.Logger) *DeletionWorker {
	return &DeletionWorker{client: client, logger: logger}
}

// Run blocks consuming the queue until the context is cancelled.
func (w *DeletionWorker) Run(ctx context.Context) {
	if w.client == nil {
		return
	}

	for {
		result, err := w.client.BRPop(ctx, popTimeout, events.UserDeleteQueue).Result()
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("deletion worker stopped")
				return
			}
			if !errors.Is(err, redis.Nil) {
				w.logger.Warn("deletion queue pop failed", zap.Error(err))
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		w.handle([]byte(result[1]))
	}
}

func (w *DeletionWorker) handle(payload []byte) {
	var event events.UserDeleted
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.Warn("malformed deletion event", zap.Error(err))
		return
	}

	w.logger.Info("sending email to user", zap.Int64("user_id", event.UserID))
	w.logger.Info("removing files for user", zap.Int64("user_id", event.UserID))
}
