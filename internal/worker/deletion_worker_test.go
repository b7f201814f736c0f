package worker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
)

func TestDeletionWorkerDrainsQueue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	pub := events.NewRedisPublisher(client)
	require.NoError(t, pub.PublishUserDeleted(context.Background(), 7))
	require.NoError(t, pub.PublishUserDeleted(context.Background(), 8))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewDeletionWorker(client, zap.NewNop())
	go w.Run(ctx)

	require.Eventually(t, func() bool {
		// the key disappears once the last element is popped
		queued, err := mr.List(events.UserDeleteQueue)
		if err != nil {
			return true
		}
		return len(queued) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
