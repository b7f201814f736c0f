package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisher(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	pub := NewRedisPublisher(client)
	require.NoError(t, pub.PublishUserDeleted(context.Background(), 42))

	queued, err := mr.List(UserDeleteQueue)
	require.NoError(t, err)
	require.Len(t, queued, 1)

	var event UserDeleted
	require.NoError(t, json.Unmarshal([]byte(queued[0]), &event))
	require.Equal(t, int64(42), event.UserID)
	require.NotEmpty(t, event.ID)
	require.False(t, event.OccurredAt.IsZero())
}
