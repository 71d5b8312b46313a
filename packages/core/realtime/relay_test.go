package realtime

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRelayDeliversToLocalHub(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(4)
	relay := NewRedisRelay(client, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, relay.Start(ctx))

	ch, unsub, err := hub.Subscribe("s1")
	require.NoError(t, err)
	defer unsub()

	relay.Publish(NewEvent(EventSessionClosed, "s1", nil))

	ev := receive(t, ch)
	assert.Equal(t, EventSessionClosed, ev.Type)
	assert.Equal(t, "s1", ev.SessionID)
}

func TestRedisRelayFallsBackWhenRedisIsDown(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()
	s.Close()

	hub := NewHub(4)
	relay := NewRedisRelay(client, hub)
	ch, unsub, err := hub.Subscribe("s1")
	require.NoError(t, err)
	defer unsub()

	relay.Publish(NewEvent(EventRosterUpdated, "s1", nil))

	ev := receive(t, ch)
	assert.Equal(t, EventRosterUpdated, ev.Type)
}

func TestChannelName(t *testing.T) {
	assert.Equal(t, "session:abc", ChannelName("abc"))
}
