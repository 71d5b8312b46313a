package realtime

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "session:"

func ChannelName(sessionID string) string {
	return channelPrefix + sessionID
}

// RedisRelay publishes events through redis so every API instance can feed
// its own websocket clients. Messages received from redis go to the local hub.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
}

func NewRedisRelay(client *redis.Client, hub *Hub) *RedisRelay {
	return &RedisRelay{client: client, hub: hub}
}

func (r *RedisRelay) Publish(event Event) {
	data, err := encode(event)
	if err != nil {
		log.Error().Err(err).Str("session_id", event.SessionID).Msg("failed to encode realtime event")
		return
	}
	if err := r.client.Publish(context.Background(), ChannelName(event.SessionID), data).Err(); err != nil {
		log.Warn().Err(err).Str("session_id", event.SessionID).Msg("redis publish failed, delivering locally")
		r.hub.Broadcast(event.SessionID, data)
	}
}

// Start subscribes to every session channel and forwards messages to the hub
// until ctx is cancelled. It returns once the subscription is confirmed.
func (r *RedisRelay) Start(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, channelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return eris.Wrap(err, "failed to subscribe to session channels")
	}

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				sessionID := strings.TrimPrefix(msg.Channel, channelPrefix)
				r.hub.Broadcast(sessionID, []byte(msg.Payload))
			}
		}
	}()

	log.Info().Msg("redis realtime relay subscribed")
	return nil
}
