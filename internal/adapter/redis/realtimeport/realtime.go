package realtimeport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
)

const channelKeyPrefix = "realtime:"

var (
	_ secondary.RealtimePublisher  = (*RealtimePort)(nil)
	_ secondary.RealtimeSubscriber = (*RealtimePort)(nil)
)

// RealtimePort implements the realtime pub/sub ports with Redis channels
type RealtimePort struct {
	redisClient *redis.Client
	logger      primary.Logger
}

func NewRealtimePort(redisClient *redis.Client, logger primary.Logger) *RealtimePort {
	return &RealtimePort{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Publish serializes the payload and publishes it on the named channel
func (r *RealtimePort) Publish(ctx context.Context, channel string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime payload: %w", err)
	}

	key := channelKeyPrefix + channel
	if err := r.redisClient.Publish(ctx, key, data).Err(); err != nil {
		r.logger.Error("Failed to publish realtime message", "channel", channel, "error", err)
		return fmt.Errorf("failed to publish to channel %q: %w", channel, err)
	}

	return nil
}

// Subscribe opens a redis subscription on the named channel
func (r *RealtimePort) Subscribe(ctx context.Context, channel string) (secondary.Subscription, error) {
	key := channelKeyPrefix + channel
	pubsub := r.redisClient.Subscribe(ctx, key)

	// Receive forces the SUBSCRIBE handshake so errors surface here instead
	// of silently dropping messages later.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to channel %q: %w", channel, err)
	}

	sub := &redisSubscription{
		pubsub:   pubsub,
		messages: make(chan []byte, 16),
		done:     make(chan struct{}),
	}
	go sub.pump(pubsub.Channel())

	return sub, nil
}

type redisSubscription struct {
	pubsub   *redis.PubSub
	messages chan []byte
	done     chan struct{}

	closeOnce sync.Once
}

// pump forwards redis messages until the source or the subscription closes.
// The done select keeps the goroutine from parking forever on a consumer
// that stopped reading before Close.
func (s *redisSubscription) pump(src <-chan *redis.Message) {
	defer close(s.messages)
	for msg := range src {
		select {
		case s.messages <- []byte(msg.Payload):
		case <-s.done:
			return
		}
	}
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.messages
}

func (s *redisSubscription) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	if s.pubsub == nil {
		return nil
	}
	return s.pubsub.Close()
}
