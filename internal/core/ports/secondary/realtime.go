package secondary

import "context"

// RealtimePublisher publishes events on a named channel
type RealtimePublisher interface {
	Publish(ctx context.Context, channel string, payload interface{}) error
}

// RealtimeSubscriber opens a subscription to a named channel. The returned
// messages channel is closed when the subscription is closed.
type RealtimeSubscriber interface {
	Subscribe(ctx context.Context, channel string) (Subscription, error)
}

type Subscription interface {
	Messages() <-chan []byte
	Close() error
}
