package realtime

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
)

// handleBuffer is the per-handle event buffer. A handle that falls this far
// behind starts losing messages rather than stalling the other subscribers.
const handleBuffer = 16

// ChannelManager is a process-wide reference-counted cache of realtime
// subscriptions. At most one underlying subscription exists per logical
// channel name; concurrent acquires share it and each receives every event.
// A per-name removal guard serializes an acquire racing with a teardown of
// the same name.
type ChannelManager struct {
	subscriber secondary.RealtimeSubscriber
	logger     primary.Logger

	mu       sync.Mutex
	channels map[string]*managedChannel
	removing map[string]chan struct{}
}

// managedChannel owns one shared subscription and fans its events out to
// every attached handle.
type managedChannel struct {
	name string
	sub  secondary.Subscription
	refs int

	outMu sync.Mutex
	outs  map[*ChannelHandle]chan []byte
}

func newManagedChannel(name string, sub secondary.Subscription) *managedChannel {
	ch := &managedChannel{
		name: name,
		sub:  sub,
		refs: 1,
		outs: make(map[*ChannelHandle]chan []byte),
	}
	go ch.fanOut()
	return ch
}

// fanOut copies every event from the shared subscription to each attached
// handle. When the subscription closes, every remaining handle stream is
// closed too.
func (ch *managedChannel) fanOut() {
	for msg := range ch.sub.Messages() {
		ch.outMu.Lock()
		for _, out := range ch.outs {
			select {
			case out <- msg:
			default:
				// slow consumer, drop rather than stall the channel
			}
		}
		ch.outMu.Unlock()
	}

	ch.outMu.Lock()
	for h, out := range ch.outs {
		delete(ch.outs, h)
		close(out)
	}
	ch.outMu.Unlock()
}

func (ch *managedChannel) attach(h *ChannelHandle) chan []byte {
	out := make(chan []byte, handleBuffer)
	ch.outMu.Lock()
	ch.outs[h] = out
	ch.outMu.Unlock()
	return out
}

func (ch *managedChannel) detach(h *ChannelHandle) {
	ch.outMu.Lock()
	if out, ok := ch.outs[h]; ok {
		delete(ch.outs, h)
		close(out)
	}
	ch.outMu.Unlock()
}

// ChannelHandle is one caller's reference to a shared channel, with its own
// event stream. Close releases the reference; the underlying subscription is
// torn down when the last handle closes.
type ChannelHandle struct {
	name    string
	manager *ChannelManager
	channel *managedChannel
	out     chan []byte

	closeOnce sync.Once
}

func NewChannelManager(subscriber secondary.RealtimeSubscriber, logger primary.Logger) *ChannelManager {
	return &ChannelManager{
		subscriber: subscriber,
		logger:     logger,
		channels:   make(map[string]*managedChannel),
		removing:   make(map[string]chan struct{}),
	}
}

// Acquire returns a handle on the named channel, creating the underlying
// subscription if no live handle exists. If a teardown of the same name is
// in flight, Acquire waits for it to finish before subscribing fresh.
func (m *ChannelManager) Acquire(ctx context.Context, name string) (*ChannelHandle, error) {
	for {
		m.mu.Lock()
		if guard, inFlight := m.removing[name]; inFlight {
			m.mu.Unlock()
			select {
			case <-guard:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			continue
		}

		if ch, ok := m.channels[name]; ok {
			ch.refs++
			m.mu.Unlock()
			return newHandle(m, ch), nil
		}
		m.mu.Unlock()

		sub, err := m.subscriber.Subscribe(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to subscribe to channel %q: %w", name, err)
		}

		m.mu.Lock()
		if _, inFlight := m.removing[name]; inFlight {
			// Lost a race with a teardown that started while we subscribed;
			// drop this subscription and start over.
			m.mu.Unlock()
			_ = sub.Close()
			continue
		}
		if existing, ok := m.channels[name]; ok {
			// Another acquire created the channel first; share theirs.
			existing.refs++
			m.mu.Unlock()
			_ = sub.Close()
			return newHandle(m, existing), nil
		}
		ch := newManagedChannel(name, sub)
		m.channels[name] = ch
		m.mu.Unlock()

		m.logger.Debug("Realtime channel opened", "channel", name)
		return newHandle(m, ch), nil
	}
}

func newHandle(m *ChannelManager, ch *managedChannel) *ChannelHandle {
	h := &ChannelHandle{name: ch.name, manager: m, channel: ch}
	h.out = ch.attach(h)
	return h
}

// ActiveChannels reports how many distinct channel names have live handles
func (m *ChannelManager) ActiveChannels() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.channels)
}

func (m *ChannelManager) release(name string) {
	m.mu.Lock()
	ch, ok := m.channels[name]
	if !ok {
		m.mu.Unlock()
		return
	}
	ch.refs--
	if ch.refs > 0 {
		m.mu.Unlock()
		return
	}

	guard := make(chan struct{})
	m.removing[name] = guard
	delete(m.channels, name)
	m.mu.Unlock()

	if err := ch.sub.Close(); err != nil {
		m.logger.Warn("Failed to close realtime subscription", "channel", name, "error", err)
	}
	m.logger.Debug("Realtime channel closed", "channel", name)

	m.mu.Lock()
	delete(m.removing, name)
	m.mu.Unlock()
	close(guard)
}

// Messages returns this handle's own copy of the channel's event stream
func (h *ChannelHandle) Messages() <-chan []byte {
	return h.out
}

// Close releases this handle's reference. Safe to call more than once.
func (h *ChannelHandle) Close() {
	h.closeOnce.Do(func() {
		h.channel.detach(h)
		h.manager.release(h.name)
	})
}
