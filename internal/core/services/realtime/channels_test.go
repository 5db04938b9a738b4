package realtime

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"gitlab.com/inteleval.net/internal/adapter/logging"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
)

type fakeSubscription struct {
	messages chan []byte
	closed   bool
	mu       sync.Mutex
}

func (s *fakeSubscription) Messages() <-chan []byte { return s.messages }
func (s *fakeSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.messages)
	}
	return nil
}

type fakeSubscriber struct {
	mu         sync.Mutex
	subscribes int
	subs       []*fakeSubscription
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, channel string) (secondary.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes++
	sub := &fakeSubscription{messages: make(chan []byte, 1)}
	f.subs = append(f.subs, sub)
	return sub, nil
}

func newManager(sub *fakeSubscriber) *ChannelManager {
	return NewChannelManager(sub, logging.NewDevelopmentLogger())
}

func TestAcquireSharesOneSubscriptionPerName(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	h1, err := manager.Acquire(context.Background(), "notifications:alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h2, err := manager.Acquire(context.Background(), "notifications:alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subscriber.subscribes != 1 {
		t.Errorf("subscribes = %d, want a single shared subscription", subscriber.subscribes)
	}
	if manager.ActiveChannels() != 1 {
		t.Errorf("activeChannels = %d", manager.ActiveChannels())
	}

	h1.Close()
	if subscriber.subs[0].closed {
		t.Errorf("subscription closed while a handle is still live")
	}
	h2.Close()
	if !subscriber.subs[0].closed {
		t.Errorf("subscription must close when the last handle releases")
	}
	if manager.ActiveChannels() != 0 {
		t.Errorf("activeChannels = %d after full release", manager.ActiveChannels())
	}
}

func TestAcquireDistinctNamesAreIndependent(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	hA, _ := manager.Acquire(context.Background(), "chat:general")
	hB, _ := manager.Acquire(context.Background(), "chat:random")

	if subscriber.subscribes != 2 {
		t.Errorf("subscribes = %d, want 2", subscriber.subscribes)
	}

	hA.Close()
	if subscriber.subs[1].closed {
		t.Errorf("closing one channel must not tear down another")
	}
	hB.Close()
}

func TestHandleCloseIsIdempotent(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	h1, _ := manager.Acquire(context.Background(), "chat:general")
	h2, _ := manager.Acquire(context.Background(), "chat:general")

	h1.Close()
	h1.Close()
	h1.Close()

	// h2's reference must survive h1's repeated closes
	if subscriber.subs[0].closed {
		t.Fatalf("double close released another handle's reference")
	}
	h2.Close()
	if !subscriber.subs[0].closed {
		t.Errorf("subscription should be closed after the true last release")
	}
}

func TestReacquireAfterFullRelease(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	h, _ := manager.Acquire(context.Background(), "chat:general")
	h.Close()

	h2, err := manager.Acquire(context.Background(), "chat:general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h2.Close()

	if subscriber.subscribes != 2 {
		t.Errorf("subscribes = %d, want a fresh subscription after teardown", subscriber.subscribes)
	}
}

func drainN(t *testing.T, h *ChannelHandle, n int) []string {
	t.Helper()
	var got []string
	for i := 0; i < n; i++ {
		select {
		case msg, ok := <-h.Messages():
			if !ok {
				t.Fatalf("stream closed after %d of %d messages", i, n)
			}
			got = append(got, string(msg))
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d messages", i, n)
		}
	}
	return got
}

func TestSharedHandlesEachReceiveEveryEvent(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	h1, err := manager.Acquire(context.Background(), "chat:general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h1.Close()
	h2, err := manager.Acquire(context.Background(), "chat:general")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer h2.Close()

	const published = 10
	for i := 0; i < published; i++ {
		subscriber.subs[0].messages <- []byte(fmt.Sprintf("event-%d", i))
	}

	got1 := drainN(t, h1, published)
	got2 := drainN(t, h2, published)

	for i := 0; i < published; i++ {
		want := fmt.Sprintf("event-%d", i)
		if got1[i] != want {
			t.Errorf("handle1[%d] = %q, want %q", i, got1[i], want)
		}
		if got2[i] != want {
			t.Errorf("handle2[%d] = %q, want %q", i, got2[i], want)
		}
	}
}

func TestClosedHandleStopsReceivingOthersKeepStream(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	h1, _ := manager.Acquire(context.Background(), "chat:general")
	h2, _ := manager.Acquire(context.Background(), "chat:general")

	h1.Close()
	if _, ok := <-h1.Messages(); ok {
		t.Error("closed handle's stream should be closed")
	}

	subscriber.subs[0].messages <- []byte("still flowing")
	got := drainN(t, h2, 1)
	if got[0] != "still flowing" {
		t.Errorf("surviving handle got %q", got[0])
	}
	h2.Close()
}

func TestConcurrentAcquireRelease(t *testing.T) {
	subscriber := &fakeSubscriber{}
	manager := newManager(subscriber)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := manager.Acquire(context.Background(), "chat:busy")
			if err != nil {
				t.Errorf("acquire failed: %v", err)
				return
			}
			h.Close()
		}()
	}
	wg.Wait()

	if manager.ActiveChannels() != 0 {
		t.Errorf("activeChannels = %d after all releases", manager.ActiveChannels())
	}
	for _, sub := range subscriber.subs {
		sub.mu.Lock()
		closed := sub.closed
		sub.mu.Unlock()
		if !closed {
			t.Errorf("a subscription leaked")
		}
	}
}
