package realtimeport

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

func TestPumpExitsOnCloseWithStalledConsumer(t *testing.T) {
	sub := &redisSubscription{
		messages: make(chan []byte, 1),
		done:     make(chan struct{}),
	}
	src := make(chan *redis.Message)
	pumpExited := make(chan struct{})
	go func() {
		sub.pump(src)
		close(pumpExited)
	}()

	// Nobody reads sub.messages: the first message fills the buffer and the
	// second parks the pump on its send.
	src <- &redis.Message{Payload: "first"}
	src <- &redis.Message{Payload: "second"}

	if err := sub.Close(); err != nil {
		t.Fatalf("close returned error: %v", err)
	}

	select {
	case <-pumpExited:
	case <-time.After(2 * time.Second):
		t.Fatal("pump goroutine still parked after Close")
	}

	if msg := <-sub.messages; string(msg) != "first" {
		t.Errorf("buffered message = %q, want %q", msg, "first")
	}
	if _, ok := <-sub.messages; ok {
		t.Error("messages channel should be closed once the pump exits")
	}
}

func TestPumpClosesStreamWhenSourceEnds(t *testing.T) {
	sub := &redisSubscription{
		messages: make(chan []byte, 1),
		done:     make(chan struct{}),
	}
	src := make(chan *redis.Message)
	go sub.pump(src)

	src <- &redis.Message{Payload: "only"}
	close(src)

	select {
	case msg := <-sub.messages:
		if string(msg) != "only" {
			t.Errorf("message = %q, want %q", msg, "only")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message never delivered")
	}

	select {
	case _, ok := <-sub.messages:
		if ok {
			t.Error("expected the stream to close with its source")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after source ended")
	}
}
