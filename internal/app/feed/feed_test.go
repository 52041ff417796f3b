package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"msgboard/internal/app/board"
)

// newTestClient builds a subscriber with a controllable send-queue size and
// no underlying connection; the pumps are never started in these tests.
func newTestClient(h *Hub, userID string, buffer int) *Client {
	return &Client{
		hub:    h,
		userID: userID,
		send:   make(chan []byte, buffer),
	}
}

func recvEvent(t *testing.T, c *Client) ([]byte, bool) {
	t.Helper()

	select {
	case raw, ok := <-c.send:
		return raw, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed event")
		return nil, false
	}
}

func TestHubDeliversToSubscribers(t *testing.T) {
	t.Parallel()

	h := NewHub()
	defer h.Shutdown()

	sub := newTestClient(h, "sub-1", 4)
	sub.Register()

	h.Publish(board.Message{ID: 1, Username: "Ann", Text: "hello"})

	raw, ok := recvEvent(t, sub)
	require.True(t, ok)

	var msg board.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, "hello", msg.Text)
	require.Equal(t, "Ann", msg.Username)
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	t.Parallel()

	h := NewHub()
	defer h.Shutdown()

	slow := newTestClient(h, "slow", 1)
	slow.Register()
	healthy := newTestClient(h, "healthy", 8)
	healthy.Register()

	// The first event fills the slow subscriber's queue; the second finds it
	// full, so the hub removes the subscriber and closes its channel.
	h.Publish(board.Message{ID: 1, Text: "one"})
	h.Publish(board.Message{ID: 2, Text: "two"})
	h.Publish(board.Message{ID: 3, Text: "three"})

	// Drain the healthy subscriber first: once it has seen all three events
	// the hub has fanned them all out, so the slow subscriber's fate is
	// settled before its queue is inspected.
	var msg board.Message
	for _, want := range []string{"one", "two", "three"} {
		raw, ok := recvEvent(t, healthy)
		require.True(t, ok)
		require.NoError(t, json.Unmarshal(raw, &msg))
		require.Equal(t, want, msg.Text)
	}

	raw, ok := recvEvent(t, slow)
	require.True(t, ok)
	require.NoError(t, json.Unmarshal(raw, &msg))
	require.Equal(t, "one", msg.Text)

	_, ok = recvEvent(t, slow)
	require.False(t, ok, "dropped subscriber's channel should be closed")
}

func TestHubShutdown(t *testing.T) {
	t.Parallel()

	h := NewHub()

	sub := newTestClient(h, "sub-1", 4)
	sub.Register()

	h.Shutdown()

	// Shutdown closes every subscriber's channel and is idempotent.
	_, ok := <-sub.send
	require.False(t, ok)
	h.Shutdown()

	// Publishing after shutdown is a harmless no-op.
	h.Publish(board.Message{ID: 1, Text: "late"})

	// Late registration must not block once the hub is gone.
	done := make(chan struct{})
	go func() {
		newTestClient(h, "late", 1).Register()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Register blocked after hub shutdown")
	}
}
