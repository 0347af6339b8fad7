// internal/ws/hub_test.go
package ws

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHub(logger)
}

func TestPublishReachesOnlySessionSubscribers(t *testing.T) {
	h := newTestHub()

	a := h.Subscribe("123456")
	b := h.Subscribe("123456")
	other := h.Subscribe("654321")

	h.Publish("123456", map[string]string{"type": "questionAdvanced"})

	for _, sub := range []*Subscriber{a, b} {
		select {
		case msg := <-sub.Messages():
			assert.JSONEq(t, `{"type":"questionAdvanced"}`, string(msg))
		default:
			t.Fatal("subscriber did not receive the event")
		}
	}

	select {
	case <-other.Messages():
		t.Fatal("event leaked to another session's subscriber")
	default:
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	h := newTestHub()

	sub := h.Subscribe("123456")
	h.Unsubscribe("123456", sub)

	_, ok := <-sub.Messages()
	assert.False(t, ok, "channel closes on unsubscribe")

	// A second unsubscribe is harmless.
	h.Unsubscribe("123456", sub)

	// Publishing to a session with no subscribers is a no-op.
	h.Publish("123456", "ignored")
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	h := newTestHub()

	sub := h.Subscribe("123456")
	for i := 0; i < 50; i++ {
		h.Publish("123456", i)
	}

	// The buffer holds the first events; the rest were dropped.
	require.Len(t, sub.Messages(), 16)
	assert.JSONEq(t, "0", string(<-sub.Messages()))
}
