// internal/ws/hub.go
package ws

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub fans session lifecycle events out to websocket subscribers. Each
// subscriber has a small buffered channel; a subscriber that falls behind
// has messages dropped rather than blocking the engine.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscriber]struct{}
	log  *logrus.Logger
}

// Subscriber receives serialized events for one session.
type Subscriber struct {
	ch chan []byte
}

// Messages is the stream of serialized events. It is closed when the
// subscriber is removed from the hub.
func (s *Subscriber) Messages() <-chan []byte { return s.ch }

// NewHub returns an empty hub.
func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscriber]struct{}),
		log:  log,
	}
}

// Subscribe registers a new subscriber for a session.
func (h *Hub) Subscribe(sessionID string) *Subscriber {
	sub := &Subscriber{ch: make(chan []byte, 16)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[*Subscriber]struct{})
	}
	h.subs[sessionID][sub] = struct{}{}
	return sub
}

// Unsubscribe removes a subscriber and closes its message stream.
func (h *Hub) Unsubscribe(sessionID string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sessionID)
	}
	close(sub.ch)
}

// Publish serializes payload and delivers it to every subscriber of the
// session. Never blocks.
func (h *Hub) Publish(sessionID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.WithError(err).Error("marshal session event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[sessionID] {
		select {
		case sub.ch <- data:
		default:
			h.log.WithField("session", sessionID).Warn("dropping event for slow subscriber")
		}
	}
}
