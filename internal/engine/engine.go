// internal/engine/engine.go
package engine

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bigbrain-live/bigbrain/internal/persist"
)

// EventType labels a session lifecycle event pushed to subscribers.
type EventType string

const (
	EventQuestionAdvanced EventType = "question_advanced"
	EventAnswersAvailable EventType = "answers_available"
	EventSessionEnded     EventType = "session_ended"
)

// Event is a session lifecycle notification. Position is the zero-based
// question index the event refers to, where it applies.
type Event struct {
	Type     EventType `json:"type"`
	Position int       `json:"position"`
}

// Engine implements the quiz lifecycle over a Store: admin auth, game
// ownership, session start/advance/end, player join and answering, and
// result computation. All state lives in memory; the sink only records
// snapshots after the fact.
type Engine struct {
	store *Store
	sink  persist.Sink
	log   *logrus.Logger

	// timerUnit scales question durations; tests shorten it.
	timerUnit time.Duration

	timerMu sync.Mutex
	timers  map[string]*time.Timer

	// OnEvent, when set, receives session lifecycle events. It is invoked
	// outside the domain locks and must not block.
	OnEvent func(sessionID string, ev Event)
}

// NewEngine builds an engine over store. sink may be nil, in which case
// Save is a no-op.
func NewEngine(store *Store, sink persist.Sink, log *logrus.Logger) *Engine {
	return &Engine{
		store:     store,
		sink:      sink,
		log:       log,
		timerUnit: time.Second,
		timers:    make(map[string]*time.Timer),
	}
}

func (e *Engine) fireEvent(sessionID string, ev Event) {
	if e.OnEvent != nil {
		e.OnEvent(sessionID, ev)
	}
}

// isoMillis matches JavaScript's Date.prototype.toISOString output, which
// is the timestamp format of the persisted snapshot.
const isoMillis = "2006-01-02T15:04:05.000Z"

func isoNow() string {
	return time.Now().UTC().Format(isoMillis)
}
