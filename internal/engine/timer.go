// internal/engine/timer.go
package engine

import (
	"time"

	"github.com/sirupsen/logrus"
)

// armTimer schedules the answer reveal for the question at position,
// cancelling any previous timer for the session first so at most one timer
// is outstanding per session. Safe to call while domain locks are held;
// the registry has its own leaf-level mutex.
func (e *Engine) armTimer(sessionID string, position, durationSeconds int) {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if t, ok := e.timers[sessionID]; ok {
		t.Stop()
	}
	d := time.Duration(durationSeconds) * e.timerUnit
	e.timers[sessionID] = time.AfterFunc(d, func() {
		e.revealAnswers(sessionID, position)
	})
}

// cancelTimer stops and forgets the pending timer for a session, if any.
// A fire that already slipped past the Stop is handled by the stale guard
// in revealAnswers.
func (e *Engine) cancelTimer(sessionID string) {
	e.timerMu.Lock()
	defer e.timerMu.Unlock()

	if t, ok := e.timers[sessionID]; ok {
		t.Stop()
		delete(e.timers, sessionID)
	}
}

// revealAnswers is the timer callback. It is just another session-domain
// task: it takes the session lock, verifies the session is still active
// and still on the question it was armed for, then flips AnswerAvailable.
// A stale fire is a no-op.
func (e *Engine) revealAnswers(sessionID string, position int) {
	flipped := false
	_ = e.store.WithSessionLock(func() error {
		s, ok := e.store.Sessions[sessionID]
		if !ok || !s.Active || s.Position != position || s.AnswerAvailable {
			return nil
		}
		s.AnswerAvailable = true
		flipped = true
		return nil
	})

	if flipped {
		e.log.WithFields(logrus.Fields{"session": sessionID, "position": position}).Debug("answers revealed")
		e.fireEvent(sessionID, Event{Type: EventAnswersAvailable, Position: position})
	}
}
