// internal/engine/sessions.go
package engine

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

// MutationResult is the outcome of a START/ADVANCE/END mutation.
type MutationResult struct {
	Status    string `json:"status"`
	SessionID string `json:"sessionId,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

// MutateGame dispatches a mutation by type. Unknown types are an input
// error.
func (e *Engine) MutateGame(gameID, mutationType string) (*MutationResult, error) {
	switch strings.ToUpper(mutationType) {
	case "START":
		sessionID, err := e.StartGame(gameID)
		if err != nil {
			return nil, err
		}
		return &MutationResult{Status: "started", SessionID: sessionID}, nil
	case "ADVANCE":
		position, err := e.AdvanceGame(gameID)
		if err != nil {
			return nil, err
		}
		return &MutationResult{Status: "advanced", Position: &position}, nil
	case "END":
		if err := e.EndGame(gameID); err != nil {
			return nil, err
		}
		return &MutationResult{Status: "ended"}, nil
	default:
		return nil, NewInputError("invalid mutation type")
	}
}

// activeSession finds the active session for a game. Assumes the session
// lock is held.
func (e *Engine) activeSession(gameID string) (string, *models.Session) {
	for id, s := range e.store.Sessions {
		if s.GameID == gameID && s.Active {
			return id, s
		}
	}
	return "", nil
}

// StartGame creates a fresh session for the game: not started
// (position -1), no players, questions deep-copied from the game as it is
// right now. Fails if the game already has an active session.
func (e *Engine) StartGame(gameID string) (string, error) {
	var sessionID string
	err := e.store.WithGameLock(func() error {
		g, ok := e.store.Games[gameID]
		if !ok {
			return NewInputError("invalid game ID")
		}
		return e.store.WithSessionLock(func() error {
			if _, active := e.activeSession(gameID); active != nil {
				return NewInputError("game already has an active session")
			}

			sessionID = newID(e.sessionIDsTaken(), sessionIDMax)
			e.store.Sessions[sessionID] = &models.Session{
				GameID:    gameID,
				Position:  -1,
				Players:   make(map[string]*models.Player),
				Questions: models.CloneQuestions(g.Questions),
				Active:    true,
			}
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"game": gameID, "session": sessionID}).Info("session started")
	return sessionID, nil
}

// AdvanceGame moves the active session to its next question, hides the
// answers again, stamps the question start time, and re-arms the reveal
// timer. Advancing past the last question ends the session. Returns the
// new position.
func (e *Engine) AdvanceGame(gameID string) (int, error) {
	var (
		position  int
		sessionID string
		ended     bool
	)
	err := e.store.WithGameLock(func() error {
		if _, ok := e.store.Games[gameID]; !ok {
			return NewInputError("invalid game ID")
		}
		return e.store.WithSessionLock(func() error {
			id, s := e.activeSession(gameID)
			if s == nil {
				return NewInputError("cannot advance a game that is not active")
			}
			sessionID = id

			s.Position++
			s.AnswerAvailable = false
			now := isoNow()
			s.IsoTimeLastQuestionStarted = &now
			position = s.Position

			if s.Position >= len(s.Questions) {
				s.Active = false
				ended = true
				e.cancelTimer(sessionID)
			} else {
				e.armTimer(sessionID, s.Position, s.Questions[s.Position].DurationSeconds)
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}

	if ended {
		e.log.WithFields(logrus.Fields{"game": gameID, "session": sessionID}).Info("session completed")
		e.fireEvent(sessionID, Event{Type: EventSessionEnded, Position: position})
	} else {
		e.fireEvent(sessionID, Event{Type: EventQuestionAdvanced, Position: position})
	}
	return position, nil
}

// EndGame force-ends the active session, leaving its position as-is, and
// cancels any pending reveal timer.
func (e *Engine) EndGame(gameID string) error {
	var (
		sessionID string
		position  int
	)
	err := e.store.WithGameLock(func() error {
		if _, ok := e.store.Games[gameID]; !ok {
			return NewInputError("invalid game ID")
		}
		return e.store.WithSessionLock(func() error {
			id, s := e.activeSession(gameID)
			if s == nil {
				return NewInputError("game has no active session")
			}
			sessionID = id
			position = s.Position
			s.Active = false
			e.cancelTimer(sessionID)
			return nil
		})
	})
	if err != nil {
		return err
	}

	e.log.WithFields(logrus.Fields{"game": gameID, "session": sessionID}).Info("session ended")
	e.fireEvent(sessionID, Event{Type: EventSessionEnded, Position: position})
	return nil
}
