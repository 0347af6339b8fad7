// internal/engine/players.go
package engine

import (
	"slices"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

// PlayerQuestion is the current question as shown to a player: the correct
// answers are stripped, and the question start time is attached so clients
// can render a countdown.
type PlayerQuestion struct {
	Text                       string   `json:"text,omitempty"`
	Answers                    []string `json:"answers,omitempty"`
	DurationSeconds            int      `json:"duration"`
	Points                     int      `json:"points,omitempty"`
	IsoTimeLastQuestionStarted *string  `json:"isoTimeLastQuestionStarted"`
}

// PlayerResult is one player's name and full answer history.
type PlayerResult struct {
	Name    string                `json:"name"`
	Answers []models.AnswerRecord `json:"answers"`
}

// SessionStatus is the admin-facing view of a session, live or finished.
type SessionStatus struct {
	Active                     bool              `json:"active"`
	AnswerAvailable            bool              `json:"answerAvailable"`
	IsoTimeLastQuestionStarted *string           `json:"isoTimeLastQuestionStarted"`
	Position                   int               `json:"position"`
	Questions                  []models.Question `json:"questions"`
	Players                    []string          `json:"players"`
}

// sessionForPlayer finds the session containing playerID. Assumes the
// session lock is held.
func (e *Engine) sessionForPlayer(playerID string) (string, *models.Session, error) {
	for id, s := range e.store.Sessions {
		if _, ok := s.Players[playerID]; ok {
			return id, s, nil
		}
	}
	return "", nil, NewInputError("player ID does not refer to a valid player")
}

// activeSessionByID resolves a session id that must be active. Assumes the
// session lock is held.
func (e *Engine) activeSessionByID(sessionID string) (*models.Session, error) {
	s, ok := e.store.Sessions[sessionID]
	if !ok || !s.Active {
		return nil, NewInputError("session ID is not an active session")
	}
	return s, nil
}

// PlayerJoin adds a named player to a session that is active but not yet
// started, pre-sizing one answer slot per question, and returns the
// generated player id.
func (e *Engine) PlayerJoin(name, sessionID string) (string, error) {
	var playerID string
	err := e.store.WithSessionLock(func() error {
		if name == "" {
			return NewInputError("name must be supplied")
		}
		s, err := e.activeSessionByID(sessionID)
		if err != nil {
			return err
		}
		if s.Position >= 0 {
			return NewInputError("session has already begun")
		}

		playerID = newID(e.playerIDsTaken(), defaultIDMax)
		s.Players[playerID] = models.NewPlayer(name, len(s.Questions))
		return nil
	})
	if err != nil {
		return "", err
	}

	e.log.WithFields(logrus.Fields{"session": sessionID, "player": playerID}).Info("player joined")
	return playerID, nil
}

// SessionIDForPlayer resolves the session a player belongs to.
func (e *Engine) SessionIDForPlayer(playerID string) (string, error) {
	var sessionID string
	err := e.store.WithSessionLock(func() error {
		id, _, err := e.sessionForPlayer(playerID)
		sessionID = id
		return err
	})
	return sessionID, err
}

// HasStarted reports whether the player's session has shown its first
// question. The session must still be active.
func (e *Engine) HasStarted(playerID string) (bool, error) {
	var started bool
	err := e.store.WithSessionLock(func() error {
		id, _, err := e.sessionForPlayer(playerID)
		if err != nil {
			return err
		}
		s, err := e.activeSessionByID(id)
		if err != nil {
			return err
		}
		started = s.IsoTimeLastQuestionStarted != nil
		return nil
	})
	return started, err
}

// GetQuestion returns the session's current question with the correct
// answers stripped.
func (e *Engine) GetQuestion(playerID string) (*PlayerQuestion, error) {
	var out *PlayerQuestion
	err := e.store.WithSessionLock(func() error {
		id, _, err := e.sessionForPlayer(playerID)
		if err != nil {
			return err
		}
		s, err := e.activeSessionByID(id)
		if err != nil {
			return err
		}
		if s.Position == -1 {
			return NewInputError("session has not started yet")
		}
		if s.Position >= len(s.Questions) {
			return NewInputError("question not found")
		}

		q := s.Questions[s.Position]
		out = &PlayerQuestion{
			Text:                       q.Text,
			Answers:                    append([]string(nil), q.Answers...),
			DurationSeconds:            q.DurationSeconds,
			Points:                     q.Points,
			IsoTimeLastQuestionStarted: s.IsoTimeLastQuestionStarted,
		}
		return nil
	})
	return out, err
}

// GetAnswers returns the correct answer set for the current question, but
// only once the question's timer has revealed it.
func (e *Engine) GetAnswers(playerID string) ([]string, error) {
	var answers []string
	err := e.store.WithSessionLock(func() error {
		id, _, err := e.sessionForPlayer(playerID)
		if err != nil {
			return err
		}
		s, err := e.activeSessionByID(id)
		if err != nil {
			return err
		}
		if s.Position == -1 {
			return NewInputError("session has not started yet")
		}
		if !s.AnswerAvailable {
			return NewInputError("answers are not available yet")
		}
		if s.Position >= len(s.Questions) {
			return NewInputError("question not found")
		}

		answers = append([]string(nil), s.Questions[s.Position].CorrectAnswers...)
		return nil
	})
	return answers, err
}

// answersMatch compares the submitted answers against the correct set as
// independently sorted sequences. Duplicates are deliberately not removed:
// a submission scores correct exactly when the sorted sequences match
// element for element, length included.
func answersMatch(correct, submitted []string) bool {
	a := append([]string(nil), correct...)
	b := append([]string(nil), submitted...)
	sort.Strings(a)
	sort.Strings(b)
	return slices.Equal(a, b)
}

// SubmitAnswers records the player's answers for the current question,
// overwriting any earlier submission for the same question. Rejected once
// the answers have been revealed.
func (e *Engine) SubmitAnswers(playerID string, answers []string) error {
	return e.store.WithSessionLock(func() error {
		if len(answers) == 0 {
			return NewInputError("answers must be provided")
		}
		id, s, err := e.sessionForPlayer(playerID)
		if err != nil {
			return err
		}
		if _, err := e.activeSessionByID(id); err != nil {
			return err
		}
		if s.Position == -1 {
			return NewInputError("session has not started yet")
		}
		if s.AnswerAvailable {
			return NewInputError("can't answer question once answer is available")
		}

		now := isoNow()
		q := s.Questions[s.Position]
		s.Players[playerID].Answers[s.Position] = models.AnswerRecord{
			QuestionStartedAt: s.IsoTimeLastQuestionStarted,
			AnsweredAt:        &now,
			Answers:           append([]string(nil), answers...),
			Correct:           answersMatch(q.CorrectAnswers, answers),
		}
		return nil
	})
}

// GetResults returns the player's full answer history once the session has
// finished.
func (e *Engine) GetResults(playerID string) ([]models.AnswerRecord, error) {
	var out []models.AnswerRecord
	err := e.store.WithSessionLock(func() error {
		_, s, err := e.sessionForPlayer(playerID)
		if err != nil {
			return err
		}
		if s.Active {
			return NewInputError("session is ongoing, cannot get results yet")
		}
		if s.Position == -1 {
			return NewInputError("session has not started yet")
		}

		p := s.Players[playerID]
		out = make([]models.AnswerRecord, len(p.Answers))
		for i, a := range p.Answers {
			out[i] = a.Clone()
		}
		return nil
	})
	return out, err
}

// SessionResults returns every player's answer history for a finished
// session, ordered by player name.
func (e *Engine) SessionResults(sessionID string) ([]PlayerResult, error) {
	var out []PlayerResult
	err := e.store.WithSessionLock(func() error {
		s, ok := e.store.Sessions[sessionID]
		if !ok {
			return NewInputError("invalid session ID")
		}
		if s.Active {
			return NewInputError("cannot get results for active session")
		}

		out = make([]PlayerResult, 0, len(s.Players))
		for _, p := range s.Players {
			cp := p.Clone()
			out = append(out, PlayerResult{Name: cp.Name, Answers: cp.Answers})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// GetSessionStatus returns the admin view of a session regardless of
// whether it is active.
func (e *Engine) GetSessionStatus(sessionID string) (*SessionStatus, error) {
	var out *SessionStatus
	err := e.store.WithSessionLock(func() error {
		s, ok := e.store.Sessions[sessionID]
		if !ok {
			return NewInputError("invalid session ID")
		}

		names := make([]string, 0, len(s.Players))
		for _, p := range s.Players {
			names = append(names, p.Name)
		}
		sort.Strings(names)

		cp := s.Clone()
		out = &SessionStatus{
			Active:                     cp.Active,
			AnswerAvailable:            cp.AnswerAvailable,
			IsoTimeLastQuestionStarted: cp.IsoTimeLastQuestionStarted,
			Position:                   cp.Position,
			Questions:                  cp.Questions,
			Players:                    names,
		}
		return nil
	})
	return out, err
}
