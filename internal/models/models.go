// internal/models/models.go
package models

// Admin is an owner account. The store keys admins by email; the email is
// case-sensitive exactly as supplied at registration. Admins are never
// deleted.
type Admin struct {
	Name          string `json:"name"`
	PasswordHash  string `json:"passwordHash"`
	SessionActive bool   `json:"sessionActive"`
}

// Question is one timed multiple-choice question inside a game.
type Question struct {
	Text            string   `json:"text,omitempty"`
	Answers         []string `json:"answers,omitempty"`
	DurationSeconds int      `json:"duration"`
	Points          int      `json:"points,omitempty"`
	CorrectAnswers  []string `json:"correctAnswers"`
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	cp := q
	cp.Answers = append([]string(nil), q.Answers...)
	cp.CorrectAnswers = append([]string(nil), q.CorrectAnswers...)
	return cp
}

// CloneQuestions deep-copies a question list. Sessions snapshot a game's
// questions at start time so later edits to the game never leak into a
// running or finished session.
func CloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}

// Game is a quiz definition owned by exactly one admin, keyed in the store
// by a generated numeric-string id. The active-session id and the list of
// old sessions are derived from the session table on read and are never
// stored here.
type Game struct {
	Owner     string     `json:"owner"`
	Name      string     `json:"name"`
	Thumbnail string     `json:"thumbnail,omitempty"`
	Questions []Question `json:"questions"`
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	cp := *g
	cp.Questions = CloneQuestions(g.Questions)
	return &cp
}

// AnswerRecord is one player's answer slot for one question. Slots are
// pre-filled with empty defaults at join time, one per session question.
type AnswerRecord struct {
	QuestionStartedAt *string  `json:"questionStartedAt"`
	AnsweredAt        *string  `json:"answeredAt"`
	Answers           []string `json:"answers"`
	Correct           bool     `json:"correct"`
}

// Clone returns a deep copy of the record.
func (a AnswerRecord) Clone() AnswerRecord {
	cp := a
	cp.QuestionStartedAt = cloneStringPtr(a.QuestionStartedAt)
	cp.AnsweredAt = cloneStringPtr(a.AnsweredAt)
	cp.Answers = append([]string(nil), a.Answers...)
	return cp
}

// Player is a participant in exactly one session. Players are keyed by a
// generated numeric-string id and are never deleted.
type Player struct {
	Name    string         `json:"name"`
	Answers []AnswerRecord `json:"answers"`
}

// NewPlayer builds a player with one empty answer slot per question.
func NewPlayer(name string, numQuestions int) *Player {
	answers := make([]AnswerRecord, numQuestions)
	for i := range answers {
		answers[i].Answers = []string{}
	}
	return &Player{Name: name, Answers: answers}
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	cp := &Player{Name: p.Name, Answers: make([]AnswerRecord, len(p.Answers))}
	for i, a := range p.Answers {
		cp.Answers[i] = a.Clone()
	}
	return cp
}

// Session is one run of a game, live or finished. Position -1 means the
// session has not started; a position equal to the question count means it
// ran to completion. At most one session per game may be active at a time.
// Sessions are retained as history and never deleted.
type Session struct {
	GameID                     string             `json:"gameId"`
	Position                   int                `json:"position"`
	IsoTimeLastQuestionStarted *string            `json:"isoTimeLastQuestionStarted"`
	Players                    map[string]*Player `json:"players"`
	Questions                  []Question         `json:"questions"`
	Active                     bool               `json:"active"`
	AnswerAvailable            bool               `json:"answerAvailable"`
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	cp := *s
	cp.IsoTimeLastQuestionStarted = cloneStringPtr(s.IsoTimeLastQuestionStarted)
	cp.Questions = CloneQuestions(s.Questions)
	cp.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		cp.Players[id] = p.Clone()
	}
	return &cp
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
