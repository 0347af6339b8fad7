// internal/engine/games.go
package engine

import (
	"sort"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

// GameSummary is a game plus the fields derived from the session table on
// read: the id of the one active session (nil if none) and all inactive
// session ids.
type GameSummary struct {
	ID string `json:"id"`
	models.Game
	ActiveSession *string  `json:"active"`
	OldSessions   []string `json:"oldSessions"`
}

// GameUpdate is one game in a full replace-by-owner request. An empty ID
// asks for a fresh one to be minted.
type GameUpdate struct {
	ID        string
	Owner     string
	Name      string
	Thumbnail string
	Questions []models.Question
}

// activeSessionID returns the id of the single active session for a game,
// or nil if there is none or the invariant is somehow violated and more
// than one exists. Assumes the session lock is held.
func (e *Engine) activeSessionID(gameID string) *string {
	var found []string
	for id, s := range e.store.Sessions {
		if s.GameID == gameID && s.Active {
			found = append(found, id)
		}
	}
	if len(found) == 1 {
		return &found[0]
	}
	return nil
}

// inactiveSessionIDs returns all finished session ids for a game, sorted
// for stable output. Assumes the session lock is held.
func (e *Engine) inactiveSessionIDs(gameID string) []string {
	ids := []string{}
	for id, s := range e.store.Sessions {
		if s.GameID == gameID && !s.Active {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// GetGamesFromAdmin returns the admin's games with derived session fields
// recomputed from the live session table.
func (e *Engine) GetGamesFromAdmin(email string) ([]GameSummary, error) {
	var out []GameSummary
	err := e.store.WithGameLock(func() error {
		return e.store.WithSessionLock(func() error {
			ids := make([]string, 0, len(e.store.Games))
			for id, g := range e.store.Games {
				if g.Owner == email {
					ids = append(ids, id)
				}
			}
			sort.Strings(ids)

			out = make([]GameSummary, 0, len(ids))
			for _, id := range ids {
				out = append(out, GameSummary{
					ID:            id,
					Game:          *e.store.Games[id].Clone(),
					ActiveSession: e.activeSessionID(id),
					OldSessions:   e.inactiveSessionIDs(id),
				})
			}
			return nil
		})
	})
	return out, err
}

// UpdateGamesFromAdmin replaces the admin's entire owned-game set with the
// requested set. Games the admin omits are deleted; games owned by other
// admins are carried over untouched. A requested id is reused only when it
// is not already owned by a different admin, otherwise a fresh id is
// minted.
func (e *Engine) UpdateGamesFromAdmin(updates []GameUpdate, email string) error {
	return e.store.WithGameLock(func() error {
		for _, u := range updates {
			if u.Owner == "" {
				return NewInputError("game must have an owner")
			}
			if u.Owner != email {
				return NewInputError("cannot modify games owned by other admins")
			}
		}

		next := make(map[string]*models.Game)
		otherOwned := make(map[string]struct{})
		taken := make(map[string]struct{}, len(e.store.Games))
		for id, g := range e.store.Games {
			taken[id] = struct{}{}
			if g.Owner != email {
				otherOwned[id] = struct{}{}
				next[id] = g
			}
		}

		for _, u := range updates {
			id := u.ID
			if _, conflict := otherOwned[id]; id == "" || conflict {
				id = newID(taken, defaultIDMax)
			}
			taken[id] = struct{}{}
			next[id] = &models.Game{
				Owner:     u.Owner,
				Name:      u.Name,
				Thumbnail: u.Thumbnail,
				Questions: models.CloneQuestions(u.Questions),
			}
		}

		e.store.Games = next
		return nil
	})
}

// AssertOwnsGame distinguishes an unknown game (input error) from a game
// owned by someone else (access error).
func (e *Engine) AssertOwnsGame(email, gameID string) error {
	return e.store.WithGameLock(func() error {
		g, ok := e.store.Games[gameID]
		if !ok {
			return NewInputError("invalid game ID")
		}
		if g.Owner != email {
			return NewAccessError("admin does not own this game")
		}
		return nil
	})
}

// AssertOwnsSession checks ownership of the game a session belongs to. The
// two domain locks are taken one after the other, never nested, because
// session-then-game would invert the allowed lock order.
func (e *Engine) AssertOwnsSession(email, sessionID string) error {
	var gameID string
	err := e.store.WithSessionLock(func() error {
		s, ok := e.store.Sessions[sessionID]
		if !ok {
			return NewInputError("invalid session ID")
		}
		gameID = s.GameID
		return nil
	})
	if err != nil {
		return err
	}
	return e.AssertOwnsGame(email, gameID)
}
