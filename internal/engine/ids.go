// internal/engine/ids.go
package engine

import (
	"math/rand"
	"strconv"
)

const (
	// defaultIDMax gives game and player ids a nine-digit space.
	defaultIDMax = 999999999
	// sessionIDMax gives session ids a six-digit space.
	sessionIDMax = 999999
)

// randRange returns a pseudo-random integer in [max/10, max] inclusive.
func randRange(max int) int {
	lo := max / 10
	return lo + rand.Intn(max-lo+1)
}

// newID draws ids until one is not already taken. The id space is orders
// of magnitude larger than any realistic population, so the retry loop
// terminates after a draw or two in practice.
func newID(taken map[string]struct{}, max int) string {
	for {
		id := strconv.Itoa(randRange(max))
		if _, ok := taken[id]; !ok {
			return id
		}
	}
}

// sessionIDsTaken collects all session ids. Assumes the session lock is
// held.
func (e *Engine) sessionIDsTaken() map[string]struct{} {
	taken := make(map[string]struct{}, len(e.store.Sessions))
	for id := range e.store.Sessions {
		taken[id] = struct{}{}
	}
	return taken
}

// playerIDsTaken collects every player id across all sessions, so player
// ids stay unique process-wide. Assumes the session lock is held.
func (e *Engine) playerIDsTaken() map[string]struct{} {
	taken := make(map[string]struct{})
	for _, s := range e.store.Sessions {
		for id := range s.Players {
			taken[id] = struct{}{}
		}
	}
	return taken
}
