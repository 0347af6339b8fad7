// internal/engine/save.go
package engine

import (
	"context"
	"fmt"

	"github.com/bigbrain-live/bigbrain/internal/persist"
)

// Snapshot deep-copies the whole store, one domain at a time under that
// domain's lock. The three copies are not a single frozen instant; the
// snapshot is best-effort durability, never a source of truth during a
// request.
func (e *Engine) Snapshot() *persist.Snapshot {
	snap := persist.NewSnapshot()

	_ = e.store.WithUserLock(func() error {
		for email, a := range e.store.Admins {
			cp := *a
			snap.Admins[email] = &cp
		}
		return nil
	})
	_ = e.store.WithGameLock(func() error {
		for id, g := range e.store.Games {
			snap.Games[id] = g.Clone()
		}
		return nil
	})
	_ = e.store.WithSessionLock(func() error {
		for id, s := range e.store.Sessions {
			snap.Sessions[id] = s.Clone()
		}
		return nil
	})

	return snap
}

// Save writes a snapshot through the sink, outside all domain locks.
// Without a sink it is a no-op.
func (e *Engine) Save(ctx context.Context) error {
	if e.sink == nil {
		return nil
	}
	if err := e.sink.Save(ctx, e.Snapshot()); err != nil {
		e.log.WithError(err).Error("persist snapshot failed")
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Restore replaces the store contents with a previously saved snapshot.
// Run at startup, before the engine serves requests.
func (e *Engine) Restore(snap *persist.Snapshot) {
	_ = e.store.WithUserLock(func() error {
		if snap.Admins != nil {
			e.store.Admins = snap.Admins
		}
		return nil
	})
	_ = e.store.WithGameLock(func() error {
		if snap.Games != nil {
			e.store.Games = snap.Games
		}
		return nil
	})
	_ = e.store.WithSessionLock(func() error {
		if snap.Sessions != nil {
			e.store.Sessions = snap.Sessions
		}
		return nil
	})
}
