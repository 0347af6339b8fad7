// internal/persist/persist.go
package persist

import (
	"context"
	"errors"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

// ErrNoSnapshot is returned by Load when the backing store holds no prior
// snapshot. Callers start from an empty store in that case.
var ErrNoSnapshot = errors.New("no snapshot found")

// Snapshot is the persisted shape of the whole store: three named
// mappings, keyed exactly as they are in memory. The derived game fields
// (active session, old sessions) are computed on read and never persisted.
type Snapshot struct {
	Admins   map[string]*models.Admin   `json:"admins"`
	Games    map[string]*models.Game    `json:"games"`
	Sessions map[string]*models.Session `json:"sessions"`
}

// NewSnapshot returns a snapshot with empty maps.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Admins:   make(map[string]*models.Admin),
		Games:    make(map[string]*models.Game),
		Sessions: make(map[string]*models.Session),
	}
}

// Sink durably records snapshots. Save runs after every successful
// mutating operation, outside the engine's domain locks; failures are
// reported to the caller but never invalidate the in-memory state, which
// remains the source of truth. Load runs once at startup.
type Sink interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context) (*Snapshot, error)
	Close() error
}
