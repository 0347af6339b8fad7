// internal/engine/save_test.go
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbrain-live/bigbrain/internal/persist"
)

// memorySink records snapshots in memory.
type memorySink struct {
	mu    sync.Mutex
	last  *persist.Snapshot
	saves int
	fail  error
}

func (m *memorySink) Save(_ context.Context, snap *persist.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.last = snap
	m.saves++
	return nil
}

func (m *memorySink) Load(context.Context) (*persist.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last == nil {
		return nil, persist.ErrNoSnapshot
	}
	return m.last, nil
}

func (m *memorySink) Close() error { return nil }

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	snap := e.Snapshot()
	require.Contains(t, snap.Games, "111111111")

	// Mutating the snapshot must not reach the live store.
	snap.Games["111111111"].Name = "Mutated"
	_ = e.store.WithGameLock(func() error {
		assert.Equal(t, "Test Quiz", e.store.Games["111111111"].Name)
		return nil
	})
}

func TestSaveRestoreRoundTrip(t *testing.T) {
	sink := &memorySink{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	e := NewEngine(NewStore(), sink, logger)
	e.timerUnit = 10 * time.Millisecond

	_, err := e.Register("admin@example.com", "hunter2", "Admin")
	require.NoError(t, err)
	seedGame(e, "111111111", "admin@example.com", question(50, "Answer 1"))
	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	playerID, err := e.PlayerJoin("alice", sessionID)
	require.NoError(t, err)

	require.NoError(t, e.Save(context.Background()))

	snap, err := sink.Load(context.Background())
	require.NoError(t, err)

	restored := newTestEngine()
	restored.Restore(snap)

	games, err := restored.GetGamesFromAdmin("admin@example.com")
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.NotNil(t, games[0].ActiveSession)
	assert.Equal(t, sessionID, *games[0].ActiveSession)

	status, err := restored.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.Equal(t, []string{"alice"}, status.Players)

	got, err := restored.SessionIDForPlayer(playerID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)
}

func TestSaveWithoutSinkIsNoOp(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.Save(context.Background()))
}

func TestSaveSurfacesSinkError(t *testing.T) {
	sink := &memorySink{fail: errors.New("disk full")}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	e := NewEngine(NewStore(), sink, logger)
	err := e.Save(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
}

func TestRestoreEmptySnapshotKeepsStore(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	e.Restore(&persist.Snapshot{})

	games, err := e.GetGamesFromAdmin("admin@example.com")
	require.NoError(t, err)
	assert.Len(t, games, 1, "nil maps in a snapshot do not wipe the store")
}
