// internal/persist/file_test.go
package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigbrain-live/bigbrain/internal/models"
)

func TestFileSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	sink := NewFileSink(path)

	snap := NewSnapshot()
	snap.Admins["admin@example.com"] = &models.Admin{Name: "Admin", PasswordHash: "$argon2id$..."}
	snap.Games["111111111"] = &models.Game{
		Owner: "admin@example.com",
		Name:  "Test Quiz",
		Questions: []models.Question{{
			Text:            "What is the answer?",
			Answers:         []string{"Answer 1", "Answer 2"},
			DurationSeconds: 5,
			CorrectAnswers:  []string{"Answer 1"},
		}},
	}
	stamp := "2024-01-01T00:00:00.000Z"
	snap.Sessions["123456"] = &models.Session{
		GameID:                     "111111111",
		Position:                   0,
		IsoTimeLastQuestionStarted: &stamp,
		Players: map[string]*models.Player{
			"999999999": models.NewPlayer("alice", 1),
		},
		Questions: snap.Games["111111111"].Questions,
		Active:    true,
	}

	ctx := context.Background()
	require.NoError(t, sink.Save(ctx, snap))

	loaded, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestFileSinkLoadMissingFile(t *testing.T) {
	sink := NewFileSink(filepath.Join(t.TempDir(), "missing.json"))

	_, err := sink.Load(context.Background())
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestFileSinkLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileSink(path).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoSnapshot)
}

func TestFileSinkOverwritesPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.json")
	sink := NewFileSink(path)
	ctx := context.Background()

	first := NewSnapshot()
	first.Admins["a@example.com"] = &models.Admin{Name: "A"}
	require.NoError(t, sink.Save(ctx, first))

	second := NewSnapshot()
	second.Admins["b@example.com"] = &models.Admin{Name: "B"}
	require.NoError(t, sink.Save(ctx, second))

	loaded, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Admins, "a@example.com")
	assert.Contains(t, loaded.Admins, "b@example.com")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}
