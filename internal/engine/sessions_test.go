// internal/engine/sessions_test.go
package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartGameInitialStatus(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"), question(5, "Answer 2"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.False(t, status.AnswerAvailable)
	assert.Nil(t, status.IsoTimeLastQuestionStarted)
	assert.Equal(t, -1, status.Position)
	assert.Empty(t, status.Players)
	assert.Len(t, status.Questions, 2)
}

func TestStartGameRejectsSecondActiveSession(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	_, err := e.StartGame("111111111")
	require.NoError(t, err)

	_, err = e.StartGame("111111111")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 1, activeSessionCount(e, "111111111"))

	// Ending the session frees the game for a new one.
	require.NoError(t, e.EndGame("111111111"))
	_, err = e.StartGame("111111111")
	require.NoError(t, err)
	assert.Equal(t, 1, activeSessionCount(e, "111111111"))
}

func TestStartGameUnknownGame(t *testing.T) {
	e := newTestEngine()

	_, err := e.StartGame("999999999")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
}

func TestSessionQuestionsAreSnapshotted(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)

	// Mutating the game after start must not leak into the session.
	_ = e.store.WithGameLock(func() error {
		e.store.Games["111111111"].Questions[0].CorrectAnswers[0] = "Changed"
		return nil
	})

	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Answer 1"}, status.Questions[0].CorrectAnswers)
}

func TestAdvanceThroughAllQuestionsEndsSession(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com",
		question(50, "Answer 1"), question(50, "Answer 2"), question(50, "Answer 3"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)

	for want := 0; want < 3; want++ {
		pos, err := e.AdvanceGame("111111111")
		require.NoError(t, err)
		assert.Equal(t, want, pos)

		status, err := e.GetSessionStatus(sessionID)
		require.NoError(t, err)
		assert.True(t, status.Active)
		assert.NotNil(t, status.IsoTimeLastQuestionStarted)
	}

	// Advancing past the last question ends the session.
	pos, err := e.AdvanceGame("111111111")
	require.NoError(t, err)
	assert.Equal(t, 3, pos)

	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.Equal(t, 3, status.Position)

	// Nothing left to advance or end.
	_, err = e.AdvanceGame("111111111")
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	require.ErrorAs(t, e.EndGame("111111111"), &inputErr)
}

func TestAdvanceWithoutActiveSession(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	var inputErr *InputError
	_, err := e.AdvanceGame("111111111")
	require.ErrorAs(t, err, &inputErr)
	require.ErrorAs(t, e.EndGame("111111111"), &inputErr)
}

func TestTimerRevealsAnswers(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(20, "Answer 1"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	playerID, err := e.PlayerJoin("alice", sessionID)
	require.NoError(t, err)

	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)

	// Not yet revealed: the question runs for 200ms in test time.
	_, err = e.GetAnswers(playerID)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)

	require.Eventually(t, func() bool {
		answers, err := e.GetAnswers(playerID)
		return err == nil && len(answers) == 1 && answers[0] == "Answer 1"
	}, time.Second, 5*time.Millisecond, "answers should become available after the question duration")
}

func TestAdvanceRearmsTimerAndHidesAnswers(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(1, "Answer 1"), question(50, "Answer 2"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	playerID, err := e.PlayerJoin("alice", sessionID)
	require.NoError(t, err)

	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		_, err := e.GetAnswers(playerID)
		return err == nil
	}, time.Second, 5*time.Millisecond)

	// The next question hides answers again; its long timer keeps them
	// hidden.
	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)

	_, err = e.GetAnswers(playerID)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)

	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.False(t, status.AnswerAvailable)
}

func TestEndGameCancelsPendingTimer(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(3, "Answer 1"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)

	require.NoError(t, e.EndGame("111111111"))

	// Wait well past the question duration; the flag must stay down.
	time.Sleep(100 * time.Millisecond)
	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.False(t, status.AnswerAvailable, "a cancelled timer must not flip answerAvailable")
	assert.False(t, status.Active)
}

func TestStaleTimerFireIsNoOp(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(3, "Answer 1"), question(50, "Answer 2"))

	sessionID, err := e.StartGame("111111111")
	require.NoError(t, err)
	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)

	// Simulate the first question's timer firing after the session has
	// already advanced to the next question.
	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)
	e.revealAnswers(sessionID, 0)

	status, err := e.GetSessionStatus(sessionID)
	require.NoError(t, err)
	assert.False(t, status.AnswerAvailable)
	assert.Equal(t, 1, status.Position)
}

func TestMutateGameDispatch(t *testing.T) {
	e := newTestEngine()
	seedGame(e, "111111111", "admin@example.com", question(5, "Answer 1"))

	result, err := e.MutateGame("111111111", "start")
	require.NoError(t, err)
	assert.Equal(t, "started", result.Status)
	assert.NotEmpty(t, result.SessionID)

	result, err = e.MutateGame("111111111", "ADVANCE")
	require.NoError(t, err)
	assert.Equal(t, "advanced", result.Status)
	require.NotNil(t, result.Position)
	assert.Equal(t, 0, *result.Position)

	result, err = e.MutateGame("111111111", "End")
	require.NoError(t, err)
	assert.Equal(t, "ended", result.Status)

	var inputErr *InputError
	_, err = e.MutateGame("111111111", "PAUSE")
	require.ErrorAs(t, err, &inputErr)
}

func TestSessionLifecycleEvents(t *testing.T) {
	e := newTestEngine()
	rec := &eventRecorder{}
	e.OnEvent = rec.record
	seedGame(e, "111111111", "admin@example.com", question(1, "Answer 1"))

	_, err := e.StartGame("111111111")
	require.NoError(t, err)
	_, err = e.AdvanceGame("111111111")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		types := rec.types()
		return len(types) == 2 &&
			types[0] == EventQuestionAdvanced &&
			types[1] == EventAnswersAvailable
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, e.EndGame("111111111"))
	types := rec.types()
	assert.Equal(t, EventSessionEnded, types[len(types)-1])
}
