package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	return NewApp(NewMemoryRepository())
}

func TestCreateSessionStoresAdminAndStartsActive(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	assert.NotEmpty(t, data.SessionID)
	assert.Equal(t, "A1", data.AdminUserID)
	assert.True(t, data.IsActive)
	assert.Empty(t, data.Questions)
}

func TestSubmitQuestionRejectsBlankText(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := app.SubmitQuestion(ctx, data.SessionID, text)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
}

func TestSubmitQuestionUnknownSession(t *testing.T) {
	app := newTestApp(t)

	_, err := app.SubmitQuestion(context.Background(), "nope", "What time?")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestVoteMaintainsVotersInvariant(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	q, err := app.SubmitQuestion(ctx, data.SessionID, "What time?")
	require.NoError(t, err)

	voted, err := app.Vote(ctx, data.SessionID, q.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, voted.Votes)
	assert.Equal(t, []string{"u1"}, voted.Voters)

	voted, err = app.Vote(ctx, data.SessionID, q.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, voted.Votes)
	assert.Len(t, voted.Voters, voted.Votes)
}

func TestVoteRejectsDoubleVote(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	q, err := app.SubmitQuestion(ctx, data.SessionID, "What time?")
	require.NoError(t, err)

	_, err = app.Vote(ctx, data.SessionID, q.ID, "u1")
	require.NoError(t, err)

	_, err = app.Vote(ctx, data.SessionID, q.ID, "u1")
	require.ErrorIs(t, err, ErrAlreadyVoted)

	questions, err := app.Questions(ctx, data.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, questions[0].Votes, "rejected vote must not change the count")
}

func TestVoteUnknownQuestion(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	_, err = app.Vote(ctx, data.SessionID, "nope", "u1")
	require.ErrorIs(t, err, ErrQuestionNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestQuestionsSortedByVotesDescending(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	low, err := app.SubmitQuestion(ctx, data.SessionID, "low")
	require.NoError(t, err)
	high, err := app.SubmitQuestion(ctx, data.SessionID, "high")
	require.NoError(t, err)

	for _, user := range []string{"u1", "u2"} {
		_, err := app.Vote(ctx, data.SessionID, high.ID, user)
		require.NoError(t, err)
	}
	_, err = app.Vote(ctx, data.SessionID, low.ID, "u1")
	require.NoError(t, err)

	questions, err := app.Questions(ctx, data.SessionID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, high.ID, questions[0].ID)
	assert.Equal(t, low.ID, questions[1].ID)
}

func TestIsAdmin(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	isAdmin, err := app.IsAdmin(ctx, data.SessionID, "A1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = app.IsAdmin(ctx, data.SessionID, "someone-else")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unknown sessions report false rather than an error.
	isAdmin, err = app.IsAdmin(ctx, "nope", "A1")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestEndSessionRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	err = app.EndSession(ctx, data.SessionID, "not-the-admin")
	require.ErrorIs(t, err, ErrNotAdmin)

	// Session is still alive.
	_, err = app.Questions(ctx, data.SessionID)
	require.NoError(t, err)
}

func TestEndSessionDeletesAllState(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	data, err := app.CreateSession(ctx, "A1")
	require.NoError(t, err)

	_, err = app.SubmitQuestion(ctx, data.SessionID, "What time?")
	require.NoError(t, err)

	require.NoError(t, app.EndSession(ctx, data.SessionID, "A1"))

	// Every subsequent operation on the id fails with a not-found condition.
	_, err = app.Questions(ctx, data.SessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = app.SubmitQuestion(ctx, data.SessionID, "too late")
	require.ErrorIs(t, err, ErrSessionNotFound)
	err = app.EndSession(ctx, data.SessionID, "A1")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
