package services

import (
	"testing"

	"core/models"
	"core/realtime"
	"core/rotation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(t *testing.T, f *fixture, ids []string) []string {
	t.Helper()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.player(t, id).Name)
	}
	return out
}

func TestGenerate_StartsGamesAndSkipsPlayersOnCourt(t *testing.T) {
	f := newFixture(t)
	s := f.createSession(t, 1)
	f.join(t, s, "A", "B", "C", "D", "E")

	resp, err := f.rotations.Generate(s.ID, RotationOptions{Start: true})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Number)
	require.Len(t, resp.Result.Pairings, 1)
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(t, f, resp.Result.Pairings[0].PlayerIDs()))
	require.NotNil(t, resp.Result.OddPlayerOut)
	assert.Equal(t, "E", f.player(t, *resp.Result.OddPlayerOut).Name)
	require.Len(t, resp.Games, 1)
	assert.Equal(t, models.GameStatusInProgress, resp.Games[0].Status)
	assert.Equal(t, 1, resp.Games[0].Court)
	assert.Contains(t, resp.Explanation, "Court 1: A & B vs C & D.")
	assert.Contains(t, f.publisher.types(), realtime.EventRotationGenerated)

	preview, err := f.rotations.Preview(s.ID)
	require.NoError(t, err)
	assert.True(t, preview.Preview)
	assert.Equal(t, 2, preview.Number)
	assert.Empty(t, preview.Result.Pairings)
	require.NotNil(t, preview.Result.OddPlayerOut)
	assert.Equal(t, "E", f.player(t, *preview.Result.OddPlayerOut).Name)

	var logs int64
	require.NoError(t, f.db.Model(&models.RotationLog{}).Count(&logs).Error)
	assert.Equal(t, int64(1), logs, "preview writes nothing")
}

func TestGenerate_UsesCompletedHistory(t *testing.T) {
	f := newFixture(t)
	s := f.createSession(t, 1)
	f.join(t, s, "A", "B", "C", "D", "E")

	first, err := f.rotations.Generate(s.ID, RotationOptions{Start: true})
	require.NoError(t, err)
	_, err = f.games.CompleteGame(s.ID, first.Games[0].ID, "left")
	require.NoError(t, err)

	second, err := f.rotations.Generate(s.ID, RotationOptions{Start: true})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Number)
	require.Len(t, second.Result.Pairings, 1)
	assert.Equal(t, []string{"E", "A", "B", "C"}, names(t, f, second.Result.Pairings[0].PlayerIDs()))
	require.NotNil(t, second.Result.OddPlayerOut)
	assert.Equal(t, "D", f.player(t, *second.Result.OddPlayerOut).Name)
	assert.Equal(t, 0, second.Result.Prioritized[0].Games)

	session, err := f.sessions.GetSession(s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.RotationCount)
}

func TestGenerate_RestCountdown(t *testing.T) {
	f := newFixture(t)
	s := f.createSession(t, 1)
	players := f.join(t, s, "A", "B", "C", "D", "Rita")
	rita := players[4]

	_, _, err := f.roster.ChangeStatus(s.ID, rita.ID, models.UpdatePlayerStatusRequest{Status: "RESTING"})
	require.NoError(t, err)

	first, err := f.rotations.Generate(s.ID, RotationOptions{})
	require.NoError(t, err)
	assert.Nil(t, first.Result.OddPlayerOut)
	assert.NotContains(t, first.Result.ScheduledIDs(), rita.ID)
	assert.Empty(t, first.Games)
	got := f.player(t, rita.ID)
	assert.Equal(t, "RESTING", got.Status)
	assert.Zero(t, got.RestGamesRemaining)

	second, err := f.rotations.Generate(s.ID, RotationOptions{})
	require.NoError(t, err)
	require.Len(t, second.Changes, 1)
	assert.Equal(t, rita.ID, second.Changes[0].PlayerID)
	assert.Equal(t, rotation.ReasonRestExpired, second.Changes[0].Reason)
	assert.Equal(t, "ACTIVE", f.player(t, rita.ID).Status)
	require.NotNil(t, second.Result.OddPlayerOut)
	assert.Equal(t, rita.ID, *second.Result.OddPlayerOut)
}

func TestGenerate_UnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.rotations.Generate("missing", RotationOptions{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.rotations.Preview("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
