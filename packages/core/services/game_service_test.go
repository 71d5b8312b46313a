package services

import (
	"testing"

	"core/models"
	"core/rotation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedGame(t *testing.T, f *fixture) (*models.Session, models.Game) {
	t.Helper()
	s := f.createSession(t, 1)
	f.join(t, s, "A", "B", "C", "D")
	resp, err := f.rotations.Generate(s.ID, RotationOptions{Start: true})
	require.NoError(t, err)
	require.Len(t, resp.Games, 1)
	return s, resp.Games[0]
}

func TestCompleteGame_CountsOnce(t *testing.T) {
	f := newFixture(t)
	s, game := startedGame(t, f)

	done, err := f.games.CompleteGame(s.ID, game.ID, "right")
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusCompleted, done.Status)
	require.NotNil(t, done.WinnerSide)
	assert.Equal(t, "right", *done.WinnerSide)
	assert.NotNil(t, done.CompletedAt)

	for _, id := range game.LeftIDs() {
		p := f.player(t, id)
		assert.Equal(t, 1, p.GamesPlayed)
		assert.Equal(t, 0, p.Wins)
		assert.Equal(t, 1, p.Losses)
	}
	for _, id := range game.RightIDs() {
		p := f.player(t, id)
		assert.Equal(t, 1, p.GamesPlayed)
		assert.Equal(t, 1, p.Wins)
		assert.Equal(t, 0, p.Losses)
	}

	_, err = f.games.CompleteGame(s.ID, game.ID, "left")
	assert.ErrorIs(t, err, ErrGameNotInProgress)
	assert.Equal(t, 1, f.player(t, game.LeftPlayer1ID).GamesPlayed)

	history, err := f.games.History(s.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, rotation.PositionRight, history[0].Winner)
	assert.Equal(t, game.LeftIDs(), history[0].Left)
}

func TestCompleteGame_Errors(t *testing.T) {
	f := newFixture(t)
	s, game := startedGame(t, f)

	_, err := f.games.CompleteGame(s.ID, game.ID, "middle")
	assert.ErrorIs(t, err, rotation.ErrInvalidInput)

	_, err = f.games.CompleteGame(s.ID, "missing", "left")
	assert.ErrorIs(t, err, ErrGameNotFound)

	other := f.createSession(t, 1)
	_, err = f.games.CompleteGame(other.ID, game.ID, "left")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCancelGame(t *testing.T) {
	f := newFixture(t)
	s, game := startedGame(t, f)

	cancelled, err := f.games.CancelGame(s.ID, game.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameStatusCancelled, cancelled.Status)
	assert.Zero(t, f.player(t, game.LeftPlayer1ID).GamesPlayed)

	_, err = f.games.CancelGame(s.ID, game.ID)
	assert.ErrorIs(t, err, ErrGameNotInProgress)

	// Cancelled players are free for the next rotation.
	resp, err := f.rotations.Generate(s.ID, RotationOptions{Start: true})
	require.NoError(t, err)
	assert.Len(t, resp.Games, 1)
}

func TestStartGames_RejectsPlayersAlreadyOnCourt(t *testing.T) {
	f := newFixture(t)
	s, _ := startedGame(t, f)

	players, err := f.roster.ListPlayers(s.ID)
	require.NoError(t, err)
	roster := make([]rotation.Player, 0, len(players))
	for _, p := range players {
		r, err := p.ToRecord()
		require.NoError(t, err)
		roster = append(roster, r)
	}
	result, err := rotation.GenerateRotation(roster, nil, 1)
	require.NoError(t, err)

	_, err = f.games.StartGames(s.ID, 2, result)
	assert.ErrorIs(t, err, rotation.ErrInvalidInput)
}

func TestListGames(t *testing.T) {
	f := newFixture(t)
	s, game := startedGame(t, f)

	all, err := f.games.ListGames(s.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, game.ID, all[0].ID)

	done, err := f.games.ListGames(s.ID, models.GameStatusCompleted)
	require.NoError(t, err)
	assert.Empty(t, done)
}
