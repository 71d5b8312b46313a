package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRoster() []Player {
	rita := newPlayer("Rita", 0, 4)
	rita.Status = StatusResting
	rita.RestGamesRemaining = 1
	leo := newPlayer("Leo", 5, 5)
	leo.Status = StatusLeft

	return []Player{
		newPlayer("Alice", 0, 0),
		newPlayer("Bob", 1, 1),
		newPlayer("Charlie", 2, 2),
		newPlayer("Diana", 3, 3),
		rita,
		leo,
	}
}

func TestPlanRound_RestingAndLeftAreExcluded(t *testing.T) {
	round, err := PlanRound(sessionRoster(), nil, 2)
	require.NoError(t, err)

	res := round.Result
	require.Len(t, res.Pairings, 1)
	assert.ElementsMatch(t, []string{"id-Alice", "id-Bob", "id-Charlie", "id-Diana"}, res.ScheduledIDs())
	assert.Nil(t, res.OddPlayerOut)
	assert.Empty(t, round.Changes)

	assert.Equal(t, 6, res.Metrics.RosterCount)
	assert.Equal(t, 5, res.Metrics.RosterMax)
	assert.Contains(t, round.Explanation, "Court 1: Alice & Bob vs Charlie & Diana.")

	// Rita's countdown advanced but she is still resting until the next call.
	rita := round.Roster[4]
	assert.Equal(t, StatusResting, rita.Status)
	assert.Equal(t, 0, rita.RestGamesRemaining)
}

func TestPlanRound_RestExpiresOnNextRotation(t *testing.T) {
	first, err := PlanRound(sessionRoster(), nil, 2)
	require.NoError(t, err)

	second, err := PlanRound(first.Roster, nil, 2)
	require.NoError(t, err)

	require.Len(t, second.Changes, 1)
	assert.Equal(t, "id-Rita", second.Changes[0].PlayerID)
	assert.Equal(t, StatusActive, second.Changes[0].To)
	assert.Equal(t, StatusActive, second.Roster[4].Status)

	res := second.Result
	assert.Contains(t, res.ScheduledIDs(), "id-Rita")
	assert.NotContains(t, res.ScheduledIDs(), "id-Leo")
	require.NotNil(t, res.OddPlayerOut)
	assert.Equal(t, "id-Diana", *res.OddPlayerOut)
}

func TestPlanRound_SkipsPlayersOnCourt(t *testing.T) {
	round, err := PlanRound(roster(0, 0, 0, 0, 0, 0, 0, 0), nil, 2, "id-P01", "id-P02")
	require.NoError(t, err)

	res := round.Result
	require.Len(t, res.Pairings, 1)
	assert.NotContains(t, res.ScheduledIDs(), "id-P01")
	assert.NotContains(t, res.ScheduledIDs(), "id-P02")
	require.NotNil(t, res.OddPlayerOut)
	assert.Equal(t, "id-P08", *res.OddPlayerOut)
	assert.Equal(t, []string{"id-P07"}, res.Waiting)
}

func TestPlanRound_RejectsBadRoster(t *testing.T) {
	dup := append(roster(0, 1), roster(2)...)
	_, err := PlanRound(dup, nil, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = PlanRound(roster(0, 1, 2, 3), nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
