package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainRotation_SingleCourt(t *testing.T) {
	players := []Player{
		newPlayer("Alice", 0, 0),
		newPlayer("Bob", 1, 1),
		newPlayer("Charlie", 2, 2),
		newPlayer("Diana", 3, 3),
	}
	res, err := GenerateRotation(players, nil, 2)
	require.NoError(t, err)

	got := ExplainRotation(res, []int{0, 1, 2, 3})

	want := "Players with the fewest games played go first: Alice (0), Bob (1), Charlie (2), Diana (3).\n" +
		"Court 1: Alice & Bob vs Charlie & Diana.\n" +
		"Fairness score: 70/100 (good), spread of 3 games among scheduled players; roster ranges from 0 to 3 games."
	assert.Equal(t, want, got)
}

func TestExplainRotation_SittingOut(t *testing.T) {
	players := []Player{
		newPlayer("Alice", 0, 0),
		newPlayer("Bob", 1, 1),
		newPlayer("Charlie", 2, 2),
	}
	res, err := GenerateRotation(players, nil, 1)
	require.NoError(t, err)

	got := ExplainRotation(res, []int{0, 1, 2})

	assert.Contains(t, got, "No games this round: 3 players eligible, 4 needed to fill a court.")
	assert.Contains(t, got, "Charlie sits out as the odd player out, with 2 games the most")
	assert.Contains(t, got, "Waiting for a full group of 4: Alice, Bob.")
	assert.Contains(t, got, "Fairness score: 100/100 (excellent)")
}

func TestExplainRotation_OverCapacity(t *testing.T) {
	players := roster(0, 0, 0, 0, 1, 1, 1, 1, 2)
	res, err := GenerateRotation(players, nil, 1)
	require.NoError(t, err)

	got := ExplainRotation(res, []int{0, 0, 0, 0, 1, 1, 1, 1, 2})

	assert.Contains(t, got, "Waiting for a free court (1 court in use): P05, P06, P07, P08.")
	assert.Contains(t, got, "P09 sits out as the odd player out, with 2 games")
	assert.Contains(t, got, "Fairness score: 100/100 (excellent), spread of 0 games")
}

func TestExplainRotation_MalformedResultPanics(t *testing.T) {
	bad := Result{
		CourtCount: 1,
		Pairings: []Pairing{{
			Court: 1,
			Sides: [2]Side{{Position: PositionLeft}, {Position: PositionRight}},
		}},
	}
	assert.Panics(t, func() { ExplainRotation(bad, nil) })
}
