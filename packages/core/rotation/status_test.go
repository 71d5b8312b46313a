package rotation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	active := newPlayer("Alice", 2, 0)
	resting := newPlayer("Rita", 2, 1)
	resting.Status = StatusResting
	resting.RestGamesRemaining = 2
	left := newPlayer("Leo", 2, 2)
	left.Status = StatusLeft

	tests := []struct {
		name     string
		from     Player
		to       Status
		rest     int
		wantErr  bool
		wantStat Status
		wantRest int
	}{
		{name: "active to resting uses default rest", from: active, to: StatusResting, wantStat: StatusResting, wantRest: 1},
		{name: "active to resting with explicit games", from: active, to: StatusResting, rest: 3, wantStat: StatusResting, wantRest: 3},
		{name: "resting to active clears countdown", from: resting, to: StatusActive, wantStat: StatusActive, wantRest: 0},
		{name: "resting again refreshes countdown", from: resting, to: StatusResting, rest: 4, wantStat: StatusResting, wantRest: 4},
		{name: "active to left", from: active, to: StatusLeft, wantStat: StatusLeft},
		{name: "resting to left", from: resting, to: StatusLeft, wantStat: StatusLeft},
		{name: "left stays left", from: left, to: StatusLeft, wantStat: StatusLeft},
		{name: "left to active rejected", from: left, to: StatusActive, wantErr: true},
		{name: "left to resting rejected", from: left, to: StatusResting, wantErr: true},
		{name: "unknown target rejected", from: active, to: Status(42), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.to, tt.rest)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStat, got.Status)
			assert.Equal(t, tt.wantRest, got.RestGamesRemaining)
			assert.Equal(t, tt.from.GamesPlayed, got.GamesPlayed, "counters are kept")
		})
	}
}

func TestRest_UsesPreference(t *testing.T) {
	p := newPlayer("Pat", 0, 0)
	p.RestPreference = 3

	got, err := Rest(p, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, got.RestGamesRemaining)

	back, err := Activate(got)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, back.Status)

	gone, err := Leave(back)
	require.NoError(t, err)
	_, err = Activate(gone)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExpireAndTickRests(t *testing.T) {
	due := newPlayer("Due", 0, 0)
	due.Status = StatusResting
	pending := newPlayer("Pending", 0, 1)
	pending.Status = StatusResting
	pending.RestGamesRemaining = 2
	active := newPlayer("Active", 0, 2)
	in := []Player{due, pending, active}

	expired, changes := ExpireRests(in)
	assert.Equal(t, StatusResting, in[0].Status, "input is not modified")
	assert.Equal(t, StatusActive, expired[0].Status)
	assert.Equal(t, StatusResting, expired[1].Status)
	assert.Equal(t, []StatusChange{{PlayerID: due.ID, From: StatusResting, To: StatusActive, Reason: ReasonRestExpired}}, changes)

	ticked := TickRests(expired)
	assert.Equal(t, 2, expired[1].RestGamesRemaining, "input is not modified")
	assert.Equal(t, 1, ticked[1].RestGamesRemaining)
	assert.Equal(t, 0, ticked[0].RestGamesRemaining)
	assert.Equal(t, 0, ticked[2].RestGamesRemaining)
}

func TestEligible(t *testing.T) {
	players := roster(0, 1, 2, 3, 4)
	players[1].Status = StatusResting
	players[1].RestGamesRemaining = 1
	players[3].Status = StatusLeft

	got := Eligible(players)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"id-P01", "id-P03", "id-P05"}, []string{got[0].ID, got[1].ID, got[2].ID})

	excluded := Excluded(players)
	assert.Equal(t, []string{"id-P02"}, excluded[StatusResting])
	assert.Equal(t, []string{"id-P04"}, excluded[StatusLeft])
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{StatusActive, StatusResting, StatusLeft} {
		b, err := json.Marshal(s)
		require.NoError(t, err)
		var back Status
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, s, back)
	}

	got, err := ParseStatus(" resting ")
	require.NoError(t, err)
	assert.Equal(t, StatusResting, got)

	_, err = ParseStatus("sleeping")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = json.Marshal(Status(0))
	assert.Error(t, err)
}
