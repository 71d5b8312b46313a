package rotation

import "github.com/rotisserie/eris"

// StatusChange records a transition applied to a player, for the caller to
// persist.
type StatusChange struct {
	PlayerID string `json:"player_id"`
	From     Status `json:"from"`
	To       Status `json:"to"`
	Reason   string `json:"reason"`
}

const (
	ReasonRequested   = "requested"
	ReasonRestExpired = "rest_expired"
)

// Transition moves p to the target status. restGames is only consulted when
// entering RESTING; a non-positive value falls back to the player's rest
// preference.
func Transition(p Player, to Status, restGames int) (Player, error) {
	if !to.Valid() {
		return p, eris.Wrapf(ErrInvalidTransition, "unknown target status %d", int(to))
	}

	switch p.Status {
	case StatusLeft:
		if to == StatusLeft {
			return p, nil
		}
		return p, eris.Wrapf(ErrInvalidTransition, "player %s has left and cannot become %s", p.ID, to)
	case StatusActive, StatusResting:
	default:
		return p, eris.Wrapf(ErrInvalidTransition, "player %s has unknown status %d", p.ID, int(p.Status))
	}

	switch to {
	case StatusActive:
		p.Status = StatusActive
		p.RestGamesRemaining = 0
	case StatusResting:
		if restGames <= 0 {
			restGames = p.restLength()
		}
		p.Status = StatusResting
		p.RestGamesRemaining = restGames
	case StatusLeft:
		p.Status = StatusLeft
		p.RestGamesRemaining = 0
	}
	return p, nil
}

func Rest(p Player, games int) (Player, error) {
	return Transition(p, StatusResting, games)
}

func Activate(p Player) (Player, error) {
	return Transition(p, StatusActive, 0)
}

func Leave(p Player) (Player, error) {
	return Transition(p, StatusLeft, 0)
}

// ExpireRests returns a copy of roster where every RESTING player whose
// countdown reached zero is ACTIVE again. It runs before eligibility
// filtering.
func ExpireRests(roster []Player) ([]Player, []StatusChange) {
	out := make([]Player, len(roster))
	var changes []StatusChange
	for i, p := range roster {
		if p.Status == StatusResting && p.RestGamesRemaining == 0 {
			p.Status = StatusActive
			changes = append(changes, StatusChange{
				PlayerID: p.ID,
				From:     StatusResting,
				To:       StatusActive,
				Reason:   ReasonRestExpired,
			})
		}
		out[i] = p
	}
	return out, changes
}

// TickRests returns a copy of roster with every positive rest countdown
// decremented by one. It runs once per generated rotation.
func TickRests(roster []Player) []Player {
	out := make([]Player, len(roster))
	for i, p := range roster {
		if p.RestGamesRemaining > 0 {
			p.RestGamesRemaining--
		}
		out[i] = p
	}
	return out
}
