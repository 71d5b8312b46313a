package rotation

import "github.com/rotisserie/eris"

// Round is everything one rotation request produces: the decision, its
// explanation, and the roster the caller should persist afterwards.
type Round struct {
	Result      Result         `json:"result"`
	Explanation string         `json:"explanation"`
	Roster      []Player       `json:"-"`
	Changes     []StatusChange `json:"changes"`
}

// PlanRound runs one full rotation over a session roster: expired rests are
// lifted, the roster is narrowed to eligible players not listed in onCourt,
// pairings are generated and scored against the whole roster, and rest
// countdowns are advanced. roster is not modified.
func PlanRound(roster []Player, history []CompletedGame, courtCount int, onCourt ...string) (Round, error) {
	seen := make(map[string]struct{}, len(roster))
	for _, p := range roster {
		if err := p.Validate(); err != nil {
			return Round{}, err
		}
		if _, ok := seen[p.ID]; ok {
			return Round{}, eris.Wrapf(ErrInvalidInput, "duplicate player id %s in roster", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	current, changes := ExpireRests(roster)

	busy := make(map[string]struct{}, len(onCourt))
	for _, id := range onCourt {
		busy[id] = struct{}{}
	}
	eligible := make([]Player, 0, len(current))
	for _, p := range Eligible(current) {
		if _, ok := busy[p.ID]; !ok {
			eligible = append(eligible, p)
		}
	}

	res, err := GenerateRotation(eligible, history, courtCount)
	if err != nil {
		return Round{}, err
	}

	counts, err := rosterCounts(current, history)
	if err != nil {
		return Round{}, err
	}
	res.Metrics = Score(counts, res.Pairings)
	res.FairnessScore = res.Metrics.Score

	return Round{
		Result:      res,
		Explanation: ExplainRotation(res, counts),
		Roster:      TickRests(current),
		Changes:     changes,
	}, nil
}

func rosterCounts(roster []Player, history []CompletedGame) ([]int, error) {
	counts := make([]int, len(roster))
	if len(history) == 0 {
		for i, p := range roster {
			counts[i] = p.GamesPlayed
		}
		return counts, nil
	}
	tallies, err := TallyGames(history)
	if err != nil {
		return nil, err
	}
	for i, p := range roster {
		counts[i] = tallies[p.ID].Games
	}
	return counts, nil
}
