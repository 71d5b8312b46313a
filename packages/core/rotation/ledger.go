package rotation

import "github.com/rotisserie/eris"

// CompletedGame is one finished doubles game as recorded by the game ledger.
type CompletedGame struct {
	ID     string    `json:"id"`
	Court  int       `json:"court"`
	Left   [2]string `json:"left"`
	Right  [2]string `json:"right"`
	Winner Position  `json:"winner"`
}

// Tally is a per-player aggregate over the game ledger.
type Tally struct {
	Games  int `json:"games"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

func (g CompletedGame) Validate() error {
	seen := make(map[string]struct{}, 4)
	for _, id := range append(g.Left[:], g.Right[:]...) {
		if id == "" {
			return eris.Wrapf(ErrInvalidInput, "game %s has an empty player slot", g.ID)
		}
		if _, ok := seen[id]; ok {
			return eris.Wrapf(ErrInvalidInput, "game %s lists player %s twice", g.ID, id)
		}
		seen[id] = struct{}{}
	}
	if g.Winner != PositionLeft && g.Winner != PositionRight {
		return eris.Wrapf(ErrInvalidInput, "game %s has no winner", g.ID)
	}
	return nil
}

// TallyGames aggregates games, wins and losses per player id.
func TallyGames(history []CompletedGame) (map[string]Tally, error) {
	out := make(map[string]Tally)
	for _, g := range history {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		for _, id := range g.Left {
			out[id] = addResult(out[id], g.Winner == PositionLeft)
		}
		for _, id := range g.Right {
			out[id] = addResult(out[id], g.Winner == PositionRight)
		}
	}
	return out, nil
}

func addResult(t Tally, won bool) Tally {
	t.Games++
	if won {
		t.Wins++
	} else {
		t.Losses++
	}
	return t
}
