package rotation

import "github.com/rotisserie/eris"

// Position tags a side of the court for display.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

func ParsePosition(v string) (Position, error) {
	switch Position(v) {
	case PositionLeft, PositionRight:
		return Position(v), nil
	}
	return "", eris.Wrapf(ErrInvalidInput, "unknown court side %q", v)
}

// Side is one doubles team on a court.
type Side struct {
	Position Position  `json:"position"`
	Players  [2]Player `json:"players"`
}

// Pairing is one court's game: two sides of two players each.
type Pairing struct {
	Court int     `json:"court"`
	Sides [2]Side `json:"sides"`
}

func (p Pairing) PlayerIDs() []string {
	ids := make([]string, 0, 4)
	for _, s := range p.Sides {
		for _, pl := range s.Players {
			ids = append(ids, pl.ID)
		}
	}
	return ids
}

// Result is the outcome of one rotation decision.
type Result struct {
	Pairings []Pairing `json:"pairings"`
	// OddPlayerOut is informational; the engine never changes its status.
	OddPlayerOut *string `json:"odd_player_out,omitempty"`
	// Waiting lists eligible players held back this round other than the
	// odd player: full groups beyond court capacity and the rest of a
	// remainder.
	Waiting       []string    `json:"waiting"`
	Prioritized   []Candidate `json:"prioritized"`
	CourtCount    int         `json:"court_count"`
	FairnessScore int         `json:"fairness_score"`
	Metrics       Metrics     `json:"metrics"`
}

func (r Result) ScheduledIDs() []string {
	ids := make([]string, 0, len(r.Pairings)*4)
	for _, p := range r.Pairings {
		ids = append(ids, p.PlayerIDs()...)
	}
	return ids
}

func (r Result) candidate(id string) (Candidate, bool) {
	for _, c := range r.Prioritized {
		if c.Player.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}
