package rotation

import (
	"cmp"
	"slices"

	"github.com/rotisserie/eris"
)

// GroupSize is the number of players on one doubles court.
const GroupSize = 4

// GenerateRotation assigns eligible players to courts. Players with the
// fewest games go first; ties fall back to join time, then id, so identical
// input always yields identical output.
//
// When history is non-empty it is the authoritative source of games played;
// otherwise the counters on the player records are used. Players in the
// result carry the counts the decision was made with.
//
// A remainder of 1-3 players that cannot fill a court is held back: the most
// played of them is reported as the odd player out and the rest wait.
func GenerateRotation(eligible []Player, history []CompletedGame, courtCount int) (Result, error) {
	if courtCount <= 0 {
		return Result{}, eris.Wrapf(ErrInvalidInput, "court count must be positive, got %d", courtCount)
	}
	if err := checkEligible(eligible); err != nil {
		return Result{}, err
	}

	var tallies map[string]Tally
	if len(history) > 0 {
		var err error
		tallies, err = TallyGames(history)
		if err != nil {
			return Result{}, err
		}
	}

	candidates := rank(eligible, tallies)
	res := Result{
		Pairings:    []Pairing{},
		Waiting:     []string{},
		Prioritized: candidates,
		CourtCount:  courtCount,
	}

	n := len(candidates)
	rem := n % GroupSize
	grouped, remainder := candidates[:n-rem], candidates[n-rem:]

	for g := 0; g*GroupSize < len(grouped); g++ {
		members := grouped[g*GroupSize : (g+1)*GroupSize]
		if g >= courtCount {
			for _, c := range members {
				res.Waiting = append(res.Waiting, c.Player.ID)
			}
			continue
		}
		res.Pairings = append(res.Pairings, Pairing{
			Court: g + 1,
			Sides: [2]Side{
				{Position: PositionLeft, Players: [2]Player{members[0].Player, members[1].Player}},
				{Position: PositionRight, Players: [2]Player{members[2].Player, members[3].Player}},
			},
		})
	}

	if rem > 0 {
		odd := remainder[rem-1].Player.ID
		res.OddPlayerOut = &odd
		for _, c := range remainder[:rem-1] {
			res.Waiting = append(res.Waiting, c.Player.ID)
		}
	}

	if err := res.Validate(); err != nil {
		return Result{}, err
	}

	counts := make([]int, len(candidates))
	for i, c := range candidates {
		counts[i] = c.Games
	}
	res.Metrics = Score(counts, res.Pairings)
	res.FairnessScore = res.Metrics.Score
	return res, nil
}

func checkEligible(eligible []Player) error {
	seen := make(map[string]struct{}, len(eligible))
	for _, p := range eligible {
		if err := p.Validate(); err != nil {
			return err
		}
		if p.Status != StatusActive {
			return eris.Wrapf(ErrInvalidInput, "player %s is %s and cannot be scheduled", p.ID, p.Status)
		}
		if _, ok := seen[p.ID]; ok {
			return eris.Wrapf(ErrInvalidInput, "duplicate player id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

func rank(eligible []Player, tallies map[string]Tally) []Candidate {
	out := make([]Candidate, len(eligible))
	for i, p := range eligible {
		if tallies != nil {
			t := tallies[p.ID]
			p.GamesPlayed, p.Wins, p.Losses = t.Games, t.Wins, t.Losses
		}
		out[i] = Candidate{Player: p, Games: p.GamesPlayed}
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(a.Games, b.Games); c != 0 {
			return c
		}
		if c := a.Player.JoinedAt.Compare(b.Player.JoinedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Player.ID, b.Player.ID)
	})

	most := 0
	for _, c := range out {
		most = max(most, c.Games)
	}
	for i := range out {
		out[i].Priority = most - out[i].Games
		out[i].Rank = i + 1
	}
	return out
}

// Validate checks the structural invariants of a result. A failure on a
// freshly generated result is a generator bug.
func (r Result) Validate() error {
	if len(r.Pairings) > r.CourtCount {
		return eris.Wrapf(ErrInvariantViolation, "%d pairings for %d courts", len(r.Pairings), r.CourtCount)
	}

	courts := make(map[int]struct{}, len(r.Pairings))
	placed := make(map[string]int)
	for _, p := range r.Pairings {
		if p.Court < 1 || p.Court > r.CourtCount {
			return eris.Wrapf(ErrInvariantViolation, "court %d outside 1..%d", p.Court, r.CourtCount)
		}
		if _, ok := courts[p.Court]; ok {
			return eris.Wrapf(ErrInvariantViolation, "court %d assigned twice", p.Court)
		}
		courts[p.Court] = struct{}{}

		if p.Sides[0].Position == p.Sides[1].Position {
			return eris.Wrapf(ErrInvariantViolation, "court %d has both sides on %q", p.Court, p.Sides[0].Position)
		}
		for _, s := range p.Sides {
			if s.Players[0].ID == "" || s.Players[1].ID == "" {
				return eris.Wrapf(ErrInvariantViolation, "court %d %s side is short a player", p.Court, s.Position)
			}
			for _, pl := range s.Players {
				if prev, ok := placed[pl.ID]; ok {
					return eris.Wrapf(ErrInvariantViolation, "player %s placed on courts %d and %d", pl.ID, prev, p.Court)
				}
				placed[pl.ID] = p.Court
			}
		}
	}

	if r.OddPlayerOut != nil {
		if _, ok := placed[*r.OddPlayerOut]; ok {
			return eris.Wrapf(ErrInvariantViolation, "odd player %s is also scheduled", *r.OddPlayerOut)
		}
	}
	for _, id := range r.Waiting {
		if _, ok := placed[id]; ok {
			return eris.Wrapf(ErrInvariantViolation, "waiting player %s is also scheduled", id)
		}
		if r.OddPlayerOut != nil && *r.OddPlayerOut == id {
			return eris.Wrapf(ErrInvariantViolation, "odd player %s is also waiting", id)
		}
	}
	return nil
}
