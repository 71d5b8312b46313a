package rotation

import (
	"fmt"
	"strings"
)

// ExplainRotation renders a result as a short rationale for display.
// allRosterCounts are the games-played counts of the whole roster. A result
// that fails Validate is a programming error and panics.
func ExplainRotation(result Result, allRosterCounts []int) string {
	if err := result.Validate(); err != nil {
		panic(fmt.Sprintf("rotation: explaining malformed result: %v", err))
	}
	m := Score(allRosterCounts, result.Pairings)

	var b strings.Builder
	if len(result.Pairings) == 0 {
		fmt.Fprintf(&b, "No games this round: %s eligible, %d needed to fill a court.",
			plural(len(result.Prioritized), "player"), GroupSize)
	} else {
		names := make([]string, 0, len(result.Pairings)*GroupSize)
		for _, id := range result.ScheduledIDs() {
			c, _ := result.candidate(id)
			names = append(names, fmt.Sprintf("%s (%d)", displayName(c, id), c.Games))
		}
		fmt.Fprintf(&b, "Players with the fewest games played go first: %s.", strings.Join(names, ", "))
		for _, p := range result.Pairings {
			fmt.Fprintf(&b, "\nCourt %d: %s vs %s.", p.Court, sideNames(p.Sides[0]), sideNames(p.Sides[1]))
		}
	}

	grouped := len(result.Prioritized) - len(result.Prioritized)%GroupSize
	var overCapacity, heldBack []string
	for _, id := range result.Waiting {
		c, _ := result.candidate(id)
		if c.Rank > 0 && c.Rank <= grouped {
			overCapacity = append(overCapacity, displayName(c, id))
		} else {
			heldBack = append(heldBack, displayName(c, id))
		}
	}
	if result.OddPlayerOut != nil {
		c, _ := result.candidate(*result.OddPlayerOut)
		fmt.Fprintf(&b, "\n%s sits out as the odd player out, with %s the most among players left without a full group.",
			displayName(c, *result.OddPlayerOut), plural(c.Games, "game"))
	}
	if len(heldBack) > 0 {
		fmt.Fprintf(&b, "\nWaiting for a full group of %d: %s.", GroupSize, strings.Join(heldBack, ", "))
	}
	if len(overCapacity) > 0 {
		fmt.Fprintf(&b, "\nWaiting for a free court (%s in use): %s.",
			plural(result.CourtCount, "court"), strings.Join(overCapacity, ", "))
	}

	fmt.Fprintf(&b, "\nFairness score: %d/100 (%s), spread of %s among scheduled players",
		m.Score, m.Label, plural(m.ScheduledSpread, "game"))
	if m.RosterCount > 0 {
		fmt.Fprintf(&b, "; roster ranges from %d to %d games", m.RosterMin, m.RosterMax)
	}
	b.WriteString(".")
	return b.String()
}

func sideNames(s Side) string {
	return s.Players[0].Name + " & " + s.Players[1].Name
}

func displayName(c Candidate, id string) string {
	if c.Player.Name != "" {
		return c.Player.Name
	}
	return id
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
