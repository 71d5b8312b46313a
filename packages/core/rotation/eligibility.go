package rotation

// Eligible returns the ACTIVE players of roster in input order. It is
// recomputed on every call; statuses may change between rotations.
func Eligible(roster []Player) []Player {
	out := make([]Player, 0, len(roster))
	for _, p := range roster {
		switch p.Status {
		case StatusActive:
			out = append(out, p)
		case StatusResting, StatusLeft:
		}
	}
	return out
}

// Excluded returns the ids of players filtered out of roster, grouped by
// status, for explanations.
func Excluded(roster []Player) map[Status][]string {
	out := make(map[Status][]string)
	for _, p := range roster {
		switch p.Status {
		case StatusResting, StatusLeft:
			out[p.Status] = append(out[p.Status], p.ID)
		case StatusActive:
		}
	}
	return out
}
