package rotation

import "math"

// SpreadPenalty is the score lost per game of spread between the most and
// least played scheduled players. A spread of 10 games scores 0.
const SpreadPenalty = 10

// Metrics summarises how evenly court time is distributed.
type Metrics struct {
	Score                int     `json:"score"`
	Label                string  `json:"label"`
	ScheduledCount       int     `json:"scheduled_count"`
	ScheduledMin         int     `json:"scheduled_min"`
	ScheduledMax         int     `json:"scheduled_max"`
	ScheduledSpread      int     `json:"scheduled_spread"`
	ScheduledVariance    float64 `json:"scheduled_variance"`
	RosterCount          int     `json:"roster_count"`
	RosterMin            int     `json:"roster_min"`
	RosterMax            int     `json:"roster_max"`
	RosterSpread         int     `json:"roster_spread"`
	RosterMean           float64 `json:"roster_mean"`
	LeastPlayedScheduled bool    `json:"least_played_scheduled"`
}

// Score rates a set of pairings from 0 (maximum imbalance) to 100 (every
// scheduled player has played the same number of games). rosterCounts are
// the games-played counts of the whole roster and only feed the roster
// figures of the returned metrics.
func Score(rosterCounts []int, pairings []Pairing) Metrics {
	scheduled := make([]int, 0, len(pairings)*4)
	for _, p := range pairings {
		for _, s := range p.Sides {
			for _, pl := range s.Players {
				scheduled = append(scheduled, pl.GamesPlayed)
			}
		}
	}

	m := Metrics{
		ScheduledCount: len(scheduled),
		RosterCount:    len(rosterCounts),
	}
	m.ScheduledMin, m.ScheduledMax = bounds(scheduled)
	m.ScheduledSpread = m.ScheduledMax - m.ScheduledMin
	m.ScheduledVariance = variance(scheduled)

	m.RosterMin, m.RosterMax = bounds(rosterCounts)
	m.RosterSpread = m.RosterMax - m.RosterMin
	m.RosterMean = mean(rosterCounts)
	if len(scheduled) > 0 && len(rosterCounts) > 0 {
		m.LeastPlayedScheduled = m.ScheduledMin <= m.RosterMin
	}

	m.Score = ScoreSpread(m.ScheduledSpread)
	m.Label = Label(m.Score)
	return m
}

// ScoreSpread maps a games-played spread onto [0, 100].
func ScoreSpread(spread int) int {
	if spread < 0 {
		spread = -spread
	}
	score := 100 - spread*SpreadPenalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Label names a fairness score band.
func Label(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "needs balance"
	}
}

func bounds(vals []int) (int, int) {
	if len(vals) == 0 {
		return 0, 0
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return round2(float64(sum) / float64(len(vals)))
}

func variance(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	avg := float64(sum) / float64(len(vals))
	acc := 0.0
	for _, v := range vals {
		d := float64(v) - avg
		acc += d * d
	}
	return round2(acc / float64(len(vals)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
