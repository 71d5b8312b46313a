package rotation

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Status is the participation state of a player within a session.
type Status int

const (
	StatusActive Status = iota + 1
	StatusResting
	StatusLeft
)

const DefaultRestGames = 1

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusResting:
		return "RESTING"
	case StatusLeft:
		return "LEFT"
	}
	return "UNKNOWN"
}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusResting, StatusLeft:
		return true
	}
	return false
}

// ParseStatus accepts the canonical upper-case names, case-insensitively.
func ParseStatus(v string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case "ACTIVE":
		return StatusActive, nil
	case "RESTING":
		return StatusResting, nil
	case "LEFT":
		return StatusLeft, nil
	}
	return 0, eris.Wrapf(ErrInvalidInput, "unknown status %q", v)
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, eris.Errorf("cannot marshal status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Player is a snapshot of one session participant as seen by the engine.
type Player struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Status             Status    `json:"status"`
	GamesPlayed        int       `json:"games_played"`
	Wins               int       `json:"wins"`
	Losses             int       `json:"losses"`
	RestGamesRemaining int       `json:"rest_games_remaining"`
	RestPreference     int       `json:"rest_preference"`
	JoinedAt           time.Time `json:"joined_at"`
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return eris.Wrap(ErrInvalidInput, "player id is empty")
	}
	if strings.TrimSpace(p.Name) == "" {
		return eris.Wrapf(ErrInvalidInput, "player %s has no name", p.ID)
	}
	if !p.Status.Valid() {
		return eris.Wrapf(ErrInvalidInput, "player %s has unknown status %d", p.ID, int(p.Status))
	}
	if p.GamesPlayed < 0 || p.Wins < 0 || p.Losses < 0 || p.RestGamesRemaining < 0 || p.RestPreference < 0 {
		return eris.Wrapf(ErrInvalidInput, "player %s has a negative counter", p.ID)
	}
	if p.Wins+p.Losses > p.GamesPlayed {
		return eris.Wrapf(ErrInvalidInput, "player %s has %d wins and %d losses over %d games",
			p.ID, p.Wins, p.Losses, p.GamesPlayed)
	}
	return nil
}

func (p Player) restLength() int {
	if p.RestPreference > 0 {
		return p.RestPreference
	}
	return DefaultRestGames
}

// Candidate is an eligible player together with the ordering inputs used
// for one rotation decision.
type Candidate struct {
	Player   Player `json:"player"`
	Games    int    `json:"games"`
	Priority int    `json:"priority"`
	Rank     int    `json:"rank"`
}

// NameKey is the case-insensitive uniqueness key for player names.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
