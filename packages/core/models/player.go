package models

import (
	"time"

	"core/rotation"

	"gorm.io/gorm"
)

type Player struct {
	ID                 string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	SessionID          string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_players_session_name,priority:1" json:"session_id"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	NameKey            string         `gorm:"size:100;not null;uniqueIndex:idx_players_session_name,priority:2" json:"-"`
	Status             string         `gorm:"size:20;not null" json:"status"` // ACTIVE, RESTING, LEFT
	GamesPlayed        int            `gorm:"not null" json:"games_played"`
	Wins               int            `gorm:"not null" json:"wins"`
	Losses             int            `gorm:"not null" json:"losses"`
	RestGamesRemaining int            `gorm:"not null" json:"rest_games_remaining"`
	RestPreference     int            `gorm:"not null" json:"rest_preference"`
	JoinedAt           time.Time      `gorm:"not null" json:"joined_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string {
	return "session_players"
}

// ToRecord converts the row into the snapshot the rotation engine works on.
func (p Player) ToRecord() (rotation.Player, error) {
	status, err := rotation.ParseStatus(p.Status)
	if err != nil {
		return rotation.Player{}, err
	}
	return rotation.Player{
		ID:                 p.ID,
		Name:               p.Name,
		Status:             status,
		GamesPlayed:        p.GamesPlayed,
		Wins:               p.Wins,
		Losses:             p.Losses,
		RestGamesRemaining: p.RestGamesRemaining,
		RestPreference:     p.RestPreference,
		JoinedAt:           p.JoinedAt,
	}, nil
}

// ApplyRecord copies the mutable fields of an engine snapshot back onto the
// row. Identity and join time never change.
func (p *Player) ApplyRecord(r rotation.Player) {
	p.Status = r.Status.String()
	p.GamesPlayed = r.GamesPlayed
	p.Wins = r.Wins
	p.Losses = r.Losses
	p.RestGamesRemaining = r.RestGamesRemaining
	p.RestPreference = r.RestPreference
}

type JoinSessionRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	RestPreference int    `json:"rest_preference,omitempty" binding:"omitempty,min=1,max=5"`
}

type UpdatePlayerStatusRequest struct {
	Status    string `json:"status" binding:"required"`
	RestGames int    `json:"rest_games,omitempty" binding:"omitempty,min=1,max=10"`
}
