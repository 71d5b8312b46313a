package models

import (
	"time"

	"core/rotation"

	"gorm.io/gorm"
)

const (
	GameStatusInProgress = "in_progress"
	GameStatusCompleted  = "completed"
	GameStatusCancelled  = "cancelled"
)

type Game struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	SessionID      string         `gorm:"type:varchar(36);not null;index" json:"session_id"`
	RotationNumber int            `gorm:"not null" json:"rotation_number"`
	Court          int            `gorm:"not null" json:"court"`
	LeftPlayer1ID  string         `gorm:"type:varchar(36);not null" json:"left_player1_id"`
	LeftPlayer2ID  string         `gorm:"type:varchar(36);not null" json:"left_player2_id"`
	RightPlayer1ID string         `gorm:"type:varchar(36);not null" json:"right_player1_id"`
	RightPlayer2ID string         `gorm:"type:varchar(36);not null" json:"right_player2_id"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // in_progress, completed, cancelled
	WinnerSide     *string        `gorm:"size:5" json:"winner_side"`
	FairnessScore  int            `gorm:"not null" json:"fairness_score"`
	StartedAt      time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Game) TableName() string {
	return "games"
}

func (g Game) LeftIDs() [2]string {
	return [2]string{g.LeftPlayer1ID, g.LeftPlayer2ID}
}

func (g Game) RightIDs() [2]string {
	return [2]string{g.RightPlayer1ID, g.RightPlayer2ID}
}

func (g Game) PlayerIDs() []string {
	return []string{g.LeftPlayer1ID, g.LeftPlayer2ID, g.RightPlayer1ID, g.RightPlayer2ID}
}

// Completed converts a finished game into a ledger entry. ok is false for
// games that are not completed.
func (g Game) Completed() (rotation.CompletedGame, bool) {
	if g.Status != GameStatusCompleted || g.WinnerSide == nil {
		return rotation.CompletedGame{}, false
	}
	return rotation.CompletedGame{
		ID:     g.ID,
		Court:  g.Court,
		Left:   g.LeftIDs(),
		Right:  g.RightIDs(),
		Winner: rotation.Position(*g.WinnerSide),
	}, true
}

type CompleteGameRequest struct {
	WinnerSide string `json:"winner_side" binding:"required,oneof=left right"`
}
