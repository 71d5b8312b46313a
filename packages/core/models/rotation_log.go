package models

import (
	"time"

	"core/rotation"
)

type RotationLog struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID      string    `gorm:"type:varchar(36);not null;index" json:"session_id"`
	Number         int       `gorm:"not null" json:"number"`
	FairnessScore  int       `gorm:"not null" json:"fairness_score"`
	OddPlayerOutID *string   `gorm:"type:varchar(36)" json:"odd_player_out_id"`
	Explanation    string    `gorm:"type:text;not null" json:"explanation"`
	Started        bool      `gorm:"not null" json:"started"`
	CreatedAt      time.Time `json:"created_at"`
}

func (RotationLog) TableName() string {
	return "rotation_logs"
}

type RotationResponse struct {
	Number      int                     `json:"number"`
	Preview     bool                    `json:"preview"`
	Result      rotation.Result         `json:"result"`
	Explanation string                  `json:"explanation"`
	Changes     []rotation.StatusChange `json:"changes"`
	Games       []Game                  `json:"games,omitempty"`
}
