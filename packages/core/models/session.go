package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

type Session struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	ShareCode      string         `gorm:"size:6;not null;uniqueIndex" json:"share_code"`
	Courts         int            `gorm:"not null" json:"courts"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // open, closed
	RotationCount  int            `gorm:"not null" json:"rotation_count"`
	LastActivityAt time.Time      `gorm:"not null;index" json:"last_activity_at"`
	ClosedAt       *time.Time     `json:"closed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Players []Player `gorm:"foreignKey:SessionID" json:"players,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s Session) IsOpen() bool {
	return s.Status == SessionStatusOpen
}

type CreateSessionRequest struct {
	Name   string `json:"name" binding:"required,max=255"`
	Courts int    `json:"courts,omitempty" binding:"omitempty,min=1,max=20"`
}

type UpdateCourtsRequest struct {
	Courts int `json:"courts" binding:"required,min=1,max=20"`
}

type SessionResponse struct {
	Session
	JoinURL string `json:"join_url"`
}
