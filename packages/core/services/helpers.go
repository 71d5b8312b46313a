package services

import (
	"errors"
	"time"

	"core/models"
	"core/realtime"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

func findSession(db *gorm.DB, id string) (*models.Session, error) {
	var session models.Session
	if err := db.First(&session, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrSessionNotFound, "session %s", id)
		}
		return nil, eris.Wrap(err, "failed to load session")
	}
	return &session, nil
}

func findOpenSession(db *gorm.DB, id string) (*models.Session, error) {
	session, err := findSession(db, id)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, eris.Wrapf(ErrSessionClosed, "session %s", id)
	}
	return session, nil
}

func touchSession(db *gorm.DB, id string, now time.Time) error {
	err := db.Model(&models.Session{}).Where("id = ?", id).Update("last_activity_at", now).Error
	return eris.Wrap(err, "failed to update session activity")
}

func sessionPlayers(db *gorm.DB, sessionID string) ([]models.Player, error) {
	var players []models.Player
	err := db.Where("session_id = ?", sessionID).Order("joined_at ASC, id ASC").Find(&players).Error
	if err != nil {
		return nil, eris.Wrap(err, "failed to load session players")
	}
	return players, nil
}

func publisherOrNop(p realtime.Publisher) realtime.Publisher {
	if p == nil {
		return realtime.NopPublisher{}
	}
	return p
}
