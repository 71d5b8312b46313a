package services

import (
	"errors"
	"strings"
	"time"

	"core/models"
	"core/realtime"
	"core/rotation"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RosterService struct {
	db        *gorm.DB
	locks     *SessionLocks
	sessions  *SessionService
	publisher realtime.Publisher
	now       func() time.Time
}

func NewRosterService(db *gorm.DB, locks *SessionLocks, sessions *SessionService, publisher realtime.Publisher) *RosterService {
	return &RosterService{
		db:        db,
		locks:     locks,
		sessions:  sessions,
		publisher: publisherOrNop(publisher),
		now:       time.Now,
	}
}

// JoinSession adds a player to the session behind a share code. Names are
// unique per session regardless of case, including players who already left.
func (s *RosterService) JoinSession(code string, req models.JoinSessionRequest) (*models.Player, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	session, err := s.sessions.GetSessionByShareCode(code)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(session.ID)
	defer unlock()

	now := s.now().UTC()
	player := models.Player{
		ID:             uuid.NewString(),
		SessionID:      session.ID,
		Name:           name,
		NameKey:        rotation.NameKey(name),
		Status:         rotation.StatusActive.String(),
		RestPreference: req.RestPreference,
		JoinedAt:       now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOpenSession(tx, session.ID); err != nil {
			return err
		}
		var count int64
		if err := tx.Unscoped().Model(&models.Player{}).
			Where("session_id = ? AND name_key = ?", session.ID, player.NameKey).
			Count(&count).Error; err != nil {
			return eris.Wrap(err, "failed to check player name")
		}
		if count > 0 {
			return eris.Wrapf(ErrDuplicateName, "name %q", name)
		}
		if err := tx.Create(&player).Error; err != nil {
			return eris.Wrap(err, "failed to add player")
		}
		return touchSession(tx, session.ID, now)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", session.ID).Str("player_id", player.ID).Str("name", name).Msg("player joined")
	s.publishRoster(session.ID)
	return &player, nil
}

func (s *RosterService) ListPlayers(sessionID string) ([]models.Player, error) {
	if _, err := findSession(s.db, sessionID); err != nil {
		return nil, err
	}
	return sessionPlayers(s.db, sessionID)
}

// ChangeStatus moves a player between ACTIVE, RESTING and LEFT.
func (s *RosterService) ChangeStatus(sessionID, playerID string, req models.UpdatePlayerStatusRequest) (*models.Player, *rotation.StatusChange, error) {
	to, err := rotation.ParseStatus(req.Status)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var (
		player models.Player
		change rotation.StatusChange
	)
	now := s.now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOpenSession(tx, sessionID); err != nil {
			return err
		}
		if err := tx.Where("id = ? AND session_id = ?", playerID, sessionID).First(&player).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return eris.Wrapf(ErrPlayerNotFound, "player %s", playerID)
			}
			return eris.Wrap(err, "failed to load player")
		}

		record, err := player.ToRecord()
		if err != nil {
			return err
		}
		next, err := rotation.Transition(record, to, req.RestGames)
		if err != nil {
			return err
		}
		change = rotation.StatusChange{
			PlayerID: player.ID,
			From:     record.Status,
			To:       next.Status,
			Reason:   rotation.ReasonRequested,
		}

		player.ApplyRecord(next)
		if err := tx.Save(&player).Error; err != nil {
			return eris.Wrap(err, "failed to save player status")
		}
		return touchSession(tx, sessionID, now)
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Str("player_id", playerID).
		Stringer("from", change.From).
		Stringer("to", change.To).
		Msg("player status changed")
	s.publishRoster(sessionID)
	return &player, &change, nil
}

func (s *RosterService) publishRoster(sessionID string) {
	players, err := sessionPlayers(s.db, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("skipping roster broadcast")
		return
	}
	s.publisher.Publish(realtime.NewEvent(realtime.EventRosterUpdated, sessionID, players))
}
