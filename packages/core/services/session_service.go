package services

import (
	"errors"
	"strings"
	"time"

	"core/models"
	"core/realtime"
	"core/utils"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const maxShareCodeAttempts = 10

type SessionService struct {
	db            *gorm.DB
	locks         *SessionLocks
	publisher     realtime.Publisher
	defaultCourts int
	now           func() time.Time
}

func NewSessionService(db *gorm.DB, locks *SessionLocks, publisher realtime.Publisher, defaultCourts int) *SessionService {
	if defaultCourts <= 0 {
		defaultCourts = 1
	}
	return &SessionService{
		db:            db,
		locks:         locks,
		publisher:     publisherOrNop(publisher),
		defaultCourts: defaultCourts,
		now:           time.Now,
	}
}

func (s *SessionService) CreateSession(req models.CreateSessionRequest) (*models.Session, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, eris.New("session name is empty")
	}
	courts := req.Courts
	if courts == 0 {
		courts = s.defaultCourts
	}
	if courts < 0 {
		return nil, ErrInvalidCourts
	}

	code, err := s.uniqueShareCode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := models.Session{
		ID:             uuid.NewString(),
		Name:           name,
		ShareCode:      code,
		Courts:         courts,
		Status:         models.SessionStatusOpen,
		LastActivityAt: now,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, eris.Wrap(err, "failed to create session")
	}

	log.Info().Str("session_id", session.ID).Str("share_code", code).Int("courts", courts).Msg("session created")
	return &session, nil
}

func (s *SessionService) uniqueShareCode() (string, error) {
	for attempt := 1; attempt <= maxShareCodeAttempts; attempt++ {
		code, err := utils.NewShareCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.db.Unscoped().Model(&models.Session{}).Where("share_code = ?", code).Count(&count).Error; err != nil {
			return "", eris.Wrap(err, "failed to check share code")
		}
		if count == 0 {
			return code, nil
		}
		log.Debug().Str("share_code", code).Int("attempt", attempt).Msg("share code collision")
	}
	return "", eris.Errorf("no free share code after %d attempts", maxShareCodeAttempts)
}

func (s *SessionService) GetSession(id string) (*models.Session, error) {
	session, err := findSession(s.db, id)
	if err != nil {
		return nil, err
	}
	players, err := sessionPlayers(s.db, id)
	if err != nil {
		return nil, err
	}
	session.Players = players
	return session, nil
}

// GetSessionByShareCode resolves a join code, ignoring case.
func (s *SessionService) GetSessionByShareCode(code string) (*models.Session, error) {
	normalized, ok := utils.NormalizeShareCode(code)
	if !ok {
		return nil, eris.Wrapf(ErrInvalidShareCode, "code %q", code)
	}
	var session models.Session
	err := s.db.Where("share_code = ?", normalized).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrSessionNotFound, "code %s", normalized)
		}
		return nil, eris.Wrap(err, "failed to load session")
	}
	return &session, nil
}

func (s *SessionService) UpdateCourts(id string, courts int) (*models.Session, error) {
	if courts < 1 {
		return nil, ErrInvalidCourts
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := findOpenSession(s.db, id)
	if err != nil {
		return nil, err
	}
	session.Courts = courts
	session.LastActivityAt = s.now().UTC()
	if err := s.db.Save(session).Error; err != nil {
		return nil, eris.Wrap(err, "failed to update courts")
	}

	s.publisher.Publish(realtime.NewEvent(realtime.EventRosterUpdated, id, session))
	return session, nil
}

func (s *SessionService) CloseSession(id string) (*models.Session, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := findSession(s.db, id)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return session, nil
	}
	if err := s.close(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) close(session *models.Session) error {
	now := s.now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Game{}).
			Where("session_id = ? AND status = ?", session.ID, models.GameStatusInProgress).
			Update("status", models.GameStatusCancelled).Error; err != nil {
			return eris.Wrap(err, "failed to cancel running games")
		}
		session.Status = models.SessionStatusClosed
		session.ClosedAt = &now
		return eris.Wrap(tx.Save(session).Error, "failed to close session")
	})
	if err != nil {
		return err
	}

	log.Info().Str("session_id", session.ID).Msg("session closed")
	s.publisher.Publish(realtime.NewEvent(realtime.EventSessionClosed, session.ID, nil))
	return nil
}

// CloseIdleSessions closes every open session with no activity since cutoff
// and returns how many were closed.
func (s *SessionService) CloseIdleSessions(cutoff time.Time) (int, error) {
	cutoff = cutoff.UTC()
	var idle []models.Session
	err := s.db.Where("status = ? AND last_activity_at < ?", models.SessionStatusOpen, cutoff).Find(&idle).Error
	if err != nil {
		return 0, eris.Wrap(err, "failed to find idle sessions")
	}

	closed := 0
	for i := range idle {
		id := idle[i].ID
		unlock := s.locks.Lock(id)
		// Activity may have happened while we waited for the lock.
		session, err := findSession(s.db, id)
		if err == nil && session.IsOpen() && session.LastActivityAt.Before(cutoff) {
			err = s.close(session)
			if err == nil {
				closed++
			}
		}
		unlock()
		if err != nil {
			return closed, err
		}
	}
	return closed, nil
}

// CountIdleSessions reports how many open sessions have been idle since cutoff.
func (s *SessionService) CountIdleSessions(cutoff time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.Session{}).
		Where("status = ? AND last_activity_at < ?", models.SessionStatusOpen, cutoff.UTC()).
		Count(&count).Error
	return count, eris.Wrap(err, "failed to count idle sessions")
}
