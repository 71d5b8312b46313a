package services

import (
	"time"

	"core/models"
	"core/realtime"
	"core/rotation"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RotationOptions struct {
	// Start persists the pairings as in-progress games.
	Start bool
}

type RotationService struct {
	db        *gorm.DB
	locks     *SessionLocks
	publisher realtime.Publisher
	now       func() time.Time
}

func NewRotationService(db *gorm.DB, locks *SessionLocks, publisher realtime.Publisher) *RotationService {
	return &RotationService{
		db:        db,
		locks:     locks,
		publisher: publisherOrNop(publisher),
		now:       time.Now,
	}
}

type plannedRound struct {
	session *models.Session
	players []models.Player
	round   rotation.Round
}

// plan loads the session snapshot and runs the engine over it. Players that
// are on court in an unfinished game are left out of the rotation.
func plan(db *gorm.DB, sessionID string) (*plannedRound, error) {
	session, err := findOpenSession(db, sessionID)
	if err != nil {
		return nil, err
	}
	players, err := sessionPlayers(db, sessionID)
	if err != nil {
		return nil, err
	}
	roster := make([]rotation.Player, 0, len(players))
	for _, p := range players {
		record, err := p.ToRecord()
		if err != nil {
			return nil, eris.Wrapf(err, "player %s", p.ID)
		}
		roster = append(roster, record)
	}
	history, err := completedHistory(db, sessionID)
	if err != nil {
		return nil, err
	}
	onCourt, err := playersOnCourt(db, sessionID)
	if err != nil {
		return nil, err
	}

	round, err := rotation.PlanRound(roster, history, session.Courts, onCourt...)
	if err != nil {
		return nil, err
	}
	return &plannedRound{session: session, players: players, round: round}, nil
}

// Preview runs a rotation without saving anything.
func (s *RotationService) Preview(sessionID string) (*models.RotationResponse, error) {
	planned, err := plan(s.db, sessionID)
	if err != nil {
		return nil, err
	}
	return &models.RotationResponse{
		Number:      planned.session.RotationCount + 1,
		Preview:     true,
		Result:      planned.round.Result,
		Explanation: planned.round.Explanation,
		Changes:     planned.round.Changes,
	}, nil
}

// Generate runs a rotation, stores the updated rest countdowns and a log
// entry, and optionally starts the games it paired.
func (s *RotationService) Generate(sessionID string, opts RotationOptions) (*models.RotationResponse, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var resp *models.RotationResponse
	now := s.now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		planned, err := plan(tx, sessionID)
		if err != nil {
			return err
		}
		if err := saveRoster(tx, planned.players, planned.round.Roster); err != nil {
			return err
		}

		session := planned.session
		session.RotationCount++
		session.LastActivityAt = now
		if err := tx.Save(session).Error; err != nil {
			return eris.Wrap(err, "failed to update session")
		}

		result := planned.round.Result
		entry := models.RotationLog{
			SessionID:      sessionID,
			Number:         session.RotationCount,
			FairnessScore:  result.FairnessScore,
			OddPlayerOutID: result.OddPlayerOut,
			Explanation:    planned.round.Explanation,
			Started:        opts.Start,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return eris.Wrap(err, "failed to log rotation")
		}

		resp = &models.RotationResponse{
			Number:      session.RotationCount,
			Result:      result,
			Explanation: planned.round.Explanation,
			Changes:     planned.round.Changes,
		}
		if opts.Start {
			games, err := startGames(tx, sessionID, session.RotationCount, result, now)
			if err != nil {
				return err
			}
			resp.Games = games
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Int("rotation", resp.Number).
		Int("courts_used", len(resp.Result.Pairings)).
		Int("fairness", resp.Result.FairnessScore).
		Bool("started", opts.Start).
		Msg("rotation generated")
	s.publisher.Publish(realtime.NewEvent(realtime.EventRotationGenerated, sessionID, resp))
	return resp, nil
}

// saveRoster writes back rows whose engine snapshot changed.
func saveRoster(tx *gorm.DB, rows []models.Player, next []rotation.Player) error {
	byID := make(map[string]rotation.Player, len(next))
	for _, p := range next {
		byID[p.ID] = p
	}
	for i := range rows {
		record, ok := byID[rows[i].ID]
		if !ok {
			continue
		}
		before := rows[i]
		rows[i].ApplyRecord(record)
		if rows[i].Status == before.Status && rows[i].RestGamesRemaining == before.RestGamesRemaining {
			continue
		}
		if err := tx.Model(&rows[i]).Updates(map[string]any{
			"status":               rows[i].Status,
			"rest_games_remaining": rows[i].RestGamesRemaining,
		}).Error; err != nil {
			return eris.Wrapf(err, "failed to save player %s", rows[i].ID)
		}
	}
	return nil
}
