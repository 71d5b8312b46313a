package fixtures

import (
	"math/rand"

	"core/models"
	"core/services"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var demoNames = []string{
	"Alice", "Bilal", "Chloé", "Dmitri", "Elena", "Farid",
	"Grace", "Hugo", "Inès", "Jonas", "Keiko", "Léo",
}

type Fixtures struct {
	db       *gorm.DB
	sessions *services.SessionService
	roster   *services.RosterService
	rotation *services.RotationService
	games    *services.GameService
	rng      *rand.Rand
}

func NewFixtures(db *gorm.DB, seed int64) *Fixtures {
	locks := services.NewSessionLocks()
	sessions := services.NewSessionService(db, locks, nil, 3)
	return &Fixtures{
		db:       db,
		sessions: sessions,
		roster:   services.NewRosterService(db, locks, sessions, nil),
		rotation: services.NewRotationService(db, locks, nil),
		games:    services.NewGameService(db, locks, nil),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// GenerateTestData opens a demo session with a dozen players and plays a few
// rotations through the regular services so every counter stays consistent.
func (f *Fixtures) GenerateTestData(rounds int) (*models.Session, error) {
	log.Info().Msg("starting fixtures generation")

	session, err := f.sessions.CreateSession(models.CreateSessionRequest{Name: "Demo club night", Courts: 2})
	if err != nil {
		return nil, eris.Wrap(err, "failed to create demo session")
	}

	players := make([]*models.Player, 0, len(demoNames))
	for i, name := range demoNames {
		req := models.JoinSessionRequest{Name: name}
		if i%4 == 3 {
			req.RestPreference = 2
		}
		p, err := f.roster.JoinSession(session.ShareCode, req)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to add %s", name)
		}
		players = append(players, p)
	}

	games := 0
	for round := 1; round <= rounds; round++ {
		if round == 2 {
			rester := players[f.rng.Intn(len(players))]
			if _, _, err := f.roster.ChangeStatus(session.ID, rester.ID, models.UpdatePlayerStatusRequest{Status: "RESTING"}); err != nil {
				return nil, eris.Wrap(err, "failed to rest player")
			}
		}

		resp, err := f.rotation.Generate(session.ID, services.RotationOptions{Start: true})
		if err != nil {
			return nil, eris.Wrapf(err, "rotation %d failed", round)
		}
		for _, g := range resp.Games {
			winner := "left"
			if f.rng.Intn(2) == 1 {
				winner = "right"
			}
			if _, err := f.games.CompleteGame(session.ID, g.ID, winner); err != nil {
				return nil, eris.Wrapf(err, "failed to complete game on court %d", g.Court)
			}
			games++
		}
	}

	log.Info().
		Str("session_id", session.ID).
		Str("share_code", session.ShareCode).
		Int("players", len(players)).
		Int("games", games).
		Msg("fixtures generated")
	return session, nil
}

// ClearAllData removes every session and everything attached to it.
func (f *Fixtures) ClearAllData() error {
	log.Info().Msg("clearing session data")
	return f.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.RotationLog{}, &models.Game{}, &models.Player{}, &models.Session{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error; err != nil {
				return eris.Wrapf(err, "failed to clear %T", model)
			}
		}
		return nil
	})
}
