package services

import (
	"errors"
	"time"

	"core/models"
	"core/realtime"
	"core/rotation"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type GameService struct {
	db        *gorm.DB
	locks     *SessionLocks
	publisher realtime.Publisher
	now       func() time.Time
}

func NewGameService(db *gorm.DB, locks *SessionLocks, publisher realtime.Publisher) *GameService {
	return &GameService{
		db:        db,
		locks:     locks,
		publisher: publisherOrNop(publisher),
		now:       time.Now,
	}
}

// StartGames persists the pairings of a rotation as in-progress games.
func (s *GameService) StartGames(sessionID string, rotationNumber int, result rotation.Result) ([]models.Game, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var games []models.Game
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := findOpenSession(tx, sessionID); err != nil {
			return err
		}
		var err error
		games, err = startGames(tx, sessionID, rotationNumber, result, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return games, nil
}

func startGames(tx *gorm.DB, sessionID string, rotationNumber int, result rotation.Result, now time.Time) ([]models.Game, error) {
	busy, err := playersOnCourt(tx, sessionID)
	if err != nil {
		return nil, err
	}
	onCourt := make(map[string]struct{}, len(busy))
	for _, id := range busy {
		onCourt[id] = struct{}{}
	}

	games := make([]models.Game, 0, len(result.Pairings))
	for _, pairing := range result.Pairings {
		for _, id := range pairing.PlayerIDs() {
			if _, ok := onCourt[id]; ok {
				return nil, eris.Wrapf(rotation.ErrInvalidInput, "player %s is already on court", id)
			}
		}
		left, right := pairing.Sides[0], pairing.Sides[1]
		if left.Position != rotation.PositionLeft {
			left, right = right, left
		}
		games = append(games, models.Game{
			ID:             uuid.NewString(),
			SessionID:      sessionID,
			RotationNumber: rotationNumber,
			Court:          pairing.Court,
			LeftPlayer1ID:  left.Players[0].ID,
			LeftPlayer2ID:  left.Players[1].ID,
			RightPlayer1ID: right.Players[0].ID,
			RightPlayer2ID: right.Players[1].ID,
			Status:         models.GameStatusInProgress,
			FairnessScore:  result.FairnessScore,
			StartedAt:      now,
		})
	}
	if len(games) == 0 {
		return games, nil
	}
	if err := tx.Create(&games).Error; err != nil {
		return nil, eris.Wrap(err, "failed to start games")
	}
	return games, nil
}

// playersOnCourt lists the players of every in-progress game of a session.
func playersOnCourt(db *gorm.DB, sessionID string) ([]string, error) {
	var games []models.Game
	err := db.Where("session_id = ? AND status = ?", sessionID, models.GameStatusInProgress).Find(&games).Error
	if err != nil {
		return nil, eris.Wrap(err, "failed to load running games")
	}
	ids := make([]string, 0, len(games)*rotation.GroupSize)
	for _, g := range games {
		ids = append(ids, g.PlayerIDs()...)
	}
	return ids, nil
}

func (s *GameService) findGame(tx *gorm.DB, sessionID, gameID string) (*models.Game, error) {
	var game models.Game
	if err := tx.Where("id = ? AND session_id = ?", gameID, sessionID).First(&game).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eris.Wrapf(ErrGameNotFound, "game %s", gameID)
		}
		return nil, eris.Wrap(err, "failed to load game")
	}
	return &game, nil
}

// CompleteGame records the winner and credits the four players. A game can
// only be completed once, so counters are never incremented twice.
func (s *GameService) CompleteGame(sessionID, gameID, winnerSide string) (*models.Game, error) {
	winner, err := rotation.ParsePosition(winnerSide)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var game *models.Game
	now := s.now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		game, err = s.findGame(tx, sessionID, gameID)
		if err != nil {
			return err
		}
		if game.Status != models.GameStatusInProgress {
			return eris.Wrapf(ErrGameNotInProgress, "game %s is %s", gameID, game.Status)
		}

		side := string(winner)
		game.Status = models.GameStatusCompleted
		game.WinnerSide = &side
		game.CompletedAt = &now
		if err := tx.Save(game).Error; err != nil {
			return eris.Wrap(err, "failed to complete game")
		}

		winners, losers := game.LeftIDs(), game.RightIDs()
		if winner == rotation.PositionRight {
			winners, losers = losers, winners
		}
		if err := credit(tx, sessionID, winners[:], "wins"); err != nil {
			return err
		}
		if err := credit(tx, sessionID, losers[:], "losses"); err != nil {
			return err
		}
		return touchSession(tx, sessionID, now)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("session_id", sessionID).
		Str("game_id", gameID).
		Int("court", game.Court).
		Str("winner", string(winner)).
		Msg("game completed")
	s.publisher.Publish(realtime.NewEvent(realtime.EventGameCompleted, sessionID, game))
	return game, nil
}

func credit(tx *gorm.DB, sessionID string, playerIDs []string, column string) error {
	res := tx.Model(&models.Player{}).
		Where("session_id = ? AND id IN ?", sessionID, playerIDs).
		Updates(map[string]any{
			"games_played": gorm.Expr("games_played + 1"),
			column:         gorm.Expr(column + " + 1"),
		})
	if res.Error != nil {
		return eris.Wrap(res.Error, "failed to update player results")
	}
	if res.RowsAffected != int64(len(playerIDs)) {
		return eris.Wrapf(ErrPlayerNotFound, "expected %d players, updated %d", len(playerIDs), res.RowsAffected)
	}
	return nil
}

// CancelGame frees the court without touching any counters.
func (s *GameService) CancelGame(sessionID, gameID string) (*models.Game, error) {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	var game *models.Game
	now := s.now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		game, err = s.findGame(tx, sessionID, gameID)
		if err != nil {
			return err
		}
		if game.Status != models.GameStatusInProgress {
			return eris.Wrapf(ErrGameNotInProgress, "game %s is %s", gameID, game.Status)
		}
		game.Status = models.GameStatusCancelled
		if err := tx.Save(game).Error; err != nil {
			return eris.Wrap(err, "failed to cancel game")
		}
		return touchSession(tx, sessionID, now)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("session_id", sessionID).Str("game_id", gameID).Msg("game cancelled")
	s.publisher.Publish(realtime.NewEvent(realtime.EventGameCompleted, sessionID, game))
	return game, nil
}

// ListGames returns the games of a session, newest rotation first. An empty
// status lists every game.
func (s *GameService) ListGames(sessionID, status string) ([]models.Game, error) {
	if _, err := findSession(s.db, sessionID); err != nil {
		return nil, err
	}
	query := s.db.Where("session_id = ?", sessionID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var games []models.Game
	if err := query.Order("rotation_number DESC, court ASC").Find(&games).Error; err != nil {
		return nil, eris.Wrap(err, "failed to list games")
	}
	return games, nil
}

// History returns the completed games of a session in play order.
func (s *GameService) History(sessionID string) ([]rotation.CompletedGame, error) {
	return completedHistory(s.db, sessionID)
}

func completedHistory(db *gorm.DB, sessionID string) ([]rotation.CompletedGame, error) {
	var games []models.Game
	err := db.Where("session_id = ? AND status = ?", sessionID, models.GameStatusCompleted).
		Order("completed_at ASC, id ASC").
		Find(&games).Error
	if err != nil {
		return nil, eris.Wrap(err, "failed to load game history")
	}
	history := make([]rotation.CompletedGame, 0, len(games))
	for _, g := range games {
		if cg, ok := g.Completed(); ok {
			history = append(history, cg)
		}
	}
	return history, nil
}
