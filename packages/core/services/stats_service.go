package services

import (
	"math"
	"sort"
	"time"

	"core/models"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		db:  db,
		now: time.Now,
	}
}

func (s *StatsService) GetStats() (*models.Stats, error) {
	var stats models.Stats

	if err := s.db.Model(&models.Session{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count sessions")
	}
	if err := s.db.Model(&models.Session{}).
		Where("status = ?", models.SessionStatusOpen).
		Count(&stats.OpenSessions).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count open sessions")
	}
	if err := s.db.Model(&models.Player{}).Count(&stats.TotalPlayers).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count players")
	}

	if err := s.db.Model(&models.Game{}).
		Where("status = ?", models.GameStatusCompleted).
		Count(&stats.TotalGames).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count games")
	}

	now := s.now()
	last7DaysStart := now.AddDate(0, 0, -7)
	previous7DaysStart := now.AddDate(0, 0, -14)

	if err := s.db.Model(&models.Game{}).
		Where("status = ? AND completed_at >= ?", models.GameStatusCompleted, last7DaysStart).
		Count(&stats.GamesLast7Days).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count recent games")
	}
	if err := s.db.Model(&models.Game{}).
		Where("status = ? AND completed_at >= ? AND completed_at < ?", models.GameStatusCompleted, previous7DaysStart, last7DaysStart).
		Count(&stats.GamesPrevious7Days).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count previous games")
	}

	return &stats, nil
}

// SessionStats builds the leaderboard of a session: most wins first, then
// best win rate, then fewest games.
func (s *StatsService) SessionStats(sessionID string) (*models.SessionStats, error) {
	session, err := findSession(s.db, sessionID)
	if err != nil {
		return nil, err
	}
	players, err := sessionPlayers(s.db, sessionID)
	if err != nil {
		return nil, err
	}

	stats := &models.SessionStats{
		SessionID:   sessionID,
		Rotations:   session.RotationCount,
		Leaderboard: make([]models.LeaderboardEntry, 0, len(players)),
	}
	if err := s.db.Model(&models.Game{}).
		Where("session_id = ? AND status = ?", sessionID, models.GameStatusCompleted).
		Count(&stats.GamesPlayed).Error; err != nil {
		return nil, eris.Wrap(err, "failed to count session games")
	}

	var avg struct{ Score *float64 }
	if err := s.db.Model(&models.RotationLog{}).
		Select("AVG(fairness_score) AS score").
		Where("session_id = ?", sessionID).
		Scan(&avg).Error; err != nil {
		return nil, eris.Wrap(err, "failed to average fairness")
	}
	if avg.Score != nil {
		stats.AverageScore = math.Round(*avg.Score*100) / 100
	}

	for _, p := range players {
		entry := models.LeaderboardEntry{
			PlayerID:    p.ID,
			Name:        p.Name,
			Status:      p.Status,
			GamesPlayed: p.GamesPlayed,
			Wins:        p.Wins,
			Losses:      p.Losses,
		}
		if p.GamesPlayed > 0 {
			entry.WinRate = math.Round(float64(p.Wins)/float64(p.GamesPlayed)*1000) / 10
		}
		stats.Leaderboard = append(stats.Leaderboard, entry)
	}
	sort.SliceStable(stats.Leaderboard, func(i, j int) bool {
		a, b := stats.Leaderboard[i], stats.Leaderboard[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		return a.GamesPlayed < b.GamesPlayed
	})

	return stats, nil
}
