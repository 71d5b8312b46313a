package models

type Stats struct {
	TotalSessions      int64 `json:"total_sessions"`
	OpenSessions       int64 `json:"open_sessions"`
	TotalPlayers       int64 `json:"total_players"`
	TotalGames         int64 `json:"total_games"`
	GamesLast7Days     int64 `json:"games_last_7_days"`
	GamesPrevious7Days int64 `json:"games_previous_7_days"`
}

type LeaderboardEntry struct {
	PlayerID    string  `json:"player_id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
}

type SessionStats struct {
	SessionID    string             `json:"session_id"`
	Rotations    int                `json:"rotations"`
	GamesPlayed  int64              `json:"games_played"`
	AverageScore float64            `json:"average_fairness_score"`
	Leaderboard  []LeaderboardEntry `json:"leaderboard"`
}
