package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_03_01_000000_create_session_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS sessions (
						id VARCHAR(36) PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						share_code VARCHAR(6) NOT NULL,
						courts INT NOT NULL DEFAULT 1,
						status VARCHAR(20) NOT NULL DEFAULT 'open',
						rotation_count INT NOT NULL DEFAULT 0,
						last_activity_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						closed_at TIMESTAMPTZ NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_share_code ON sessions(share_code);
					CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
					CREATE INDEX IF NOT EXISTS idx_sessions_last_activity_at ON sessions(last_activity_at);
					CREATE INDEX IF NOT EXISTS idx_sessions_deleted_at ON sessions(deleted_at);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS session_players (
						id VARCHAR(36) PRIMARY KEY,
						session_id VARCHAR(36) NOT NULL,
						name VARCHAR(100) NOT NULL,
						name_key VARCHAR(100) NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'ACTIVE',
						games_played INT NOT NULL DEFAULT 0,
						wins INT NOT NULL DEFAULT 0,
						losses INT NOT NULL DEFAULT 0,
						rest_games_remaining INT NOT NULL DEFAULT 0,
						rest_preference INT NOT NULL DEFAULT 0,
						joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL,
						FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
						CHECK (games_played >= 0 AND wins >= 0 AND losses >= 0 AND wins + losses <= games_played)
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_players_session_name ON session_players(session_id, name_key);
					CREATE INDEX IF NOT EXISTS idx_session_players_deleted_at ON session_players(deleted_at);
				`).Error; err != nil {
					return err
				}

				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS games (
						id VARCHAR(36) PRIMARY KEY,
						session_id VARCHAR(36) NOT NULL,
						rotation_number INT NOT NULL,
						court INT NOT NULL,
						left_player1_id VARCHAR(36) NOT NULL,
						left_player2_id VARCHAR(36) NOT NULL,
						right_player1_id VARCHAR(36) NOT NULL,
						right_player2_id VARCHAR(36) NOT NULL,
						status VARCHAR(20) NOT NULL DEFAULT 'in_progress',
						winner_side VARCHAR(5) NULL,
						fairness_score INT NOT NULL DEFAULT 0,
						started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
						completed_at TIMESTAMPTZ NULL,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW(),
						deleted_at TIMESTAMPTZ NULL,
						FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE,
						FOREIGN KEY (left_player1_id) REFERENCES session_players(id),
						FOREIGN KEY (left_player2_id) REFERENCES session_players(id),
						FOREIGN KEY (right_player1_id) REFERENCES session_players(id),
						FOREIGN KEY (right_player2_id) REFERENCES session_players(id),
						CHECK (winner_side IS NULL OR winner_side IN ('left', 'right'))
					);
					CREATE INDEX IF NOT EXISTS idx_games_session_id ON games(session_id);
					CREATE INDEX IF NOT EXISTS idx_games_status ON games(status);
					CREATE INDEX IF NOT EXISTS idx_games_deleted_at ON games(deleted_at);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS rotation_logs (
						id BIGSERIAL PRIMARY KEY,
						session_id VARCHAR(36) NOT NULL,
						number INT NOT NULL,
						fairness_score INT NOT NULL,
						odd_player_out_id VARCHAR(36) NULL,
						explanation TEXT NOT NULL,
						started BOOLEAN NOT NULL DEFAULT FALSE,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
					);
					CREATE INDEX IF NOT EXISTS idx_rotation_logs_session_id ON rotation_logs(session_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec(`
					DROP TABLE IF EXISTS rotation_logs;
					DROP TABLE IF EXISTS games;
					DROP TABLE IF EXISTS session_players;
					DROP TABLE IF EXISTS sessions;
				`).Error
			},
		},
	}
}

func GetAllMigrations() []MigrationDefinition {
	return GetCoreMigrations()
}
