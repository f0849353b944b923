package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is idempotent; Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id             SERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		email          TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		personal_score INTEGER NOT NULL DEFAULT 0,
		avatar_key     TEXT,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT players_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS tournaments (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		type          TEXT NOT NULL CHECK (type IN ('roundRobin', 'elimination')),
		status        BOOLEAN NOT NULL DEFAULT FALSE,
		current_phase INTEGER NOT NULL DEFAULT 1 CHECK (current_phase >= 1),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tournament_players (
		tournament_id INTEGER NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
		player_id     INTEGER NOT NULL REFERENCES players (id) ON DELETE CASCADE,
		enrolled_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (tournament_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tournament_scores (
		id            SERIAL PRIMARY KEY,
		tournament_id INTEGER NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
		player_id     INTEGER NOT NULL REFERENCES players (id) ON DELETE CASCADE,
		score         INTEGER NOT NULL DEFAULT 0,
		CONSTRAINT tournament_scores_tournament_id_player_id_key UNIQUE (tournament_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id            SERIAL PRIMARY KEY,
		tournament_id INTEGER NOT NULL,
		player1_id    INTEGER NOT NULL,
		player2_id    INTEGER,
		phase         INTEGER NOT NULL DEFAULT 1 CHECK (phase >= 1),
		status        BOOLEAN NOT NULL DEFAULT FALSE,
		win           INTEGER,
		draw          BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT matches_tournament_id_fkey FOREIGN KEY (tournament_id) REFERENCES tournaments (id) ON DELETE CASCADE,
		CONSTRAINT matches_player1_id_fkey FOREIGN KEY (player1_id) REFERENCES players (id),
		CONSTRAINT matches_player2_id_fkey FOREIGN KEY (player2_id) REFERENCES players (id),
		CONSTRAINT matches_win_fkey FOREIGN KEY (win) REFERENCES players (id),
		CONSTRAINT matches_pending_unresolved CHECK (status OR (win IS NULL AND NOT draw))
	)`,
	`CREATE TABLE IF NOT EXISTS decks (
		id          SERIAL PRIMARY KEY,
		player_id   INTEGER NOT NULL,
		name        TEXT NOT NULL,
		format      TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		deck_list   TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT decks_player_id_fkey FOREIGN KEY (player_id) REFERENCES players (id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_decks_player ON decks (player_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_tournament_phase ON matches (tournament_id, phase)`,
	`CREATE INDEX IF NOT EXISTS idx_tournament_scores_ranking ON tournament_scores (tournament_id, score DESC, id ASC)`,
}

// Migrate applies the schema in a single transaction.
func Migrate(ctx context.Context, conn *sql.DB) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration statement %d failed: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
