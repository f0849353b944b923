package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchAlreadyRecorded   = errors.New("match result already recorded")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchPlayerInvalid     = errors.New("match player conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, phase *int) ([]*models.Match, error)
	ListByPlayer(ctx context.Context, playerID int) ([]*models.Match, error)
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, pendingOnly bool) (int, error)
	// RecordResult resolves a pending match; a match that is already
	// resolved is left untouched and ErrMatchAlreadyRecorded is returned.
	RecordResult(ctx context.Context, exec SQLExecutor, id int, win *int, draw bool) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, player1_id, player2_id, phase, status, win, draw, created_at`

func scanMatch(row rowScanner, m *models.Match) error {
	return row.Scan(&m.ID, &m.TournamentID, &m.Player1ID, &m.Player2ID, &m.Phase, &m.Status, &m.Win, &m.Draw, &m.CreatedAt)
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, player1_id, player2_id, phase, status, win, draw)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := getExecutor(r.db, exec).QueryRowContext(ctx, query,
		match.TournamentID,
		match.Player1ID,
		match.Player2ID,
		match.Phase,
		match.Status,
		match.Win,
		match.Draw,
	).Scan(&match.ID, &match.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+matchColumns+` FROM matches WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresMatchRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Match, error) {
	m := &models.Match{}
	if err := scanMatch(exec.QueryRowContext(ctx, query, id), m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	return r.queryMatches(ctx, r.db, `SELECT `+matchColumns+` FROM matches ORDER BY id ASC`)
}

// ListByTournament returns matches in generation order, optionally limited to one phase.
func (r *postgresMatchRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, phase *int) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if phase != nil {
		queryBuilder.WriteString(" AND phase = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *phase)
	}
	queryBuilder.WriteString(" ORDER BY phase ASC, id ASC")

	return r.queryMatches(ctx, getExecutor(r.db, exec), queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListByPlayer(ctx context.Context, playerID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE player1_id = $1 OR player2_id = $1 ORDER BY id ASC`
	return r.queryMatches(ctx, r.db, query, playerID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := scanMatch(rows, &m); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, pendingOnly bool) (int, error) {
	query := `SELECT COUNT(*) FROM matches WHERE tournament_id = $1`
	if pendingOnly {
		query += ` AND status = FALSE`
	}
	var count int
	if err := getExecutor(r.db, exec).QueryRowContext(ctx, query, tournamentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches of tournament %d: %w", tournamentID, err)
	}
	return count, nil
}

func (r *postgresMatchRepository) RecordResult(ctx context.Context, exec SQLExecutor, id int, win *int, draw bool) error {
	query := `
		UPDATE matches
		SET status = TRUE, win = $1, draw = $2
		WHERE id = $3 AND status = FALSE`

	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, win, draw, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchAlreadyRecorded)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// "23503": foreign_key_violation
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_player1_id_fkey", "matches_player2_id_fkey", "matches_win_fkey":
			return ErrMatchPlayerInvalid
		}
	}
	return err
}
