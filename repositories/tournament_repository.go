package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrPlayerAlreadyEnrolled  = errors.New("player is already enrolled in this tournament")
	ErrPlayerNotEnrolled      = errors.New("player is not enrolled in this tournament")
	ErrEnrollmentReferenceBad = errors.New("tournament or player does not exist")
)

type ListTournamentsFilter struct {
	Type     *models.TournamentType
	Finished *bool
	Limit    int
	Offset   int
}

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	// GetForUpdate locks the tournament row until the surrounding transaction
	// ends, serializing every mutation of the same tournament.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	UpdateName(ctx context.Context, id int, name string) error
	UpdateCurrentPhase(ctx context.Context, exec SQLExecutor, id int, phase int) error
	MarkFinished(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, id int) error
	AddPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error
	RemovePlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error
	IsPlayerEnrolled(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) (bool, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, type, status, current_phase, created_at`

func scanTournament(row rowScanner, t *models.Tournament) error {
	return row.Scan(&t.ID, &t.Name, &t.Type, &t.Status, &t.CurrentPhase, &t.CreatedAt)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, type, status, current_phase)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	if t.CurrentPhase < 1 {
		t.CurrentPhase = 1
	}
	err := r.db.QueryRowContext(ctx, query, t.Name, t.Type, t.Status, t.CurrentPhase).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1`, id)
}

func (r *postgresTournamentRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	return r.getOne(ctx, getExecutor(r.db, exec), `SELECT `+tournamentColumns+` FROM tournaments WHERE id = $1 FOR UPDATE`, id)
}

func (r *postgresTournamentRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	if err := scanTournament(exec.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.Type != nil {
		query += fmt.Sprintf(" AND type = $%d", argID)
		args = append(args, *filter.Type)
		argID++
	}
	if filter.Finished != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Finished)
		argID++
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argID)
		args = append(args, filter.Limit)
		argID++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argID)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		if scanErr := scanTournament(rows, &t); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) UpdateName(ctx context.Context, id int, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateCurrentPhase(ctx context.Context, exec SQLExecutor, id int, phase int) error {
	query := `UPDATE tournaments SET current_phase = $1 WHERE id = $2`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, phase, id)
	if err != nil {
		return fmt.Errorf("failed to update current phase of tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) MarkFinished(ctx context.Context, exec SQLExecutor, id int) error {
	query := `UPDATE tournaments SET status = TRUE WHERE id = $1`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark tournament %d finished: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament; enrollments, scores and matches go with it (ON DELETE CASCADE).
func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) AddPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error {
	query := `INSERT INTO tournament_players (tournament_id, player_id) VALUES ($1, $2)`
	_, err := getExecutor(r.db, exec).ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				return ErrPlayerAlreadyEnrolled
			case "23503":
				return ErrEnrollmentReferenceBad
			}
		}
		return fmt.Errorf("failed to enroll player %d in tournament %d: %w", playerID, tournamentID, err)
	}
	return nil
}

func (r *postgresTournamentRepository) RemovePlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error {
	query := `DELETE FROM tournament_players WHERE tournament_id = $1 AND player_id = $2`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %d from tournament %d: %w", playerID, tournamentID, err)
	}
	return checkAffectedRows(result, ErrPlayerNotEnrolled)
}

func (r *postgresTournamentRepository) IsPlayerEnrolled(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tournament_players WHERE tournament_id = $1 AND player_id = $2)`
	var exists bool
	if err := getExecutor(r.db, exec).QueryRowContext(ctx, query, tournamentID, playerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return exists, nil
}
