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
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerEmailConflict = errors.New("email is already registered")
	ErrPlayerInUse         = errors.New("player has recorded matches")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	GetByEmail(ctx context.Context, email string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error)
	SetPersonalScore(ctx context.Context, id int, score int) error
	AddPersonalScore(ctx context.Context, exec SQLExecutor, id int, delta int) error
	UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

const playerColumns = `id, name, email, password_hash, personal_score, avatar_key, created_at`

func scanPlayer(row rowScanner, p *models.Player) error {
	return row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.PersonalScore, &p.AvatarKey, &p.CreatedAt)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (name, email, password_hash, personal_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Name, p.Email, p.PasswordHash, p.PersonalScore).Scan(&p.ID, &p.CreatedAt)
	return r.handlePlayerError(err)
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p := &models.Player{}
	if err := scanPlayer(getExecutor(r.db, exec).QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) GetByEmail(ctx context.Context, email string) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE email = $1`

	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, email), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player by email: %w", err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY id ASC`
	return r.queryPlayers(ctx, r.db, query)
}

// ListByTournament returns enrolled players in enrollment order.
func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.name, p.email, p.password_hash, p.personal_score, p.avatar_key, p.created_at
		FROM players p
		JOIN tournament_players tp ON tp.player_id = p.id
		WHERE tp.tournament_id = $1
		ORDER BY tp.enrolled_at ASC, p.id ASC`
	return r.queryPlayers(ctx, getExecutor(r.db, exec), query, tournamentID)
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if scanErr := scanPlayer(rows, &p); scanErr != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", scanErr)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during player rows iteration: %w", err)
	}
	return players, nil
}

func (r *postgresPlayerRepository) SetPersonalScore(ctx context.Context, id int, score int) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET personal_score = $1 WHERE id = $2`, score, id)
	if err != nil {
		return fmt.Errorf("failed to set personal score for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) AddPersonalScore(ctx context.Context, exec SQLExecutor, id int, delta int) error {
	query := `UPDATE players SET personal_score = personal_score + $1 WHERE id = $2`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("failed to add personal score for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateAvatarKey(ctx context.Context, id int, avatarKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE players SET avatar_key = $1 WHERE id = $2`, avatarKey, id)
	if err != nil {
		return fmt.Errorf("failed to update avatar key for player %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return r.handlePlayerError(err)
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) handlePlayerError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "players_email_key" {
				return ErrPlayerEmailConflict
			}
		case "23503": // foreign_key_violation
			return ErrPlayerInUse
		}
	}
	return err
}
