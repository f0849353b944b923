package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/magic-tournament/models"
)

var ErrTournamentScoreNotFound = errors.New("tournament score not found")

type TournamentScoreRepository interface {
	Create(ctx context.Context, exec SQLExecutor, score *models.TournamentScore) error
	Get(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) (*models.TournamentScore, error)
	AddPoints(ctx context.Context, exec SQLExecutor, tournamentID, playerID int, points int) error
	// ListByTournament returns scores by score descending, then earlier enrollment.
	// Elimination standings are re-ranked by the service using match results.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentScore, error)
	ListByPlayer(ctx context.Context, playerID int) ([]*models.TournamentScore, error)
	Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error
}

type postgresTournamentScoreRepository struct {
	db *sql.DB
}

func NewPostgresTournamentScoreRepository(db *sql.DB) TournamentScoreRepository {
	return &postgresTournamentScoreRepository{db: db}
}

func (r *postgresTournamentScoreRepository) Create(ctx context.Context, exec SQLExecutor, s *models.TournamentScore) error {
	query := `
		INSERT INTO tournament_scores (tournament_id, player_id, score)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := getExecutor(r.db, exec).QueryRowContext(ctx, query, s.TournamentID, s.PlayerID, s.Score).Scan(&s.ID); err != nil {
		return fmt.Errorf("failed to create score row for t:%d p:%d: %w", s.TournamentID, s.PlayerID, err)
	}
	return nil
}

func (r *postgresTournamentScoreRepository) Get(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) (*models.TournamentScore, error) {
	query := `
		SELECT ts.id, ts.tournament_id, ts.player_id, ts.score, p.name
		FROM tournament_scores ts
		JOIN players p ON p.id = ts.player_id
		WHERE ts.tournament_id = $1 AND ts.player_id = $2`

	s := &models.TournamentScore{}
	err := getExecutor(r.db, exec).QueryRowContext(ctx, query, tournamentID, playerID).
		Scan(&s.ID, &s.TournamentID, &s.PlayerID, &s.Score, &s.PlayerName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentScoreNotFound
		}
		return nil, fmt.Errorf("failed to get score for t:%d p:%d: %w", tournamentID, playerID, err)
	}
	return s, nil
}

func (r *postgresTournamentScoreRepository) AddPoints(ctx context.Context, exec SQLExecutor, tournamentID, playerID int, points int) error {
	query := `UPDATE tournament_scores SET score = score + $1 WHERE tournament_id = $2 AND player_id = $3`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, points, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to add points for t:%d p:%d: %w", tournamentID, playerID, err)
	}
	return checkAffectedRows(result, ErrTournamentScoreNotFound)
}

func (r *postgresTournamentScoreRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]*models.TournamentScore, error) {
	query := `
		SELECT ts.id, ts.tournament_id, ts.player_id, ts.score, p.name
		FROM tournament_scores ts
		JOIN players p ON p.id = ts.player_id
		WHERE ts.tournament_id = $1
		ORDER BY ts.score DESC, ts.id ASC`
	return r.queryScores(ctx, getExecutor(r.db, exec), query, tournamentID)
}

func (r *postgresTournamentScoreRepository) ListByPlayer(ctx context.Context, playerID int) ([]*models.TournamentScore, error) {
	query := `
		SELECT ts.id, ts.tournament_id, ts.player_id, ts.score, p.name
		FROM tournament_scores ts
		JOIN players p ON p.id = ts.player_id
		WHERE ts.player_id = $1
		ORDER BY ts.tournament_id ASC`
	return r.queryScores(ctx, r.db, query, playerID)
}

func (r *postgresTournamentScoreRepository) queryScores(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]*models.TournamentScore, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tournament scores: %w", err)
	}
	defer rows.Close()

	scores := make([]*models.TournamentScore, 0)
	for rows.Next() {
		var s models.TournamentScore
		if scanErr := rows.Scan(&s.ID, &s.TournamentID, &s.PlayerID, &s.Score, &s.PlayerName); scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament score row: %w", scanErr)
		}
		scores = append(scores, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament score rows iteration: %w", err)
	}
	return scores, nil
}

func (r *postgresTournamentScoreRepository) Delete(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error {
	query := `DELETE FROM tournament_scores WHERE tournament_id = $1 AND player_id = $2`
	result, err := getExecutor(r.db, exec).ExecContext(ctx, query, tournamentID, playerID)
	if err != nil {
		return fmt.Errorf("failed to delete score row for t:%d p:%d: %w", tournamentID, playerID, err)
	}
	return checkAffectedRows(result, ErrTournamentScoreNotFound)
}
