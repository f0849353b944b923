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
	ErrDeckNotFound     = errors.New("deck not found")
	ErrDeckOwnerInvalid = errors.New("deck owner does not exist")
)

type DeckRepository interface {
	Create(ctx context.Context, deck *models.Deck) error
	GetByID(ctx context.Context, id int) (*models.Deck, error)
	// List returns all decks, or only the decks of ownerID when it is set.
	List(ctx context.Context, ownerID *int) ([]models.Deck, error)
	Update(ctx context.Context, deck *models.Deck) error
	Delete(ctx context.Context, id int) error
}

type postgresDeckRepository struct {
	db *sql.DB
}

func NewPostgresDeckRepository(db *sql.DB) DeckRepository {
	return &postgresDeckRepository{db: db}
}

const deckColumns = `id, player_id, name, format, description, deck_list, created_at`

func scanDeck(row rowScanner, d *models.Deck) error {
	return row.Scan(&d.ID, &d.PlayerID, &d.Name, &d.Format, &d.Description, &d.DeckList, &d.CreatedAt)
}

func (r *postgresDeckRepository) Create(ctx context.Context, d *models.Deck) error {
	query := `
		INSERT INTO decks (player_id, name, format, description, deck_list)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, d.PlayerID, d.Name, d.Format, d.Description, d.DeckList).Scan(&d.ID, &d.CreatedAt)
	return r.handleDeckError(err)
}

func (r *postgresDeckRepository) GetByID(ctx context.Context, id int) (*models.Deck, error) {
	d := &models.Deck{}
	err := scanDeck(r.db.QueryRowContext(ctx, `SELECT `+deckColumns+` FROM decks WHERE id = $1`, id), d)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck %d: %w", id, err)
	}
	return d, nil
}

func (r *postgresDeckRepository) List(ctx context.Context, ownerID *int) ([]models.Deck, error) {
	query := `SELECT ` + deckColumns + ` FROM decks`
	args := []interface{}{}
	if ownerID != nil {
		query += ` WHERE player_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer rows.Close()

	decks := make([]models.Deck, 0)
	for rows.Next() {
		var d models.Deck
		if scanErr := scanDeck(rows, &d); scanErr != nil {
			return nil, fmt.Errorf("failed to scan deck row: %w", scanErr)
		}
		decks = append(decks, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during deck rows iteration: %w", err)
	}
	return decks, nil
}

// Update overwrites the editable fields; the owner never changes.
func (r *postgresDeckRepository) Update(ctx context.Context, d *models.Deck) error {
	query := `
		UPDATE decks
		SET name = $1, format = $2, description = $3, deck_list = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, d.Name, d.Format, d.Description, d.DeckList, d.ID)
	if err != nil {
		return fmt.Errorf("failed to update deck %d: %w", d.ID, err)
	}
	return checkAffectedRows(result, ErrDeckNotFound)
}

func (r *postgresDeckRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrDeckNotFound)
}

func (r *postgresDeckRepository) handleDeckError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "decks_player_id_fkey" {
		return ErrDeckOwnerInvalid
	}
	return fmt.Errorf("failed to save deck: %w", err)
}
