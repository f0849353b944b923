package models

import "time"

// Deck принадлежит игроку; DeckList хранится как есть, одной строкой.
type Deck struct {
	ID          int       `json:"id" db:"id"`
	PlayerID    int       `json:"player_id" db:"player_id"`
	Name        string    `json:"name" db:"name"`
	Format      string    `json:"format" db:"format"`
	Description string    `json:"description" db:"description"`
	DeckList    string    `json:"deck_list" db:"deck_list"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
