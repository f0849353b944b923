package models

// TournamentScore хранит очки игрока внутри одного турнира (не путать с Player.PersonalScore).
type TournamentScore struct {
	ID           int `json:"id" db:"id"`
	TournamentID int `json:"tournament_id" db:"tournament_id"`
	PlayerID     int `json:"player_id" db:"player_id"`
	Score        int `json:"score" db:"score"`

	// Заполняется репозиторием при выборке итоговой таблицы
	PlayerName string `json:"player_name,omitempty" db:"-"`
}

// Standing is one row of the final ranking, 1-indexed by Position.
type Standing struct {
	Position   int    `json:"position"`
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	FinalScore int    `json:"final_score"`
}
