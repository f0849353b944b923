package models

import "time"

// TournamentType задаётся при создании и больше не меняется.
type TournamentType string

const (
	TypeRoundRobin  TournamentType = "roundRobin"
	TypeElimination TournamentType = "elimination"
)

func (t TournamentType) IsValid() bool {
	switch t {
	case TypeRoundRobin, TypeElimination:
		return true
	}
	return false
}

// Tournament представляет турнир. Status == true означает, что турнир завершён.
type Tournament struct {
	ID           int            `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Type         TournamentType `json:"type" db:"type"`
	Status       bool           `json:"status" db:"status"`
	CurrentPhase int            `json:"current_phase" db:"current_phase"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	Players        []Player          `json:"players,omitempty" db:"-"`
	Matches        []Match           `json:"matches,omitempty" db:"-"`
	Scores         []TournamentScore `json:"scores,omitempty" db:"-"`
	FinalStandings []Standing        `json:"final_standings,omitempty" db:"-"`
}

func (t *Tournament) IsFinished() bool {
	return t.Status
}

func (t *Tournament) IsElimination() bool {
	return t.Type == TypeElimination
}
