package models

import "time"

// Match описывает одну встречу двух игроков.
// Player2ID == nil означает фантомный матч (bye): он создаётся уже сыгранным,
// победителем считается Player1ID. Win == nil пока матч не сыгран или закончился вничью.
type Match struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Player1ID    int       `json:"player1_id" db:"player1_id"`
	Player2ID    *int      `json:"player2_id" db:"player2_id"`
	Phase        int       `json:"phase" db:"phase"`
	Status       bool      `json:"status" db:"status"`
	Win          *int      `json:"win" db:"win"`
	Draw         bool      `json:"draw" db:"draw"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

func (m *Match) IsPhantom() bool {
	return m.Player2ID == nil
}

// HasParticipant reports whether playerID plays in this match.
func (m *Match) HasParticipant(playerID int) bool {
	if m.Player1ID == playerID {
		return true
	}
	return m.Player2ID != nil && *m.Player2ID == playerID
}

// Participants returns the real (non-phantom) players of the match.
func (m *Match) Participants() []int {
	if m.Player2ID == nil {
		return []int{m.Player1ID}
	}
	return []int{m.Player1ID, *m.Player2ID}
}

// Winner returns who advances from a resolved match: the recorded winner,
// or player1 for a phantom match. ok is false for pending or drawn matches.
func (m *Match) Winner() (playerID int, ok bool) {
	if !m.Status || m.Draw {
		return 0, false
	}
	if m.IsPhantom() {
		return m.Player1ID, true
	}
	if m.Win == nil {
		return 0, false
	}
	return *m.Win, true
}
