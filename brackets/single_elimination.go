package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/magic-tournament/models"
)

type SingleEliminationGenerator struct {
	shuffle ShuffleFunc
}

func NewSingleEliminationGenerator(shuffle ShuffleFunc) *SingleEliminationGenerator {
	return &SingleEliminationGenerator{shuffle: shuffle}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

// GenerateBracket builds phase 1 only; later phases depend on results and
// are produced by GenerateNextPhase.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	n := len(params.Players)
	if n < 2 {
		return nil, fmt.Errorf("SingleEliminationGenerator: %w (found %d)", ErrInsufficientPlayers, n)
	}

	ids := shuffledPlayerIDs(params.Players, g.shuffle)
	return pairConsecutive(params.Tournament.ID, ids, 1), nil
}

// GenerateNextPhase pairs the winners of the completed phase in the order
// their matches were played. Phantom matches advance player1. Fewer than two
// winners yields no matches: the bracket is exhausted.
func (g *SingleEliminationGenerator) GenerateNextPhase(ctx context.Context, tournament *models.Tournament, completed []*models.Match) ([]*models.Match, error) {
	winners := make([]int, 0, len(completed))
	phase := 0

	for _, m := range completed {
		if !m.Status {
			return nil, fmt.Errorf("%w: match %d", ErrUnresolvedMatch, m.ID)
		}
		if m.Draw {
			return nil, fmt.Errorf("%w: match %d", ErrDrawnMatch, m.ID)
		}
		winnerID, ok := m.Winner()
		if !ok {
			return nil, fmt.Errorf("%w: match %d has no winner", ErrUnresolvedMatch, m.ID)
		}
		winners = append(winners, winnerID)
		if m.Phase > phase {
			phase = m.Phase
		}
	}

	if len(winners) < 2 {
		return []*models.Match{}, nil
	}

	return pairConsecutive(tournament.ID, winners, phase+1), nil
}

// pairConsecutive pairs (0,1), (2,3), ... and gives an odd last player a
// phantom match that is already resolved in their favour.
func pairConsecutive(tournamentID int, ids []int, phase int) []*models.Match {
	matches := make([]*models.Match, 0, (len(ids)+1)/2)

	for i := 0; i+1 < len(ids); i += 2 {
		p2ID := ids[i+1]
		matches = append(matches, &models.Match{
			TournamentID: tournamentID,
			Player1ID:    ids[i],
			Player2ID:    &p2ID,
			Phase:        phase,
		})
	}

	if len(ids)%2 != 0 {
		byeID := ids[len(ids)-1]
		matches = append(matches, &models.Match{
			TournamentID: tournamentID,
			Player1ID:    byeID,
			Player2ID:    nil,
			Phase:        phase,
			Status:       true,
			Win:          &byeID,
			Draw:         false,
		})
	}

	return matches
}
