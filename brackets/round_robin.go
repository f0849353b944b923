package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/magic-tournament/models"
)

type RoundRobinGenerator struct {
	shuffle ShuffleFunc
}

func NewRoundRobinGenerator(shuffle ShuffleFunc) BracketGenerator {
	return &RoundRobinGenerator{shuffle: shuffle}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// GenerateBracket creates the whole round-robin schedule at once: every
// unordered pair of players meets exactly once, n*(n-1)/2 matches in phase 1.
// Players are shuffled first so the display order carries no seeding.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error) {
	n := len(params.Players)
	if n < 2 {
		return nil, fmt.Errorf("RoundRobinGenerator: %w (found %d)", ErrInsufficientPlayers, n)
	}

	ids := shuffledPlayerIDs(params.Players, g.shuffle)
	matches := make([]*models.Match, 0, n*(n-1)/2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p2ID := ids[j]
			matches = append(matches, &models.Match{
				TournamentID: params.Tournament.ID,
				Player1ID:    ids[i],
				Player2ID:    &p2ID,
				Phase:        1,
			})
		}
	}

	return matches, nil
}
