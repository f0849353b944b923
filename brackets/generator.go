package brackets

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Dosada05/magic-tournament/models"
)

var (
	ErrInsufficientPlayers = errors.New("not enough players to generate matches (minimum 2)")
	ErrUnresolvedMatch     = errors.New("previous phase contains an unresolved match")
	ErrDrawnMatch          = errors.New("previous phase contains a drawn match")
	ErrUnsupportedType     = errors.New("unsupported tournament type")
)

// ShuffleFunc has the signature of rand.Shuffle so tests can pin the order.
type ShuffleFunc func(n int, swap func(i, j int))

type GenerateBracketParams struct {
	Tournament *models.Tournament
	Players    []models.Player
}

// BracketGenerator builds the matches a tournament needs when it starts.
// Generators never touch storage: they only construct new Match values.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*models.Match, error)

	GetName() string
}

// PhaseGenerator is implemented by formats that are played phase by phase.
// An empty result with a nil error means no further phase is possible.
type PhaseGenerator interface {
	GenerateNextPhase(ctx context.Context, tournament *models.Tournament, completed []*models.Match) ([]*models.Match, error)
}

// NewGenerator returns the generator for the tournament type.
// A nil shuffle falls back to rand.Shuffle.
func NewGenerator(tournamentType models.TournamentType, shuffle ShuffleFunc) (BracketGenerator, error) {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	switch tournamentType {
	case models.TypeRoundRobin:
		return NewRoundRobinGenerator(shuffle), nil
	case models.TypeElimination:
		return NewSingleEliminationGenerator(shuffle), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, tournamentType)
	}
}

func shuffledPlayerIDs(players []models.Player, shuffle ShuffleFunc) []int {
	ids := make([]int, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
	return ids
}
