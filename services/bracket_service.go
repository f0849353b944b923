package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Dosada05/magic-tournament/brackets"
	"github.com/Dosada05/magic-tournament/metrics"
	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
)

// Бонусы к личному рейтингу за 1, 2 и 3 место.
var podiumBonuses = []int{5, 3, 1}

type PhaseAdvanceResult struct {
	TournamentID   int             `json:"tournament_id"`
	Phase          int             `json:"phase"`
	Matches        []*models.Match `json:"matches"`
	NoFurtherPhase bool            `json:"no_further_phase"`
}

type TournamentFinishedPayload struct {
	TournamentID int               `json:"tournament_id"`
	Standings    []models.Standing `json:"standings"`
}

// BracketService ведёт турнир по состояниям CREATED -> IN_PROGRESS -> FINISHED.
// Каждая операция выполняется в одной транзакции под блокировкой строки турнира.
type BracketService interface {
	StartTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	AdvancePhase(ctx context.Context, tournamentID int) (*PhaseAdvanceResult, error)
	FinishTournament(ctx context.Context, tournamentID int) ([]models.Standing, error)
}

type bracketService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	scoreRepo      repositories.TournamentScoreRepository
	events         EventPublisher
	logger         *slog.Logger
	shuffle        brackets.ShuffleFunc
}

// NewBracketService; shuffle == nil означает случайную перестановку игроков.
func NewBracketService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.TournamentScoreRepository,
	events EventPublisher,
	logger *slog.Logger,
	shuffle brackets.ShuffleFunc,
) BracketService {
	return &bracketService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		scoreRepo:      scoreRepo,
		events:         publisherOrNoop(events),
		logger:         loggerOrDefault(logger),
		shuffle:        shuffle,
	}
}

func (s *bracketService) StartTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	var (
		tournament *models.Tournament
		created    []*models.Match
	)

	err := runInTx(ctx, s.tx, s.logger, "start_tournament", func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if t.IsFinished() {
			return ErrAlreadyFinished
		}

		existing, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID, false)
		if err != nil {
			return fmt.Errorf("failed to count matches of tournament %d: %w", tournamentID, err)
		}
		if existing > 0 {
			return ErrAlreadyStarted
		}

		players, err := s.playerRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list players of tournament %d: %w", tournamentID, err)
		}
		if len(players) < 2 {
			return fmt.Errorf("%w (found %d)", ErrInsufficientPlayers, len(players))
		}

		generator, err := brackets.NewGenerator(t.Type, s.shuffle)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidTournamentType, err)
		}
		matches, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Tournament: t, Players: players})
		if err != nil {
			if errors.Is(err, brackets.ErrInsufficientPlayers) {
				return ErrInsufficientPlayers
			}
			return fmt.Errorf("failed to generate %s bracket: %w", generator.GetName(), err)
		}

		for _, m := range matches {
			if err := s.matchRepo.Create(ctx, exec, m); err != nil {
				return fmt.Errorf("failed to save match for tournament %d: %w", tournamentID, err)
			}
		}

		tournament = t
		created = matches
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.MatchesGenerated.WithLabelValues(string(tournament.Type), metrics.PhaseKindInitial).Add(float64(len(created)))
	s.logger.InfoContext(ctx, "tournament started",
		slog.Int("tournament_id", tournamentID),
		slog.String("type", string(tournament.Type)),
		slog.Int("matches", len(created)),
	)
	s.events.PublishTournamentEvent(tournamentID, brackets.EventTournamentStarted, created)

	return created, nil
}

func (s *bracketService) AdvancePhase(ctx context.Context, tournamentID int) (*PhaseAdvanceResult, error) {
	result := &PhaseAdvanceResult{TournamentID: tournamentID}

	err := runInTx(ctx, s.tx, s.logger, "advance_phase", func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if !t.IsElimination() {
			return ErrNotElimination
		}
		if t.IsFinished() {
			return ErrAlreadyFinished
		}

		phase := t.CurrentPhase
		current, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, &phase)
		if err != nil {
			return fmt.Errorf("failed to list phase %d matches: %w", phase, err)
		}
		if len(current) == 0 {
			return ErrNotStarted
		}

		pending := 0
		for _, m := range current {
			if !m.Status {
				pending++
			} else if m.Draw {
				return fmt.Errorf("%w (match %d)", ErrPhaseHasDraws, m.ID)
			}
		}
		if pending > 0 {
			return fmt.Errorf("%w (%d pending)", ErrPhaseIncomplete, pending)
		}

		generator := brackets.NewSingleEliminationGenerator(s.shuffle)
		next, err := generator.GenerateNextPhase(ctx, t, current)
		if err != nil {
			switch {
			case errors.Is(err, brackets.ErrDrawnMatch):
				return ErrPhaseHasDraws
			case errors.Is(err, brackets.ErrUnresolvedMatch):
				return ErrPhaseIncomplete
			}
			return fmt.Errorf("failed to generate phase %d: %w", phase+1, err)
		}

		if len(next) == 0 {
			result.Phase = phase
			result.Matches = []*models.Match{}
			result.NoFurtherPhase = true
			return nil
		}

		for _, m := range next {
			if err := s.matchRepo.Create(ctx, exec, m); err != nil {
				return fmt.Errorf("failed to save phase %d match: %w", phase+1, err)
			}
		}
		if err := s.tournamentRepo.UpdateCurrentPhase(ctx, exec, tournamentID, phase+1); err != nil {
			return fmt.Errorf("failed to update current phase: %w", err)
		}

		result.Phase = phase + 1
		result.Matches = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.NoFurtherPhase {
		metrics.PhasesAdvanced.WithLabelValues(metrics.AdvanceNoFurtherPhase).Inc()
		s.logger.InfoContext(ctx, "no further phase", slog.Int("tournament_id", tournamentID), slog.Int("phase", result.Phase))
		return result, nil
	}

	metrics.PhasesAdvanced.WithLabelValues(metrics.AdvanceGenerated).Inc()
	metrics.MatchesGenerated.WithLabelValues(string(models.TypeElimination), metrics.PhaseKindNext).Add(float64(len(result.Matches)))
	s.logger.InfoContext(ctx, "phase advanced",
		slog.Int("tournament_id", tournamentID),
		slog.Int("phase", result.Phase),
		slog.Int("matches", len(result.Matches)),
	)
	s.events.PublishTournamentEvent(tournamentID, brackets.EventPhaseAdvanced, result)

	return result, nil
}

func (s *bracketService) FinishTournament(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	var (
		tournament *models.Tournament
		standings  []models.Standing
	)

	err := runInTx(ctx, s.tx, s.logger, "finish_tournament", func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if t.IsFinished() {
			return ErrAlreadyFinished
		}

		total, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID, false)
		if err != nil {
			return fmt.Errorf("failed to count matches: %w", err)
		}
		if total == 0 {
			return ErrNotStarted
		}
		pending, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID, true)
		if err != nil {
			return fmt.Errorf("failed to count pending matches: %w", err)
		}
		if pending > 0 {
			return fmt.Errorf("%w (%d pending)", ErrUnfinishedMatches, pending)
		}

		scores, err := s.scoreRepo.ListByTournament(ctx, exec, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list tournament scores: %w", err)
		}
		matches, err := s.matchRepo.ListByTournament(ctx, exec, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to list tournament matches: %w", err)
		}
		standings = buildStandings(t.Type, scores, matches)

		for i, bonus := range podiumBonuses {
			if i >= len(standings) {
				break
			}
			if err := s.playerRepo.AddPersonalScore(ctx, exec, standings[i].PlayerID, bonus); err != nil {
				return fmt.Errorf("failed to award %d points to player %d: %w", bonus, standings[i].PlayerID, err)
			}
		}

		if err := s.tournamentRepo.MarkFinished(ctx, exec, tournamentID); err != nil {
			return fmt.Errorf("failed to mark tournament finished: %w", err)
		}
		tournament = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.TournamentsFinished.WithLabelValues(string(tournament.Type)).Inc()
	s.logger.InfoContext(ctx, "tournament finished",
		slog.Int("tournament_id", tournamentID),
		slog.Int("players", len(standings)),
	)
	s.events.PublishTournamentEvent(tournamentID, brackets.EventTournamentFinished, TournamentFinishedPayload{
		TournamentID: tournamentID,
		Standings:    standings,
	})

	return standings, nil
}

// deepestRealWins возвращает для каждого игрока самую позднюю фазу, в которой
// он выиграл настоящий (не фантомный) матч.
func deepestRealWins(matches []*models.Match) map[int]int {
	deepest := make(map[int]int)
	for _, m := range matches {
		if m.IsPhantom() {
			continue
		}
		if winnerID, ok := m.Winner(); ok && m.Phase > deepest[winnerID] {
			deepest[winnerID] = m.Phase
		}
	}
	return deepest
}

// rankScores сортирует по очкам по убыванию. При равенстве в турнире на
// выбывание выше тот, кто выиграл настоящий матч в более поздней фазе
// (победитель финала опережает проигравшего). Последний критерий: раньше
// записался (меньший id строки счёта).
func rankScores(tournamentType models.TournamentType, scores []*models.TournamentScore, matches []*models.Match) []*models.TournamentScore {
	var deepest map[int]int
	if tournamentType == models.TypeElimination {
		deepest = deepestRealWins(matches)
	}

	ranked := make([]*models.TournamentScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if pi, pj := deepest[ranked[i].PlayerID], deepest[ranked[j].PlayerID]; pi != pj {
			return pi > pj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

func buildStandings(tournamentType models.TournamentType, scores []*models.TournamentScore, matches []*models.Match) []models.Standing {
	ranked := rankScores(tournamentType, scores, matches)
	standings := make([]models.Standing, 0, len(ranked))
	for i, sc := range ranked {
		standings = append(standings, models.Standing{
			Position:   i + 1,
			PlayerID:   sc.PlayerID,
			PlayerName: sc.PlayerName,
			FinalScore: sc.Score,
		})
	}
	return standings
}
