package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/magic-tournament/brackets"
	"github.com/Dosada05/magic-tournament/metrics"
	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

type RecordResultInput struct {
	WinnerID int  `json:"winner_id"`
	IsDraw   bool `json:"is_draw"`
}

type MatchService interface {
	RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error)
	GetMatch(ctx context.Context, matchID int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	ListTournamentMatches(ctx context.Context, tournamentID int, phase *int) ([]*models.Match, error)
}

type matchService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	scoreRepo      repositories.TournamentScoreRepository
	events         EventPublisher
	logger         *slog.Logger
}

func NewMatchService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.TournamentScoreRepository,
	events EventPublisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		scoreRepo:      scoreRepo,
		events:         publisherOrNoop(events),
		logger:         loggerOrDefault(logger),
	}
}

func (s *matchService) RecordResult(ctx context.Context, matchID int, input RecordResultInput) (*models.Match, error) {
	var recorded *models.Match

	err := runInTx(ctx, s.tx, s.logger, "record_result", func(exec repositories.SQLExecutor) error {
		m, err := s.matchRepo.GetByID(ctx, exec, matchID)
		if err != nil {
			return err
		}
		// Турнир блокируется раньше матча, как и во всех остальных операциях.
		t, err := s.tournamentRepo.GetForUpdate(ctx, exec, m.TournamentID)
		if err != nil {
			return err
		}
		m, err = s.matchRepo.GetForUpdate(ctx, exec, matchID)
		if err != nil {
			return err
		}

		if m.Status {
			return ErrAlreadyRecorded
		}
		if t.IsFinished() {
			return ErrAlreadyFinished
		}
		if m.IsPhantom() || !m.HasParticipant(input.WinnerID) {
			return fmt.Errorf("%w (player %d, match %d)", ErrInvalidWinner, input.WinnerID, matchID)
		}
		if input.IsDraw && t.IsElimination() {
			return ErrDrawNotAllowed
		}

		var win *int
		if input.IsDraw {
			for _, playerID := range m.Participants() {
				if err := s.scoreRepo.AddPoints(ctx, exec, m.TournamentID, playerID, pointsForDraw); err != nil {
					return fmt.Errorf("failed to award draw point to player %d: %w", playerID, err)
				}
			}
		} else {
			if err := s.scoreRepo.AddPoints(ctx, exec, m.TournamentID, input.WinnerID, pointsForWin); err != nil {
				return fmt.Errorf("failed to award win points to player %d: %w", input.WinnerID, err)
			}
			winnerID := input.WinnerID
			win = &winnerID
		}

		if err := s.matchRepo.RecordResult(ctx, exec, matchID, win, input.IsDraw); err != nil {
			return err
		}

		m.Status = true
		m.Win = win
		m.Draw = input.IsDraw
		recorded = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := metrics.OutcomeWin
	if recorded.Draw {
		outcome = metrics.OutcomeDraw
	}
	metrics.ResultsRecorded.WithLabelValues(outcome).Inc()
	s.logger.InfoContext(ctx, "match result recorded",
		slog.Int("match_id", matchID),
		slog.Int("tournament_id", recorded.TournamentID),
		slog.String("outcome", outcome),
	)
	s.events.PublishTournamentEvent(recorded.TournamentID, brackets.EventMatchRecorded, recorded)

	return recorded, nil
}

func (s *matchService) GetMatch(ctx context.Context, matchID int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, nil, matchID)
	if err != nil {
		return nil, classifyError(err)
	}
	return m, nil
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list matches: %w", err))
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) ListTournamentMatches(ctx context.Context, tournamentID int, phase *int) ([]*models.Match, error) {
	if phase != nil && *phase < 1 {
		return nil, fmt.Errorf("%w: phase must be positive", ErrInvalidInput)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, classifyError(err)
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, phase)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list matches of tournament %d: %w", tournamentID, err))
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}
