package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

const maxTournamentNameLength = 120

type CreateTournamentInput struct {
	Name string                `json:"name"`
	Type models.TournamentType `json:"type"`
}

type ListTournamentsInput struct {
	Type     *models.TournamentType
	Finished *bool
	Limit    int
	Offset   int
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error)
	GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error)
	GetTournamentDetails(ctx context.Context, tournamentID int) (*models.Tournament, error)
	RenameTournament(ctx context.Context, tournamentID int, name string) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, tournamentID int) error
	EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.TournamentScore, error)
	RemovePlayer(ctx context.Context, tournamentID, playerID int) error
	GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error)
}

type tournamentService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	matchRepo      repositories.MatchRepository
	scoreRepo      repositories.TournamentScoreRepository
	logger         *slog.Logger
}

func NewTournamentService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.TournamentScoreRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
		scoreRepo:      scoreRepo,
		logger:         loggerOrDefault(logger),
	}
}

func validateTournamentName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrTournamentNameRequired
	}
	if len(name) > maxTournamentNameLength {
		return "", fmt.Errorf("%w: tournament name is longer than %d characters", ErrInvalidInput, maxTournamentNameLength)
	}
	return name, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name, err := validateTournamentName(input.Name)
	if err != nil {
		return nil, err
	}
	if !input.Type.IsValid() {
		return nil, ErrInvalidTournamentType
	}

	t := &models.Tournament{
		Name:         name,
		Type:         input.Type,
		Status:       false,
		CurrentPhase: 1,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, classifyError(fmt.Errorf("failed to create tournament: %w", err))
	}

	s.logger.InfoContext(ctx, "tournament created", slog.Int("tournament_id", t.ID), slog.String("type", string(t.Type)))
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]models.Tournament, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, ErrInvalidTournamentType
	}
	if input.Limit < 0 || input.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset cannot be negative", ErrInvalidInput)
	}

	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Type:     input.Type,
		Finished: input.Finished,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list tournaments: %w", err))
	}
	if tournaments == nil {
		return []models.Tournament{}, nil
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, classifyError(err)
	}
	return t, nil
}

// GetTournamentDetails загружает игроков, матчи и счёт турнира параллельно.
func (s *tournamentService) GetTournamentDetails(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	t, err := s.GetTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var (
		players []models.Player
		matches []*models.Match
		scores  []*models.TournamentScore
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByTournament(gctx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, nil, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		scores, err = s.scoreRepo.ListByTournament(gctx, nil, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list scores: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, classifyError(fmt.Errorf("tournament %d details: %w", tournamentID, err))
	}

	t.Players = players
	if t.Players == nil {
		t.Players = []models.Player{}
	}
	t.Matches = make([]models.Match, 0, len(matches))
	for _, m := range matches {
		t.Matches = append(t.Matches, *m)
	}
	ranked := rankScores(t.Type, scores, matches)
	t.Scores = make([]models.TournamentScore, 0, len(ranked))
	for _, sc := range ranked {
		t.Scores = append(t.Scores, *sc)
	}
	if t.IsFinished() {
		t.FinalStandings = buildStandings(t.Type, scores, matches)
	}

	return t, nil
}

func (s *tournamentService) RenameTournament(ctx context.Context, tournamentID int, name string) (*models.Tournament, error) {
	name, err := validateTournamentName(name)
	if err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.UpdateName(ctx, tournamentID, name); err != nil {
		return nil, classifyError(err)
	}
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, classifyError(err)
	}
	return t, nil
}

// DeleteTournament удаляет турнир вместе с матчами, записями и счётом (каскадно).
// Личный рейтинг игроков, полученный при завершении, не откатывается.
func (s *tournamentService) DeleteTournament(ctx context.Context, tournamentID int) error {
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		return classifyError(err)
	}
	s.logger.InfoContext(ctx, "tournament deleted", slog.Int("tournament_id", tournamentID))
	return nil
}

// ensureNotStarted: записывать и выписывать игроков можно только до генерации матчей.
func (s *tournamentService) ensureNotStarted(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) error {
	t, err := s.tournamentRepo.GetForUpdate(ctx, exec, tournamentID)
	if err != nil {
		return err
	}
	if t.IsFinished() {
		return ErrAlreadyFinished
	}
	count, err := s.matchRepo.CountByTournament(ctx, exec, tournamentID, false)
	if err != nil {
		return fmt.Errorf("failed to count matches: %w", err)
	}
	if count > 0 {
		return ErrAlreadyStarted
	}
	return nil
}

func (s *tournamentService) EnrollPlayer(ctx context.Context, tournamentID, playerID int) (*models.TournamentScore, error) {
	var score *models.TournamentScore

	err := runInTx(ctx, s.tx, s.logger, "enroll_player", func(exec repositories.SQLExecutor) error {
		if err := s.ensureNotStarted(ctx, exec, tournamentID); err != nil {
			return err
		}
		player, err := s.playerRepo.GetByID(ctx, exec, playerID)
		if err != nil {
			return err
		}
		if err := s.tournamentRepo.AddPlayer(ctx, exec, tournamentID, playerID); err != nil {
			return err
		}
		sc := &models.TournamentScore{TournamentID: tournamentID, PlayerID: playerID, Score: 0}
		if err := s.scoreRepo.Create(ctx, exec, sc); err != nil {
			return fmt.Errorf("failed to create score row: %w", err)
		}
		sc.PlayerName = player.Name
		score = sc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "player enrolled", slog.Int("tournament_id", tournamentID), slog.Int("player_id", playerID))
	return score, nil
}

func (s *tournamentService) RemovePlayer(ctx context.Context, tournamentID, playerID int) error {
	err := runInTx(ctx, s.tx, s.logger, "remove_player", func(exec repositories.SQLExecutor) error {
		if err := s.ensureNotStarted(ctx, exec, tournamentID); err != nil {
			return err
		}
		if err := s.tournamentRepo.RemovePlayer(ctx, exec, tournamentID, playerID); err != nil {
			return err
		}
		if err := s.scoreRepo.Delete(ctx, exec, tournamentID, playerID); err != nil {
			return fmt.Errorf("failed to delete score row: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player removed", slog.Int("tournament_id", tournamentID), slog.Int("player_id", playerID))
	return nil
}

func (s *tournamentService) GetStandings(ctx context.Context, tournamentID int) ([]models.Standing, error) {
	t, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, classifyError(err)
	}
	if !t.IsFinished() {
		return nil, ErrNotFinished
	}
	scores, err := s.scoreRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list scores: %w", err))
	}
	matches, err := s.matchRepo.ListByTournament(ctx, nil, tournamentID, nil)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list matches: %w", err))
	}
	return buildStandings(t.Type, scores, matches), nil
}
