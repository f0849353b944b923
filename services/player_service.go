package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
	"github.com/Dosada05/magic-tournament/storage"
	"github.com/google/uuid"
)

const avatarKeyPrefix = "avatars"

type PlayerService interface {
	GetPlayer(ctx context.Context, playerID int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	SetPersonalScore(ctx context.Context, playerID, currentPlayerID int, score int) (*models.Player, error)
	DeletePlayer(ctx context.Context, playerID, currentPlayerID int) error
	ListPlayerMatches(ctx context.Context, playerID int) ([]*models.Match, error)
	ListPlayerScores(ctx context.Context, playerID int) ([]*models.TournamentScore, error)
	UploadAvatar(ctx context.Context, playerID, currentPlayerID int, contentType string, file io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	scoreRepo  repositories.TournamentScoreRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

// NewPlayerService; uploader может быть nil, тогда загрузка аватаров отключена.
func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	scoreRepo repositories.TournamentScoreRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		scoreRepo:  scoreRepo,
		uploader:   uploader,
		logger:     loggerOrDefault(logger),
	}
}

func (s *playerService) withAvatarURL(p *models.Player) {
	p.PasswordHash = ""
	if s.uploader == nil || p.AvatarKey == nil || *p.AvatarKey == "" {
		return
	}
	url := s.uploader.GetPublicURL(*p.AvatarKey)
	if url != "" {
		p.AvatarURL = &url
	}
}

func (s *playerService) GetPlayer(ctx context.Context, playerID int) (*models.Player, error) {
	p, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return nil, classifyError(err)
	}
	s.withAvatarURL(p)
	return p, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list players: %w", err))
	}
	if players == nil {
		return []models.Player{}, nil
	}
	for i := range players {
		s.withAvatarURL(&players[i])
	}
	return players, nil
}

// SetPersonalScore: ручная правка рейтинга, в обход завершения турниров.
// Игрок может править только свой рейтинг.
func (s *playerService) SetPersonalScore(ctx context.Context, playerID, currentPlayerID int, score int) (*models.Player, error) {
	if playerID != currentPlayerID {
		return nil, ErrForbiddenOperation
	}
	if score < 0 {
		return nil, ErrNegativeScore
	}
	if err := s.playerRepo.SetPersonalScore(ctx, playerID, score); err != nil {
		return nil, classifyError(err)
	}
	s.logger.InfoContext(ctx, "personal score set", slog.Int("player_id", playerID), slog.Int("score", score))
	return s.GetPlayer(ctx, playerID)
}

// DeletePlayer удаляет только собственный аккаунт.
func (s *playerService) DeletePlayer(ctx context.Context, playerID, currentPlayerID int) error {
	if playerID != currentPlayerID {
		return ErrForbiddenOperation
	}
	p, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return classifyError(err)
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return classifyError(err)
	}
	if p.AvatarKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *p.AvatarKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete avatar of removed player",
				slog.Int("player_id", playerID), slog.Any("error", err))
		}
	}
	return nil
}

func (s *playerService) ListPlayerMatches(ctx context.Context, playerID int) ([]*models.Match, error) {
	if _, err := s.playerRepo.GetByID(ctx, nil, playerID); err != nil {
		return nil, classifyError(err)
	}
	matches, err := s.matchRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list matches of player %d: %w", playerID, err))
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *playerService) ListPlayerScores(ctx context.Context, playerID int) ([]*models.TournamentScore, error) {
	if _, err := s.playerRepo.GetByID(ctx, nil, playerID); err != nil {
		return nil, classifyError(err)
	}
	scores, err := s.scoreRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list scores of player %d: %w", playerID, err))
	}
	if scores == nil {
		return []*models.TournamentScore{}, nil
	}
	return scores, nil
}

// UploadAvatar заменяет аватар игрока. Менять можно только свой аватар.
func (s *playerService) UploadAvatar(ctx context.Context, playerID, currentPlayerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrAvatarUploadDisabled
	}
	if playerID != currentPlayerID {
		return nil, ErrForbiddenOperation
	}
	ext, ok := storage.ExtensionForImageType(contentType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	p, err := s.playerRepo.GetByID(ctx, nil, playerID)
	if err != nil {
		return nil, classifyError(err)
	}
	oldKey := p.AvatarKey

	newKey := fmt.Sprintf("%s/player_%d/%s%s", avatarKeyPrefix, playerID, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, newKey, contentType, file); err != nil {
		return nil, classifyError(fmt.Errorf("failed to upload avatar: %w", err))
	}

	if err := s.playerRepo.UpdateAvatarKey(ctx, playerID, &newKey); err != nil {
		if delErr := s.uploader.Delete(context.WithoutCancel(ctx), newKey); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned avatar", slog.String("key", newKey), slog.Any("error", delErr))
		}
		return nil, classifyError(err)
	}

	if oldKey != nil && *oldKey != "" && *oldKey != newKey {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous avatar", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	p.AvatarKey = &newKey
	s.withAvatarURL(p)
	return p, nil
}
