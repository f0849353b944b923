package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
	"github.com/Dosada05/magic-tournament/utils"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Player, error)
	Login(ctx context.Context, input LoginInput) (*models.Player, error)
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string
	Password string
}

type authService struct {
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewAuthService(playerRepo repositories.PlayerRepository, logger *slog.Logger) AuthService {
	return &authService{
		playerRepo: playerRepo,
		logger:     loggerOrDefault(logger),
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	email := utils.NormalizeEmail(input.Email)
	if !utils.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	player := &models.Player{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, classifyError(err)
	}

	s.logger.InfoContext(ctx, "player registered", slog.Int("player_id", player.ID))
	player.PasswordHash = ""
	return player, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByEmail(ctx, utils.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, classifyError(fmt.Errorf("failed to find player by email: %w", err))
	}

	ok, err := utils.CheckPasswordHash(input.Password, player.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	player.PasswordHash = ""
	return player, nil
}
