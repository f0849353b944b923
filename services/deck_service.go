package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/Dosada05/magic-tournament/repositories"
)

const (
	maxDeckNameLength = 120
	maxDeckListLength = 20000
)

type DeckInput struct {
	Name        string `json:"name"`
	Format      string `json:"format"`
	Description string `json:"description"`
	DeckList    string `json:"deck_list"`
}

// UpdateDeckInput: nil поле остаётся без изменений.
type UpdateDeckInput struct {
	Name        *string `json:"name"`
	Format      *string `json:"format"`
	Description *string `json:"description"`
	DeckList    *string `json:"deck_list"`
}

type DeckService interface {
	CreateDeck(ctx context.Context, ownerID int, input DeckInput) (*models.Deck, error)
	GetDeck(ctx context.Context, deckID int) (*models.Deck, error)
	ListDecks(ctx context.Context, ownerID *int) ([]models.Deck, error)
	UpdateDeck(ctx context.Context, deckID, currentPlayerID int, input UpdateDeckInput) (*models.Deck, error)
	DeleteDeck(ctx context.Context, deckID, currentPlayerID int) error
}

type deckService struct {
	deckRepo   repositories.DeckRepository
	playerRepo repositories.PlayerRepository
	logger     *slog.Logger
}

func NewDeckService(deckRepo repositories.DeckRepository, playerRepo repositories.PlayerRepository, logger *slog.Logger) DeckService {
	return &deckService{
		deckRepo:   deckRepo,
		playerRepo: playerRepo,
		logger:     loggerOrDefault(logger),
	}
}

func validateDeck(d *models.Deck) error {
	if d.Name == "" {
		return ErrDeckNameRequired
	}
	if utf8.RuneCountInString(d.Name) > maxDeckNameLength {
		return ErrDeckNameTooLong
	}
	if d.Format == "" {
		return ErrDeckFormatRequired
	}
	if len(d.DeckList) > maxDeckListLength {
		return ErrDeckListTooLong
	}
	return nil
}

func (s *deckService) CreateDeck(ctx context.Context, ownerID int, input DeckInput) (*models.Deck, error) {
	deck := &models.Deck{
		PlayerID:    ownerID,
		Name:        strings.TrimSpace(input.Name),
		Format:      strings.TrimSpace(input.Format),
		Description: strings.TrimSpace(input.Description),
		DeckList:    input.DeckList,
	}
	if err := validateDeck(deck); err != nil {
		return nil, err
	}
	if _, err := s.playerRepo.GetByID(ctx, nil, ownerID); err != nil {
		return nil, classifyError(err)
	}
	if err := s.deckRepo.Create(ctx, deck); err != nil {
		return nil, classifyError(err)
	}
	s.logger.InfoContext(ctx, "deck created", slog.Int("deck_id", deck.ID), slog.Int("player_id", ownerID))
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, deckID int) (*models.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, classifyError(err)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, ownerID *int) ([]models.Deck, error) {
	if ownerID != nil {
		if _, err := s.playerRepo.GetByID(ctx, nil, *ownerID); err != nil {
			return nil, classifyError(err)
		}
	}
	decks, err := s.deckRepo.List(ctx, ownerID)
	if err != nil {
		return nil, classifyError(fmt.Errorf("failed to list decks: %w", err))
	}
	if decks == nil {
		return []models.Deck{}, nil
	}
	return decks, nil
}

// UpdateDeck: править колоду может только её владелец.
func (s *deckService) UpdateDeck(ctx context.Context, deckID, currentPlayerID int, input UpdateDeckInput) (*models.Deck, error) {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return nil, classifyError(err)
	}
	if deck.PlayerID != currentPlayerID {
		return nil, ErrForbiddenOperation
	}

	if input.Name != nil {
		deck.Name = strings.TrimSpace(*input.Name)
	}
	if input.Format != nil {
		deck.Format = strings.TrimSpace(*input.Format)
	}
	if input.Description != nil {
		deck.Description = strings.TrimSpace(*input.Description)
	}
	if input.DeckList != nil {
		deck.DeckList = *input.DeckList
	}
	if err := validateDeck(deck); err != nil {
		return nil, err
	}

	if err := s.deckRepo.Update(ctx, deck); err != nil {
		return nil, classifyError(err)
	}
	s.logger.InfoContext(ctx, "deck updated", slog.Int("deck_id", deckID))
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, deckID, currentPlayerID int) error {
	deck, err := s.deckRepo.GetByID(ctx, deckID)
	if err != nil {
		return classifyError(err)
	}
	if deck.PlayerID != currentPlayerID {
		return ErrForbiddenOperation
	}
	if err := s.deckRepo.Delete(ctx, deckID); err != nil {
		return classifyError(err)
	}
	s.logger.InfoContext(ctx, "deck deleted", slog.Int("deck_id", deckID))
	return nil
}
