package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListDecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addPlayer(t, "Alice")
	bob := f.addPlayer(t, "Bob")

	burn, err := f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: " Mono Red Burn ", Format: "Modern", DeckList: "4 Lightning Bolt"})
	require.NoError(t, err)
	assert.Equal(t, "Mono Red Burn", burn.Name)
	assert.Equal(t, alice.ID, burn.PlayerID)
	assert.NotZero(t, burn.ID)

	_, err = f.deckSvc.CreateDeck(ctx, bob.ID, DeckInput{Name: "Elves", Format: "Legacy"})
	require.NoError(t, err)

	all, err := f.deckSvc.ListDecks(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.deckSvc.ListDecks(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, burn.ID, own[0].ID)

	missing := 999
	_, err = f.deckSvc.ListDecks(ctx, &missing)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	got, err := f.deckSvc.GetDeck(ctx, burn.ID)
	require.NoError(t, err)
	assert.Equal(t, "4 Lightning Bolt", got.DeckList)

	_, err = f.deckSvc.GetDeck(ctx, 999)
	assert.ErrorIs(t, err, ErrDeckNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDeck_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addPlayer(t, "Alice")

	_, err := f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "  ", Format: "Modern"})
	assert.ErrorIs(t, err, ErrDeckNameRequired)

	_, err = f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: strings.Repeat("x", maxDeckNameLength+1), Format: "Modern"})
	assert.ErrorIs(t, err, ErrDeckNameTooLong)

	_, err = f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "Burn"})
	assert.ErrorIs(t, err, ErrDeckFormatRequired)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "Burn", Format: "Modern", DeckList: strings.Repeat("x", maxDeckListLength+1)})
	assert.ErrorIs(t, err, ErrDeckListTooLong)

	_, err = f.deckSvc.CreateDeck(ctx, 999, DeckInput{Name: "Burn", Format: "Modern"})
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	assert.Empty(t, f.store.decks)
}

func TestUpdateDeck(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addPlayer(t, "Alice")
	bob := f.addPlayer(t, "Bob")

	deck, err := f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "Burn", Format: "Modern", Description: "fast"})
	require.NoError(t, err)

	t.Run("owner edits selected fields", func(t *testing.T) {
		name := "Boros Burn"
		list := "4 Lightning Helix"
		updated, err := f.deckSvc.UpdateDeck(ctx, deck.ID, alice.ID, UpdateDeckInput{Name: &name, DeckList: &list})
		require.NoError(t, err)
		assert.Equal(t, "Boros Burn", updated.Name)
		assert.Equal(t, "Modern", updated.Format)
		assert.Equal(t, "fast", updated.Description)
		assert.Equal(t, "4 Lightning Helix", f.store.decks[deck.ID].DeckList)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		name := "Stolen"
		_, err := f.deckSvc.UpdateDeck(ctx, deck.ID, bob.ID, UpdateDeckInput{Name: &name})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
		assert.Equal(t, "Boros Burn", f.store.decks[deck.ID].Name)
	})

	t.Run("empty format rejected", func(t *testing.T) {
		empty := ""
		_, err := f.deckSvc.UpdateDeck(ctx, deck.ID, alice.ID, UpdateDeckInput{Format: &empty})
		assert.ErrorIs(t, err, ErrDeckFormatRequired)
		assert.Equal(t, "Modern", f.store.decks[deck.ID].Format)
	})

	t.Run("missing deck", func(t *testing.T) {
		_, err := f.deckSvc.UpdateDeck(ctx, 999, alice.ID, UpdateDeckInput{})
		assert.ErrorIs(t, err, ErrDeckNotFound)
	})
}

func TestDeleteDeck(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addPlayer(t, "Alice")
	bob := f.addPlayer(t, "Bob")

	deck, err := f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "Burn", Format: "Modern"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.deckSvc.DeleteDeck(ctx, deck.ID, bob.ID), ErrForbiddenOperation)
	assert.Contains(t, f.store.decks, deck.ID)

	require.NoError(t, f.deckSvc.DeleteDeck(ctx, deck.ID, alice.ID))
	assert.NotContains(t, f.store.decks, deck.ID)

	assert.ErrorIs(t, f.deckSvc.DeleteDeck(ctx, deck.ID, alice.ID), ErrDeckNotFound)
}

func TestDeletePlayer_RemovesOwnDecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.addPlayer(t, "Alice")
	bob := f.addPlayer(t, "Bob")

	_, err := f.deckSvc.CreateDeck(ctx, alice.ID, DeckInput{Name: "Burn", Format: "Modern"})
	require.NoError(t, err)
	kept, err := f.deckSvc.CreateDeck(ctx, bob.ID, DeckInput{Name: "Elves", Format: "Legacy"})
	require.NoError(t, err)

	require.NoError(t, f.playerSvc.DeletePlayer(ctx, alice.ID, alice.ID))

	decks, err := f.deckSvc.ListDecks(ctx, nil)
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Equal(t, kept.ID, decks[0].ID)
}
