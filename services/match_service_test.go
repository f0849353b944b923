package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/magic-tournament/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedRoundRobin(t *testing.T, f *fixture, names ...string) (*models.Tournament, []*models.Player, []*models.Match) {
	t.Helper()
	players := make([]*models.Player, 0, len(names))
	for _, name := range names {
		players = append(players, f.addPlayer(t, name))
	}
	tournament := f.addTournament(t, models.TypeRoundRobin, players...)
	matches, err := f.bracketSvc.StartTournament(context.Background(), tournament.ID)
	require.NoError(t, err)
	return tournament, players, matches
}

func TestRecordResult_WinAwardsThreePoints(t *testing.T) {
	f := newFixture()
	tournament, players, matches := startedRoundRobin(t, f, "Alice", "Bob")
	a, b := players[0], players[1]

	recorded, err := f.matchSvc.RecordResult(context.Background(), matches[0].ID, RecordResultInput{WinnerID: b.ID})
	require.NoError(t, err)
	assert.True(t, recorded.Status)
	require.NotNil(t, recorded.Win)
	assert.Equal(t, b.ID, *recorded.Win)
	assert.False(t, recorded.Draw)

	assert.Equal(t, 3, f.score(t, tournament.ID, b.ID))
	assert.Equal(t, 0, f.score(t, tournament.ID, a.ID))

	stored, err := f.matchSvc.GetMatch(context.Background(), matches[0].ID)
	require.NoError(t, err)
	assert.True(t, stored.Status)
	assert.Equal(t, b.ID, *stored.Win)
}

func TestRecordResult_DrawAwardsOnePointEach(t *testing.T) {
	f := newFixture()
	tournament, players, matches := startedRoundRobin(t, f, "Alice", "Bob")

	recorded, err := f.matchSvc.RecordResult(context.Background(), matches[0].ID, RecordResultInput{WinnerID: players[0].ID, IsDraw: true})
	require.NoError(t, err)
	assert.True(t, recorded.Status)
	assert.True(t, recorded.Draw)
	assert.Nil(t, recorded.Win)

	assert.Equal(t, 1, f.score(t, tournament.ID, players[0].ID))
	assert.Equal(t, 1, f.score(t, tournament.ID, players[1].ID))
}

func TestRecordResult_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("match not found", func(t *testing.T) {
		f := newFixture()
		_, err := f.matchSvc.RecordResult(ctx, 404, RecordResultInput{WinnerID: 1})
		assert.ErrorIs(t, err, ErrMatchNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("winner is not a participant", func(t *testing.T) {
		f := newFixture()
		tournament, players, matches := startedRoundRobin(t, f, "Alice", "Bob", "Carol")
		outsider := f.addPlayer(t, "Mallory")

		// Первый матч A-B, Carol в нём не играет.
		carol := players[2]
		_, err := f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: carol.ID})
		assert.ErrorIs(t, err, ErrInvalidWinner)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: outsider.ID})
		assert.ErrorIs(t, err, ErrInvalidWinner)

		// Даже ничья требует указать участника.
		_, err = f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: outsider.ID, IsDraw: true})
		assert.ErrorIs(t, err, ErrInvalidWinner)

		m, err := f.matchSvc.GetMatch(ctx, matches[0].ID)
		require.NoError(t, err)
		assert.False(t, m.Status)
		assert.Equal(t, 0, f.score(t, tournament.ID, m.Player1ID))
	})

	t.Run("already recorded", func(t *testing.T) {
		f := newFixture()
		tournament, players, matches := startedRoundRobin(t, f, "Alice", "Bob")
		f.win(t, matches[0].ID, players[0].ID)

		_, err := f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: players[1].ID})
		assert.ErrorIs(t, err, ErrAlreadyRecorded)
		assert.ErrorIs(t, err, ErrInvalidState)

		assert.Equal(t, 3, f.score(t, tournament.ID, players[0].ID))
		assert.Equal(t, 0, f.score(t, tournament.ID, players[1].ID))
	})

	t.Run("phantom match is already resolved", func(t *testing.T) {
		f := newFixture()
		a, b, c := f.addPlayer(t, "Alice"), f.addPlayer(t, "Bob"), f.addPlayer(t, "Carol")
		tournament := f.addTournament(t, models.TypeElimination, a, b, c)
		matches, err := f.bracketSvc.StartTournament(ctx, tournament.ID)
		require.NoError(t, err)

		_, err = f.matchSvc.RecordResult(ctx, matches[1].ID, RecordResultInput{WinnerID: c.ID})
		assert.ErrorIs(t, err, ErrAlreadyRecorded)
		assert.Equal(t, 0, f.score(t, tournament.ID, c.ID))
	})

	t.Run("draw in elimination", func(t *testing.T) {
		f := newFixture()
		a, b := f.addPlayer(t, "Alice"), f.addPlayer(t, "Bob")
		tournament := f.addTournament(t, models.TypeElimination, a, b)
		matches, err := f.bracketSvc.StartTournament(ctx, tournament.ID)
		require.NoError(t, err)

		_, err = f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: a.ID, IsDraw: true})
		assert.ErrorIs(t, err, ErrDrawNotAllowed)
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Equal(t, 0, f.score(t, tournament.ID, a.ID))
	})
}

func TestRecordResult_RollsBackPointsOnFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tournament, players, matches := startedRoundRobin(t, f, "Alice", "Bob")

	f.store.failOn["RecordResult"] = errors.New("deadlock detected")
	_, err := f.matchSvc.RecordResult(ctx, matches[0].ID, RecordResultInput{WinnerID: players[0].ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)

	assert.Equal(t, 0, f.score(t, tournament.ID, players[0].ID))
	m, err := f.matchSvc.GetMatch(ctx, matches[0].ID)
	require.NoError(t, err)
	assert.False(t, m.Status)
	assert.Nil(t, m.Win)
}

func TestListTournamentMatches_PhaseFilter(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, b, c, d := f.addPlayer(t, "Alice"), f.addPlayer(t, "Bob"), f.addPlayer(t, "Carol"), f.addPlayer(t, "Dave")
	tournament := f.addTournament(t, models.TypeElimination, a, b, c, d)
	matches, err := f.bracketSvc.StartTournament(ctx, tournament.ID)
	require.NoError(t, err)
	f.win(t, matches[0].ID, a.ID)
	f.win(t, matches[1].ID, d.ID)
	_, err = f.bracketSvc.AdvancePhase(ctx, tournament.ID)
	require.NoError(t, err)

	all, err := f.matchSvc.ListTournamentMatches(ctx, tournament.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	second, err := f.matchSvc.ListTournamentMatches(ctx, tournament.ID, intPtr(2))
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, a.ID, second[0].Player1ID)
	assert.Equal(t, d.ID, *second[0].Player2ID)

	_, err = f.matchSvc.ListTournamentMatches(ctx, tournament.ID, intPtr(0))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.matchSvc.ListTournamentMatches(ctx, 404, nil)
	assert.ErrorIs(t, err, ErrTournamentNotFound)

	everything, err := f.matchSvc.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, everything, 3)
}
