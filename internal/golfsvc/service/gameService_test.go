package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGame(t *testing.T) {
	db := newMemDB()
	games, _, _ := newServices(db, NopNotifier{})

	game, err := games.CreateGame(context.Background())
	require.NoError(t, err)

	assert.Len(t, game.ShortCode, 6)
	assert.Equal(t, 1, game.NumHoles)
	assert.Equal(t, 1, game.CurrentHole)
}

func TestCreateGameExhaustsRetries(t *testing.T) {
	db := newMemDB()
	db.alwaysTaken = true
	games, _, _ := newServices(db, NopNotifier{})

	_, err := games.CreateGame(context.Background())

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 10, db.createGameCalls, "retry budget is bounded")
}

func TestAddHoleAdvancesFrontier(t *testing.T) {
	db := newMemDB()
	games, _, _ := newServices(db, NopNotifier{})
	ctx := context.Background()

	game, err := games.CreateGame(ctx)
	require.NoError(t, err)

	for want := 2; want <= 5; want++ {
		game, err = games.AddHole(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, want, game.NumHoles)
		assert.Equal(t, game.NumHoles, game.CurrentHole, "current hole tracks the new frontier")
	}

	_, err = games.AddHole(ctx, game.ID+99)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestUpdateCurrentHole(t *testing.T) {
	db := newMemDB()
	games, _, _ := newServices(db, NopNotifier{})
	ctx := context.Background()

	game, err := games.CreateGame(ctx)
	require.NoError(t, err)
	game, err = games.AddHole(ctx, game.ID)
	require.NoError(t, err)
	game, err = games.AddHole(ctx, game.ID)
	require.NoError(t, err)
	require.Equal(t, 3, game.NumHoles)

	game, err = games.UpdateCurrentHole(ctx, game.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, game.CurrentHole)

	// currentHole may never point past numHoles
	_, err = games.UpdateCurrentHole(ctx, game.ID, 4)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	stored, err := db.GetGameByID(ctx, game.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.CurrentHole)

	_, err = games.UpdateCurrentHole(ctx, game.ID+99, 1)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestGameViewByCode(t *testing.T) {
	db := newMemDB()
	games, players, scores := newServices(db, NopNotifier{})
	ctx := context.Background()

	game, err := games.CreateGame(ctx)
	require.NoError(t, err)
	p, err := players.AddPlayer(ctx, game.ID, "Alice", "#FF0000")
	require.NoError(t, err)
	_, err = scores.SubmitScore(ctx, p.ID, game.ID, 1, 2)
	require.NoError(t, err)

	view, err := games.GameViewByCode(ctx, game.ShortCode)
	require.NoError(t, err)

	assert.Equal(t, game.ID, view.Game.ID)
	require.Len(t, view.Players, 1)
	require.Len(t, view.Scores, 1)
	require.Len(t, view.Scoreboard, 1)
	assert.True(t, view.HoleComplete, "the only player has scored the current hole")

	_, err = games.GameViewByCode(ctx, "NOSUCH")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	_, err = games.GameViewByCode(ctx, "")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
