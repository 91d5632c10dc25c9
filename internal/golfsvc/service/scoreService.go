package service

import (
	"context"

	"github.com/avvvet/minigolf-services/internal/golfsvc/models"
	"github.com/shopspring/decimal"
)

type ScoreService struct {
	gameStore   GameStore
	playerStore PlayerStore
	scoreStore  ScoreStore
	games       *GameService
	maxShots    int
}

func NewScoreService(gameStore GameStore, playerStore PlayerStore, scoreStore ScoreStore, games *GameService, maxShots int) *ScoreService {
	return &ScoreService{
		gameStore:   gameStore,
		playerStore: playerStore,
		scoreStore:  scoreStore,
		games:       games,
		maxShots:    maxShots,
	}
}

// SubmitScore records a player's strokes for a hole. Re-submitting for the
// same (player, hole) overwrites the previous value: a correction, not an
// append. Every successful write pushes the recomputed view to subscribers.
func (s *ScoreService) SubmitScore(ctx context.Context, playerID, gameID int64, holeNumber, score int) (*models.Score, error) {
	if gameID <= 0 {
		return nil, validationf("invalid game ID: %d", gameID)
	}
	if playerID <= 0 {
		return nil, validationf("invalid player ID: %d", playerID)
	}
	if holeNumber <= 0 {
		return nil, validationf("invalid hole number: %d", holeNumber)
	}
	if score < 1 || score > s.maxShots {
		return nil, validationf("score must be between 1 and %d", s.maxShots)
	}

	game, err := s.gameStore.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, &NotFoundError{Resource: "game"}
	}
	if holeNumber > game.NumHoles {
		return nil, validationf("hole number %d does not exist in this game", holeNumber)
	}

	player, err := s.playerStore.GetPlayerInGame(ctx, playerID, gameID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, &NotFoundError{Resource: "player"}
	}

	sc, err := s.scoreStore.UpsertScore(ctx, playerID, gameID, holeNumber, score)
	if err != nil {
		return nil, err
	}

	s.games.notifyUpdate(ctx, game, mutationScore)
	return sc, nil
}

// GetAverageScoreForHole returns the floored mean of all scores recorded
// for the hole, or 0 when none exist. Pure read, no mutation.
func (s *ScoreService) GetAverageScoreForHole(ctx context.Context, gameID int64, holeNumber int) (int, error) {
	if gameID <= 0 {
		return 0, validationf("invalid game ID: %d", gameID)
	}
	if holeNumber <= 0 {
		return 0, validationf("invalid hole number: %d", holeNumber)
	}

	scores, err := s.scoreStore.GetScoresForHole(ctx, gameID, holeNumber)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, nil
	}

	var sum int64
	for _, sc := range scores {
		sum += int64(sc.Score)
	}

	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(scores)))).Floor()
	return int(avg.IntPart()), nil
}
